package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
)

func seedChecklist(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	for _, itemType := range models.ChecklistItemTypes() {
		item := models.UserChecklistItem{UserID: userID, ItemType: itemType, Status: models.ChecklistMissing}
		require.NoError(t, db.Create(&item).Error)
	}
}

func TestChecklistCompletedAtLifecycle(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	seedChecklist(t, db, user.ID)
	svc := NewChecklistService(db)

	details := datatypes.JSON([]byte(`{"months_covered": 4}`))
	item, err := svc.UpdateItem(user.ID, models.ItemEmergencyFund, models.ChecklistComplete, details)
	require.NoError(t, err)
	require.NotNil(t, item.CompletedAt)
	first := *item.CompletedAt

	// Re-completing keeps the original timestamp.
	item, err = svc.UpdateItem(user.ID, models.ItemEmergencyFund, models.ChecklistComplete, details)
	require.NoError(t, err)
	require.NotNil(t, item.CompletedAt)
	assert.Equal(t, first.Unix(), item.CompletedAt.Unix())

	// Any transition away from COMPLETE clears it.
	item, err = svc.UpdateItem(user.ID, models.ItemEmergencyFund, models.ChecklistIncomplete, nil)
	require.NoError(t, err)
	assert.Nil(t, item.CompletedAt)
}

func TestChecklistScore(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	seedChecklist(t, db, user.ID)
	svc := NewChecklistService(db)

	_, err := svc.UpdateItem(user.ID, models.ItemHealthInsurance, models.ChecklistComplete, nil)
	require.NoError(t, err)
	_, err = svc.UpdateItem(user.ID, models.ItemEPFPPF, models.ChecklistComplete, nil)
	require.NoError(t, err)

	score, err := svc.Score(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, score.Completed)
	assert.Equal(t, len(models.ChecklistItemTypes()), score.Total)
	assert.Equal(t, "2/6", score.ScoreLabel)
	assert.Len(t, score.Items, score.Total)
}

func TestChecklistUnknownItem(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewChecklistService(db)

	// No rows seeded for this user at all.
	_, err := svc.Item(user.ID, models.ItemTermInsurance)
	assert.ErrorIs(t, err, ErrNotFound)
}
