package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

func TestCreateGoalSingleActiveConstraint(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewGoalService(db)

	target := utils.Today().AddDate(0, 6, 0)
	_, err := svc.Create(user.ID, "Emergency Fund", models.IconHome, 60000, target, 0)
	require.NoError(t, err)

	_, err = svc.Create(user.ID, "Vacation", models.IconTrip, 30000, target, 0)
	assert.ErrorIs(t, err, ErrInvalidState)

	// Deactivating the first goal frees the slot.
	var goal models.Goal
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&goal).Error)
	active := false
	_, err = svc.Update(user.ID, goal.ID, GoalUpdate{IsActive: &active})
	require.NoError(t, err)

	_, err = svc.Create(user.ID, "Vacation", models.IconTrip, 30000, target, 0)
	assert.NoError(t, err)
}

func TestCreateGoalRecordsInitialContribution(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewGoalService(db)

	goal, err := svc.Create(user.ID, "New Phone", models.IconGadget, 40000, utils.Today().AddDate(0, 4, 0), 5000)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, goal.SavedAmount)

	var contributions []models.GoalContribution
	require.NoError(t, db.Where("goal_id = ?", goal.ID).Find(&contributions).Error)
	require.Len(t, contributions, 1)
	assert.Equal(t, 5000.0, contributions[0].Amount)
}

func TestSavedAmountMatchesContributions(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewGoalService(db)

	goal, err := svc.Create(user.ID, "Bike", models.IconBike, 80000, utils.Today().AddDate(1, 0, 0), 1000)
	require.NoError(t, err)

	amounts := []float64{2500, 700, 1300.50}
	for _, amount := range amounts {
		_, err := svc.AddContribution(user.ID, goal.ID, amount, utils.Today())
		require.NoError(t, err)
	}

	fresh, err := svc.Get(user.ID, goal.ID)
	require.NoError(t, err)

	var sum float64
	require.NoError(t, db.Model(&models.GoalContribution{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("goal_id = ?", goal.ID).
		Scan(&sum).Error)
	assert.InDelta(t, fresh.SavedAmount, sum, 0.001)
	assert.InDelta(t, 5500.50, fresh.SavedAmount, 0.001)
}

func TestGoalProgressPercentClamped(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewGoalService(db)

	goal, err := svc.Create(user.ID, "Overshoot", models.IconOtherGoal, 1000, utils.Today().AddDate(0, 1, 0), 2500)
	require.NoError(t, err)

	view := svc.Enrich(goal)
	assert.Equal(t, 100, view.ProgressPercent)
	assert.Equal(t, 0.0, view.MonthlyNeeded)
}

func TestContributionToMissingGoal(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	other := createTestUser(t, db)
	svc := NewGoalService(db)

	goal, err := svc.Create(user.ID, "Secret", models.IconWedding, 10000, utils.Today().AddDate(0, 3, 0), 0)
	require.NoError(t, err)

	// Another user must not see or contribute to the goal.
	_, err = svc.AddContribution(other.ID, goal.ID, 500, utils.Today())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(other.ID, goal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMonthlyNeededWhenTargetDatePassed(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewGoalService(db)

	past := utils.Today().AddDate(0, -1, 0)
	goal, err := svc.Create(user.ID, "Overdue", models.IconCar, 20000, past, 8000)
	require.NoError(t, err)

	view := svc.Enrich(goal)
	assert.Equal(t, 0, view.MonthsRemaining)
	// With no months left the full remainder is due.
	assert.InDelta(t, 12000, view.MonthlyNeeded, 0.001)
}
