package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/b4uspend/b4uspend-api/models"
)

var testDBSeq int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.FixedExpense{},
		&models.RefreshToken{},
		&models.Expense{},
		&models.Budget{},
		&models.BudgetCategory{},
		&models.Goal{},
		&models.GoalContribution{},
		&models.Challenge{},
		&models.UserChallenge{},
		&models.UserBadge{},
		&models.UserChecklistItem{},
		&models.ChatMessage{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

var testUserSeq int

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	testUserSeq++
	user := models.User{
		Phone:        fmt.Sprintf("99999%05d", testUserSeq),
		Name:         "Test User",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}
