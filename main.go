package main

import (
	"time"

	"github.com/b4uspend/b4uspend-api/config"
	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/routes"
	"github.com/b4uspend/b4uspend-api/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
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

	utils.StartRefreshTokenCleaner(db, time.Hour)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
