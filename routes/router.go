package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/config"
	"github.com/b4uspend/b4uspend-api/controllers"
	"github.com/b4uspend/b4uspend-api/middleware"
	"github.com/b4uspend/b4uspend-api/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db, cfg)
	userController := controllers.NewUserController(db)
	expenseController := controllers.NewExpenseController(db)
	budgetController := controllers.NewBudgetController(db)
	goalController := controllers.NewGoalController(db)
	checklistController := controllers.NewChecklistController(db)
	nudgeController := controllers.NewNudgeController(db)
	challengeController := controllers.NewChallengeController(db)
	chatController := controllers.NewChatController(db)
	dashboardController := controllers.NewDashboardController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/refresh", authController.Refresh)
	authGroup.POST("/logout", authController.Logout)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(db, cfg))

	users := authed.Group("/users")
	users.GET("/me", userController.Me)
	users.PATCH("/me", userController.UpdateMe)
	users.PUT("/me/income", userController.SetIncome)
	users.PUT("/me/fixed-expenses", userController.SetFixedExpenses)
	users.PUT("/me/dependents", userController.SetDependents)
	users.POST("/me/complete-onboarding", userController.CompleteOnboarding)

	expenses := authed.Group("/expenses")
	expenses.GET("", expenseController.List)
	expenses.POST("", expenseController.Create)
	expenses.GET("/summary/monthly", expenseController.MonthlySummary)
	expenses.GET("/summary/breakdown", expenseController.MonthlySummary)
	expenses.GET("/:id", expenseController.Get)
	expenses.PATCH("/:id", expenseController.Update)
	expenses.DELETE("/:id", expenseController.Delete)

	budgets := authed.Group("/budgets")
	budgets.GET("/current", budgetController.Current)
	budgets.POST("", budgetController.Create)
	budgets.PUT("/:id/categories", budgetController.SetCategories)

	goals := authed.Group("/goals")
	goals.GET("", goalController.List)
	goals.POST("", goalController.Create)
	goals.GET("/:id", goalController.Get)
	goals.PATCH("/:id", goalController.Update)
	goals.DELETE("/:id", goalController.Delete)
	goals.POST("/:id/contributions", goalController.AddContribution)

	checklist := authed.Group("/checklist")
	checklist.GET("", checklistController.Score)
	checklist.GET("/:item_type", checklistController.GetItem)
	checklist.PATCH("/:item_type", checklistController.UpdateItem)

	authed.POST("/nudge/check", nudgeController.Check)
	authed.GET("/dashboard", dashboardController.Get)

	challenges := authed.Group("/challenges")
	challenges.GET("", challengeController.ListAvailable)
	challenges.POST("/join", challengeController.Join)
	challenges.GET("/my-challenges", challengeController.ListMine)
	challenges.GET("/my-progress", challengeController.MyProgress)
	challenges.GET("/my-challenges/:id", challengeController.GetMine)
	challenges.DELETE("/my-challenges/:id", challengeController.Abandon)
	challenges.GET("/:id/leaderboard", challengeController.Leaderboard)

	chat := authed.Group("/chat")
	chat.GET("/history", chatController.History)
	chat.POST("/send", chatController.Send)
	chat.DELETE("/history", chatController.Clear)

	return r
}
