package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/services"
	"github.com/b4uspend/b4uspend-api/utils"
)

// DashboardController serves the aggregated home view.
type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{dashboard: services.NewDashboardService(db)}
}

func (d *DashboardController) Get(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	view, err := d.dashboard.Build(userID)
	if err != nil {
		utils.Sugar.Errorf("dashboard build failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to build dashboard")
		return
	}
	utils.Success(ctx, view)
}
