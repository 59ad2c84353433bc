package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/services"
	"github.com/b4uspend/b4uspend-api/utils"
)

// NudgeController handles the pre-spend advisory endpoint.
type NudgeController struct {
	nudge *services.NudgeService
}

func NewNudgeController(db *gorm.DB) *NudgeController {
	return &NudgeController{nudge: services.NewNudgeService(db)}
}

// Check evaluates a prospective spend against the current month's budget.
func (n *NudgeController) Check(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	var req struct {
		Amount   float64                `json:"amount" binding:"required,gt=0"`
		Category models.ExpenseCategory `json:"category" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}
	if !req.Category.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40061, "invalid expense category")
		return
	}

	result, err := n.nudge.EvaluateSpend(userID, req.Amount, req.Category)
	if err != nil {
		utils.Sugar.Errorf("nudge check failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to evaluate spend")
		return
	}
	utils.Success(ctx, result)
}
