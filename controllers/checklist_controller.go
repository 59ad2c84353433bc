package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/services"
	"github.com/b4uspend/b4uspend-api/utils"
)

// ChecklistController handles the financial health checklist.
type ChecklistController struct {
	checklist *services.ChecklistService
}

func NewChecklistController(db *gorm.DB) *ChecklistController {
	return &ChecklistController{checklist: services.NewChecklistService(db)}
}

func (c *ChecklistController) Score(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	score, err := c.checklist.Score(userID)
	if err != nil {
		utils.Sugar.Errorf("checklist score failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to get checklist")
		return
	}
	utils.Success(ctx, score)
}

func (c *ChecklistController) GetItem(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	itemType := models.ChecklistItemType(ctx.Param("item_type"))
	if !itemType.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid checklist item type")
		return
	}
	item, err := c.checklist.Item(userID, itemType)
	if err != nil {
		serviceError(ctx, err, "checklist item not found", "", "")
		return
	}
	utils.Success(ctx, item)
}

func (c *ChecklistController) UpdateItem(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	itemType := models.ChecklistItemType(ctx.Param("item_type"))
	if !itemType.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid checklist item type")
		return
	}
	var req struct {
		Status  models.ChecklistStatus `json:"status" binding:"required"`
		Details datatypes.JSON         `json:"details"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40051, "invalid checklist status")
		return
	}
	item, err := c.checklist.UpdateItem(userID, itemType, req.Status, req.Details)
	if err != nil {
		serviceError(ctx, err, "checklist item not found", "", "")
		return
	}
	utils.Success(ctx, item)
}
