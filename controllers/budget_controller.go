package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/services"
	"github.com/b4uspend/b4uspend-api/utils"
)

// BudgetController handles monthly budget endpoints.
type BudgetController struct {
	budgets *services.BudgetService
}

func NewBudgetController(db *gorm.DB) *BudgetController {
	return &BudgetController{budgets: services.NewBudgetService(db)}
}

// Current returns the budget for the requested (or current) month enriched
// with per-category spend. Data is null when no budget exists.
func (b *BudgetController) Current(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	now := time.Now()
	month, year := int(now.Month()), now.Year()
	if v, err := strconv.Atoi(ctx.Query("month")); err == nil && v >= 1 && v <= 12 {
		month = v
	}
	if v, err := strconv.Atoi(ctx.Query("year")); err == nil && v >= 2020 {
		year = v
	}

	budget, err := b.budgets.Current(userID, month, year)
	if err != nil {
		utils.Sugar.Errorf("get budget failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to get budget")
		return
	}
	if budget == nil {
		utils.Success(ctx, nil)
		return
	}
	view, err := b.budgets.Enrich(budget)
	if err != nil {
		utils.Sugar.Errorf("enrich budget failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to enrich budget")
		return
	}
	utils.Success(ctx, view)
}

func (b *BudgetController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	var req struct {
		Month       int     `json:"month" binding:"required,gte=1,lte=12"`
		Year        int     `json:"year" binding:"required,gte=2020"`
		TotalIncome float64 `json:"total_income" binding:"required,gt=0"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}
	budget, err := b.budgets.Create(userID, req.Month, req.Year, req.TotalIncome)
	if err != nil {
		serviceError(ctx, err, "", "budget already exists for this month", "")
		return
	}
	utils.Created(ctx, budget)
}

// SetCategories replaces the budget's category allocations wholesale.
func (b *BudgetController) SetCategories(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	budgetID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid budget id")
		return
	}
	var req struct {
		Categories []struct {
			Category        models.ExpenseCategory `json:"category" binding:"required"`
			AllocatedAmount float64                `json:"allocated_amount" binding:"required,gt=0"`
		} `json:"categories" binding:"required,dive"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}
	inputs := make([]services.BudgetCategoryInput, 0, len(req.Categories))
	for _, c := range req.Categories {
		if !c.Category.Valid() {
			utils.Error(ctx, http.StatusBadRequest, 40032, "invalid expense category")
			return
		}
		inputs = append(inputs, services.BudgetCategoryInput{Category: c.Category, AllocatedAmount: c.AllocatedAmount})
	}

	budget, err := b.budgets.SetCategories(userID, budgetID, inputs)
	if err != nil {
		serviceError(ctx, err, "budget not found", "", "")
		return
	}
	view, err := b.budgets.Enrich(budget)
	if err != nil {
		utils.Sugar.Errorf("enrich budget failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to enrich budget")
		return
	}
	utils.Success(ctx, view)
}
