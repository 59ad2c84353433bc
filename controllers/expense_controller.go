package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/services"
	"github.com/b4uspend/b4uspend-api/utils"
)

// ExpenseController handles expense CRUD and summaries.
type ExpenseController struct {
	expenses *services.ExpenseService
}

func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{expenses: services.NewExpenseService(db)}
}

func (e *ExpenseController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	month, _ := strconv.Atoi(ctx.Query("month"))
	year, _ := strconv.Atoi(ctx.Query("year"))

	filter := services.ExpenseFilter{
		Month:    month,
		Year:     year,
		Page:     page,
		PageSize: pageSize,
	}
	if raw := ctx.Query("category"); raw != "" {
		category := models.ExpenseCategory(raw)
		if !category.Valid() {
			utils.Error(ctx, http.StatusBadRequest, 40020, "invalid expense category")
			return
		}
		filter.Category = category
	}

	items, total, err := e.expenses.List(userID, filter)
	if err != nil {
		utils.Sugar.Errorf("list expenses failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list expenses")
		return
	}
	utils.Success(ctx, gin.H{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (e *ExpenseController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	var req struct {
		Amount      float64                `json:"amount" binding:"required,gt=0"`
		Category    models.ExpenseCategory `json:"category" binding:"required"`
		Description *string                `json:"description" binding:"omitempty,max=255"`
		Date        string                 `json:"date" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}
	if !req.Category.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid expense category")
		return
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid date, expected YYYY-MM-DD")
		return
	}

	expense, err := e.expenses.Create(userID, req.Amount, req.Category, req.Description, date)
	if err != nil {
		utils.Sugar.Errorf("create expense failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to create expense")
		return
	}
	utils.Created(ctx, expense)
}

func (e *ExpenseController) Get(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	expenseID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid expense id")
		return
	}
	expense, err := e.expenses.Get(userID, expenseID)
	if err != nil {
		serviceError(ctx, err, "expense not found", "", "")
		return
	}
	utils.Success(ctx, expense)
}

func (e *ExpenseController) Update(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	expenseID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid expense id")
		return
	}
	var req struct {
		Amount      *float64                `json:"amount" binding:"omitempty,gt=0"`
		Category    *models.ExpenseCategory `json:"category"`
		Description *string                 `json:"description" binding:"omitempty,max=255"`
		Date        *string                 `json:"date"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}
	if req.Category != nil && !req.Category.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid expense category")
		return
	}

	upd := services.ExpenseUpdate{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40022, "invalid date, expected YYYY-MM-DD")
			return
		}
		upd.Date = &date
	}

	expense, err := e.expenses.Update(userID, expenseID, upd)
	if err != nil {
		serviceError(ctx, err, "expense not found", "", "")
		return
	}
	utils.Success(ctx, expense)
}

func (e *ExpenseController) Delete(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	expenseID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid expense id")
		return
	}
	if err := e.expenses.Delete(userID, expenseID); err != nil {
		serviceError(ctx, err, "expense not found", "", "")
		return
	}
	utils.Success(ctx, gin.H{"message": "expense deleted"})
}

// MonthlySummary groups a month's spend by category with percentage shares.
// Exposed at both /summary/monthly and /summary/breakdown.
func (e *ExpenseController) MonthlySummary(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	month, err1 := strconv.Atoi(ctx.Query("month"))
	year, err2 := strconv.Atoi(ctx.Query("year"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 || year < 2020 {
		utils.Error(ctx, http.StatusBadRequest, 40024, "month and year query params required")
		return
	}
	summary, err := e.expenses.MonthlySummary(userID, month, year)
	if err != nil {
		utils.Sugar.Errorf("monthly summary failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to build summary")
		return
	}
	utils.Success(ctx, summary)
}
