package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/services"
	"github.com/b4uspend/b4uspend-api/utils"
)

// GoalController handles savings goal endpoints.
type GoalController struct {
	goals *services.GoalService
}

func NewGoalController(db *gorm.DB) *GoalController {
	return &GoalController{goals: services.NewGoalService(db)}
}

func (g *GoalController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	goals, err := g.goals.List(userID)
	if err != nil {
		utils.Sugar.Errorf("list goals failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to list goals")
		return
	}
	views := make([]services.GoalView, 0, len(goals))
	for i := range goals {
		views = append(views, g.goals.Enrich(&goals[i]))
	}
	utils.Success(ctx, gin.H{"items": views, "total": len(views)})
}

func (g *GoalController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	var req struct {
		Name          string          `json:"name" binding:"required,min=1,max=120"`
		Icon          models.GoalIcon `json:"icon" binding:"required"`
		TargetAmount  float64         `json:"target_amount" binding:"required,gt=0"`
		TargetDate    string          `json:"target_date" binding:"required"`
		InitialAmount float64         `json:"initial_amount" binding:"gte=0"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}
	if !req.Icon.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid goal icon")
		return
	}
	targetDate, err := utils.ParseDate(req.TargetDate)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid target date, expected YYYY-MM-DD")
		return
	}

	goal, err := g.goals.Create(userID, req.Name, req.Icon, req.TargetAmount, targetDate, req.InitialAmount)
	if err != nil {
		serviceError(ctx, err, "", "", "only one active goal allowed, delete the existing goal first")
		return
	}
	utils.Created(ctx, g.goals.Enrich(goal))
}

func (g *GoalController) Get(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	goalID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40043, "invalid goal id")
		return
	}
	goal, err := g.goals.Get(userID, goalID)
	if err != nil {
		serviceError(ctx, err, "goal not found", "", "")
		return
	}
	utils.Success(ctx, g.goals.Enrich(goal))
}

func (g *GoalController) Update(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	goalID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40043, "invalid goal id")
		return
	}
	var req struct {
		Name         *string          `json:"name" binding:"omitempty,min=1,max=120"`
		Icon         *models.GoalIcon `json:"icon"`
		TargetAmount *float64         `json:"target_amount" binding:"omitempty,gt=0"`
		TargetDate   *string          `json:"target_date"`
		IsActive     *bool            `json:"is_active"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}
	if req.Icon != nil && !req.Icon.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid goal icon")
		return
	}

	upd := services.GoalUpdate{
		Name:         req.Name,
		Icon:         req.Icon,
		TargetAmount: req.TargetAmount,
		IsActive:     req.IsActive,
	}
	if req.TargetDate != nil {
		targetDate, err := utils.ParseDate(*req.TargetDate)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40042, "invalid target date, expected YYYY-MM-DD")
			return
		}
		upd.TargetDate = &targetDate
	}

	goal, err := g.goals.Update(userID, goalID, upd)
	if err != nil {
		serviceError(ctx, err, "goal not found", "", "")
		return
	}
	utils.Success(ctx, g.goals.Enrich(goal))
}

func (g *GoalController) Delete(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	goalID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40043, "invalid goal id")
		return
	}
	if err := g.goals.Delete(userID, goalID); err != nil {
		serviceError(ctx, err, "goal not found", "", "")
		return
	}
	utils.Success(ctx, gin.H{"message": "goal deleted"})
}

// AddContribution appends a contribution and bumps the running total.
func (g *GoalController) AddContribution(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	goalID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40043, "invalid goal id")
		return
	}
	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
		Date   string  `json:"date" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40044, "invalid request payload")
		return
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40045, "invalid date, expected YYYY-MM-DD")
		return
	}

	contribution, err := g.goals.AddContribution(userID, goalID, req.Amount, date)
	if err != nil {
		serviceError(ctx, err, "goal not found", "", "")
		return
	}
	utils.Created(ctx, contribution)
}
