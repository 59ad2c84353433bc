package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/services"
	"github.com/b4uspend/b4uspend-api/utils"
)

// UserController handles profile and onboarding endpoints.
type UserController struct {
	users *services.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{users: services.NewUserService(db)}
}

func (u *UserController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	user, err := u.users.GetUser(userID)
	if err != nil {
		serviceError(ctx, err, "user not found", "", "")
		return
	}
	utils.Success(ctx, user)
}

func (u *UserController) UpdateMe(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	var req struct {
		Name *string `json:"name" binding:"omitempty,min=1,max=120"`
		Age  *int    `json:"age" binding:"omitempty,gte=13,lte=120"`
		City *string `json:"city" binding:"omitempty,max=120"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}
	user, err := u.users.UpdateProfile(userID, services.ProfileUpdate{Name: req.Name, Age: req.Age, City: req.City})
	if err != nil {
		serviceError(ctx, err, "user not found", "", "")
		return
	}
	utils.Success(ctx, user)
}

func (u *UserController) SetIncome(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	var req struct {
		MonthlySalary float64 `json:"monthly_salary" binding:"required,gt=0"`
		OtherIncome   float64 `json:"other_income" binding:"gte=0"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid request payload")
		return
	}
	user, err := u.users.SetIncome(userID, req.MonthlySalary, req.OtherIncome)
	if err != nil {
		serviceError(ctx, err, "user not found", "", "")
		return
	}
	utils.Success(ctx, user)
}

func (u *UserController) SetFixedExpenses(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	var req struct {
		Expenses []struct {
			Category models.FixedExpenseCategory `json:"category" binding:"required"`
			Amount   float64                     `json:"amount" binding:"required,gt=0"`
		} `json:"expenses" binding:"required,dive"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40012, "invalid request payload")
		return
	}
	inputs := make([]services.FixedExpenseInput, 0, len(req.Expenses))
	for _, e := range req.Expenses {
		if !e.Category.Valid() {
			utils.Error(ctx, http.StatusBadRequest, 40013, "invalid fixed expense category")
			return
		}
		inputs = append(inputs, services.FixedExpenseInput{Category: e.Category, Amount: e.Amount})
	}
	user, err := u.users.SetFixedExpenses(userID, inputs)
	if err != nil {
		serviceError(ctx, err, "user not found", "", "")
		return
	}
	utils.Success(ctx, user)
}

func (u *UserController) SetDependents(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	var req struct {
		DependentType models.DependentType `json:"dependent_type" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || !req.DependentType.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40014, "invalid dependent type")
		return
	}
	user, err := u.users.SetDependents(userID, req.DependentType)
	if err != nil {
		serviceError(ctx, err, "user not found", "", "")
		return
	}
	utils.Success(ctx, user)
}

func (u *UserController) CompleteOnboarding(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	user, err := u.users.CompleteOnboarding(userID)
	if err != nil {
		serviceError(ctx, err, "user not found", "", "income must be set before completing onboarding")
		return
	}
	utils.Success(ctx, user)
}
