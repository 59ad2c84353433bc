package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
)

type BudgetService struct {
	db       *gorm.DB
	expenses *ExpenseService
}

func NewBudgetService(db *gorm.DB) *BudgetService {
	return &BudgetService{db: db, expenses: NewExpenseService(db)}
}

// BudgetCategoryInput is one category/allocation pair for replace-all updates.
type BudgetCategoryInput struct {
	Category        models.ExpenseCategory
	AllocatedAmount float64
}

// BudgetCategoryView joins an allocation against actual spend.
type BudgetCategoryView struct {
	Category        models.ExpenseCategory `json:"category"`
	AllocatedAmount float64                `json:"allocated_amount"`
	SpentAmount     float64                `json:"spent_amount"`
	Remaining       float64                `json:"remaining"`
}

// BudgetView is a budget with per-category spend joined in.
type BudgetView struct {
	ID          uint                 `json:"id"`
	Month       int                  `json:"month"`
	Year        int                  `json:"year"`
	TotalIncome float64              `json:"total_income"`
	Categories  []BudgetCategoryView `json:"categories"`
}

// Create fails with Conflict if a budget already exists for (month, year).
func (s *BudgetService) Create(userID uint, month, year int, totalIncome float64) (*models.Budget, error) {
	var count int64
	err := s.db.Model(&models.Budget{}).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}
	budget := models.Budget{UserID: userID, Month: month, Year: year, TotalIncome: totalIncome}
	if err := s.db.Create(&budget).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}

// Current returns the budget for (month, year), or nil when none exists.
func (s *BudgetService) Current(userID uint, month, year int) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Preload("Categories").
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &budget, nil
}

// SetCategories replaces all category rows of a budget.
func (s *BudgetService) SetCategories(userID, budgetID uint, categories []BudgetCategoryInput) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.BudgetCategory{}).Error; err != nil {
			return err
		}
		for _, c := range categories {
			row := models.BudgetCategory{
				BudgetID:        budget.ID,
				UserID:          userID,
				Category:        c.Category,
				AllocatedAmount: c.AllocatedAmount,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.db.Preload("Categories").First(&budget, budget.ID).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}

// Enrich joins each allocation against the month's actual category spend.
func (s *BudgetService) Enrich(budget *models.Budget) (*BudgetView, error) {
	view := BudgetView{
		ID:          budget.ID,
		Month:       budget.Month,
		Year:        budget.Year,
		TotalIncome: budget.TotalIncome,
		Categories:  make([]BudgetCategoryView, 0, len(budget.Categories)),
	}
	for _, bc := range budget.Categories {
		spent, err := s.expenses.CategorySpend(budget.UserID, bc.Category, budget.Month, budget.Year)
		if err != nil {
			return nil, err
		}
		view.Categories = append(view.Categories, BudgetCategoryView{
			Category:        bc.Category,
			AllocatedAmount: bc.AllocatedAmount,
			SpentAmount:     spent,
			Remaining:       bc.AllocatedAmount - spent,
		})
	}
	return &view, nil
}

// CategoryAllocation returns the allocation for a category in (month, year),
// or 0 when no budget or category row exists. Never an error on absence; the
// nudge advisor relies on this.
func (s *BudgetService) CategoryAllocation(userID uint, category models.ExpenseCategory, month, year int) (float64, error) {
	budget, err := s.Current(userID, month, year)
	if err != nil {
		return 0, err
	}
	if budget == nil {
		return 0, nil
	}
	for _, bc := range budget.Categories {
		if bc.Category == category {
			return bc.AllocatedAmount, nil
		}
	}
	return 0, nil
}
