package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

type ExpenseService struct {
	db *gorm.DB
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

// ExpenseFilter narrows ListExpenses. Month and Year apply only when both set.
type ExpenseFilter struct {
	Month    int
	Year     int
	Category models.ExpenseCategory
	Page     int
	PageSize int
}

// CategorySummary is one category's share of a month's spending.
type CategorySummary struct {
	Category   models.ExpenseCategory `json:"category"`
	Total      float64                `json:"total"`
	Percentage float64                `json:"percentage"`
}

// MonthlySummary groups a month's expenses by category.
type MonthlySummary struct {
	Month      int               `json:"month"`
	Year       int               `json:"year"`
	TotalSpent float64           `json:"total_spent"`
	ByCategory []CategorySummary `json:"by_category"`
}

func (s *ExpenseService) Create(userID uint, amount float64, category models.ExpenseCategory, description *string, date time.Time) (*models.Expense, error) {
	expense := models.Expense{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	}
	if err := s.db.Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *ExpenseService) List(userID uint, f ExpenseFilter) ([]models.Expense, int64, error) {
	query := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	if f.Month >= 1 && f.Month <= 12 && f.Year > 0 {
		start, end := utils.MonthRange(f.Month, f.Year)
		query = query.Where("date >= ? AND date < ?", start, end)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	var items []models.Expense
	err := query.Order("date DESC, created_at DESC").
		Offset((f.Page - 1) * f.PageSize).Limit(f.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *ExpenseService) Get(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// ExpenseUpdate carries optional fields; nil means leave unchanged.
type ExpenseUpdate struct {
	Amount      *float64
	Category    *models.ExpenseCategory
	Description *string
	Date        *time.Time
}

func (s *ExpenseService) Update(userID, expenseID uint, upd ExpenseUpdate) (*models.Expense, error) {
	expense, err := s.Get(userID, expenseID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if upd.Amount != nil {
		updates["amount"] = *upd.Amount
	}
	if upd.Category != nil {
		updates["category"] = *upd.Category
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Date != nil {
		updates["date"] = *upd.Date
	}
	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(userID, expenseID)
}

func (s *ExpenseService) Delete(userID, expenseID uint) error {
	expense, err := s.Get(userID, expenseID)
	if err != nil {
		return err
	}
	return s.db.Delete(expense).Error
}

// MonthlySummary groups the month's spend by category with percentage shares.
func (s *ExpenseService) MonthlySummary(userID uint, month, year int) (*MonthlySummary, error) {
	start, end := utils.MonthRange(month, year)

	var rows []struct {
		Category models.ExpenseCategory
		Total    float64
	}
	err := s.db.Model(&models.Expense{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totalSpent := 0.0
	for _, r := range rows {
		totalSpent += r.Total
	}
	byCategory := make([]CategorySummary, 0, len(rows))
	for _, r := range rows {
		pct := 0.0
		if totalSpent > 0 {
			pct = utils.Round1(r.Total / totalSpent * 100)
		}
		byCategory = append(byCategory, CategorySummary{
			Category:   r.Category,
			Total:      r.Total,
			Percentage: pct,
		})
	}
	return &MonthlySummary{
		Month:      month,
		Year:       year,
		TotalSpent: totalSpent,
		ByCategory: byCategory,
	}, nil
}

// MonthTotal is the user's total spend in a month.
func (s *ExpenseService) MonthTotal(userID uint, month, year int) (float64, error) {
	start, end := utils.MonthRange(month, year)
	var total float64
	err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Scan(&total).Error
	return total, err
}

// CategorySpend is the user's spend in a category for a month.
func (s *ExpenseService) CategorySpend(userID uint, category models.ExpenseCategory, month, year int) (float64, error) {
	start, end := utils.MonthRange(month, year)
	var total float64
	err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND category = ? AND date >= ? AND date < ?", userID, category, start, end).
		Scan(&total).Error
	return total, err
}
