package models

import (
	"time"
)

// ExpenseCategory classifies a variable expense.
type ExpenseCategory string

const (
	CategoryFoodDining     ExpenseCategory = "FOOD_DINING"
	CategoryGroceries      ExpenseCategory = "GROCERIES"
	CategoryTransport      ExpenseCategory = "TRANSPORT"
	CategoryShopping       ExpenseCategory = "SHOPPING"
	CategoryEntertainment  ExpenseCategory = "ENTERTAINMENT"
	CategoryBills          ExpenseCategory = "BILLS"
	CategoryHealth         ExpenseCategory = "HEALTH"
	CategoryEducation      ExpenseCategory = "EDUCATION_EXP"
	CategoryPersonalCare   ExpenseCategory = "PERSONAL_CARE"
	CategoryGiftsDonations ExpenseCategory = "GIFTS_DONATIONS"
	CategoryOther          ExpenseCategory = "OTHER"
)

// ExpenseCategories lists every known category.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryFoodDining,
		CategoryGroceries,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryBills,
		CategoryHealth,
		CategoryEducation,
		CategoryPersonalCare,
		CategoryGiftsDonations,
		CategoryOther,
	}
}

func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories() {
		if c == known {
			return true
		}
	}
	return false
}

var categoryLabels = map[ExpenseCategory]string{
	CategoryFoodDining:     "Food & Dining",
	CategoryGroceries:      "Groceries",
	CategoryTransport:      "Transport",
	CategoryShopping:       "Shopping",
	CategoryEntertainment:  "Entertainment",
	CategoryBills:          "Bills",
	CategoryHealth:         "Health",
	CategoryEducation:      "Education",
	CategoryPersonalCare:   "Personal Care",
	CategoryGiftsDonations: "Gifts & Donations",
	CategoryOther:          "Other",
}

// Label returns the display name for a category.
func (c ExpenseCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Expense is a single logged spend.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index:ix_expenses_user_date;index:ix_expenses_user_category" json:"user_id"`
	Amount      float64         `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category    ExpenseCategory `gorm:"size:32;not null;index:ix_expenses_user_category" json:"category"`
	Description *string         `gorm:"size:255" json:"description"`
	Date        time.Time       `gorm:"type:date;not null;index:ix_expenses_user_date" json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
