package models

import (
	"time"
)

// Budget is a monthly income snapshot, one per user per (month, year).
type Budget struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:uq_user_month_year" json:"user_id"`
	Month       int       `gorm:"not null;uniqueIndex:uq_user_month_year" json:"month"`
	Year        int       `gorm:"not null;uniqueIndex:uq_user_month_year" json:"year"`
	TotalIncome float64   `gorm:"type:decimal(12,2);not null" json:"total_income"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Categories []BudgetCategory `gorm:"constraint:OnDelete:CASCADE" json:"categories"`
}

// BudgetCategory allocates part of a budget to an expense category.
type BudgetCategory struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	BudgetID        uint            `gorm:"not null;uniqueIndex:uq_budget_category" json:"budget_id"`
	UserID          uint            `gorm:"not null" json:"user_id"`
	Category        ExpenseCategory `gorm:"size:32;not null;uniqueIndex:uq_budget_category" json:"category"`
	AllocatedAmount float64         `gorm:"type:decimal(12,2);not null" json:"allocated_amount"`
}
