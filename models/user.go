package models

import (
	"time"
)

// DependentType describes who depends on the user's income.
type DependentType string

const (
	DependentJustMe          DependentType = "JUST_ME"
	DependentMeSpouse        DependentType = "ME_SPOUSE"
	DependentMeSpouseKids    DependentType = "ME_SPOUSE_KIDS"
	DependentMeParents       DependentType = "ME_PARENTS"
	DependentMeSpouseParents DependentType = "ME_SPOUSE_PARENTS"
)

// Valid reports whether the value is a known dependent type.
func (d DependentType) Valid() bool {
	switch d {
	case DependentJustMe, DependentMeSpouse, DependentMeSpouseKids, DependentMeParents, DependentMeSpouseParents:
		return true
	}
	return false
}

// FixedExpenseCategory classifies recurring monthly outflows.
type FixedExpenseCategory string

const (
	FixedRent       FixedExpenseCategory = "RENT"
	FixedEMI        FixedExpenseCategory = "EMI"
	FixedBills      FixedExpenseCategory = "BILLS"
	FixedOtherFixed FixedExpenseCategory = "OTHER_FIXED"
)

func (c FixedExpenseCategory) Valid() bool {
	switch c {
	case FixedRent, FixedEMI, FixedBills, FixedOtherFixed:
		return true
	}
	return false
}

// User is an account holder. Passwords are stored as bcrypt hashes only.
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Phone              string         `gorm:"size:15;uniqueIndex;not null" json:"phone"`
	Name               string         `gorm:"size:100;not null" json:"name"`
	Age                *int           `json:"age"`
	City               *string        `gorm:"size:100" json:"city"`
	PasswordHash       string         `gorm:"size:255;not null" json:"-"`
	MonthlySalary      *float64       `gorm:"type:decimal(12,2)" json:"monthly_salary"`
	OtherIncome        float64        `gorm:"type:decimal(12,2);default:0" json:"other_income"`
	DependentType      *DependentType `gorm:"size:32" json:"dependent_type"`
	OnboardingComplete bool           `gorm:"default:false" json:"onboarding_complete"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`

	FixedExpenses []FixedExpense `gorm:"constraint:OnDelete:CASCADE" json:"fixed_expenses"`
	RefreshTokens []RefreshToken `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TotalIncome is monthly salary plus other income.
func (u *User) TotalIncome() float64 {
	salary := 0.0
	if u.MonthlySalary != nil {
		salary = *u.MonthlySalary
	}
	return salary + u.OtherIncome
}

// FixedExpense is a recurring monthly outflow, one row per category per user.
type FixedExpense struct {
	ID       uint                 `gorm:"primaryKey" json:"id"`
	UserID   uint                 `gorm:"not null;uniqueIndex:uq_user_fixed_category" json:"user_id"`
	Category FixedExpenseCategory `gorm:"size:32;not null;uniqueIndex:uq_user_fixed_category" json:"category"`
	Amount   float64              `gorm:"type:decimal(12,2);not null" json:"amount"`
}

// RefreshToken is the server-side record of an issued refresh token,
// kept so tokens can be revoked and rotated.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"size:500;uniqueIndex;not null" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
