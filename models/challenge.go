package models

import (
	"time"
)

// ChallengeType selects how progress is measured.
type ChallengeType string

const (
	ChallengeSavings       ChallengeType = "SAVINGS"
	ChallengeSpendingLimit ChallengeType = "SPENDING_LIMIT"
	ChallengeNoSpend       ChallengeType = "NO_SPEND"
	ChallengeStreak        ChallengeType = "STREAK"
)

// ChallengeStatus is the lifecycle state of an enrollment. ACTIVE is the only
// non-terminal state.
type ChallengeStatus string

const (
	StatusActive    ChallengeStatus = "ACTIVE"
	StatusCompleted ChallengeStatus = "COMPLETED"
	StatusFailed    ChallengeStatus = "FAILED"
	StatusAbandoned ChallengeStatus = "ABANDONED"
)

func (s ChallengeStatus) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusFailed, StatusAbandoned:
		return true
	}
	return false
}

// BadgeType is a permanent award tier, granted at most once per user.
type BadgeType string

const (
	BadgeSavingsMaster   BadgeType = "SAVINGS_MASTER"
	BadgeBudgetNinja     BadgeType = "BUDGET_NINJA"
	BadgeStreakChampion  BadgeType = "STREAK_CHAMPION"
	BadgeSpendingWarrior BadgeType = "SPENDING_WARRIOR"
)

// Challenge is a catalog entry users can enroll in.
type Challenge struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	Title          string           `gorm:"size:200;not null" json:"title"`
	Description    string           `gorm:"size:500;not null" json:"description"`
	ChallengeType  ChallengeType    `gorm:"size:32;not null" json:"challenge_type"`
	TargetCategory *ExpenseCategory `gorm:"size:32" json:"target_category"`
	TargetAmount   *float64         `gorm:"type:decimal(12,2)" json:"target_amount"`
	DurationDays   int              `gorm:"not null" json:"duration_days"`
	BadgeType      BadgeType        `gorm:"size:32;not null" json:"badge_type"`
	IsActive       bool             `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// UserChallenge is a user's enrollment in a challenge.
type UserChallenge struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index:ix_user_challenges_user_status" json:"user_id"`
	ChallengeID uint            `gorm:"not null;index:ix_user_challenges_challenge" json:"challenge_id"`
	Status      ChallengeStatus `gorm:"size:16;default:ACTIVE;index:ix_user_challenges_user_status" json:"status"`
	StartDate   time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time       `gorm:"type:date;not null" json:"end_date"`
	CompletedAt *time.Time      `json:"completed_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Challenge Challenge `json:"challenge"`
}

// UserBadge records an earned badge. The unique index makes awarding
// idempotent per badge type.
type UserBadge struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:uq_user_badge" json:"user_id"`
	BadgeType   BadgeType `gorm:"size:32;not null;uniqueIndex:uq_user_badge" json:"badge_type"`
	ChallengeID uint      `gorm:"not null" json:"challenge_id"`
	EarnedAt    time.Time `gorm:"not null" json:"earned_at"`
	CreatedAt   time.Time `json:"created_at"`

	Challenge Challenge `json:"-"`
}

// SeedChallenges is the initial challenge catalog, inserted once when the
// challenges table is empty.
func SeedChallenges() []Challenge {
	food := CategoryFoodDining
	shopping := CategoryShopping
	amt := func(v float64) *float64 { return &v }
	return []Challenge{
		{
			Title:         "30-Day Savings Sprint",
			Description:   "Save ₹10,000 in 30 days by contributing to your goals regularly.",
			ChallengeType: ChallengeSavings,
			TargetAmount:  amt(10000),
			DurationDays:  30,
			BadgeType:     BadgeSavingsMaster,
			IsActive:      true,
		},
		{
			Title:          "No Shopping Challenge",
			Description:    "Go 30 days without any shopping expenses. Can you resist the urge?",
			ChallengeType:  ChallengeNoSpend,
			TargetCategory: &shopping,
			DurationDays:   30,
			BadgeType:      BadgeSpendingWarrior,
			IsActive:       true,
		},
		{
			Title:          "Food Budget Master",
			Description:    "Keep your food & dining expenses under ₹5,000 for 30 days.",
			ChallengeType:  ChallengeSpendingLimit,
			TargetCategory: &food,
			TargetAmount:   amt(5000),
			DurationDays:   30,
			BadgeType:      BadgeBudgetNinja,
			IsActive:       true,
		},
		{
			Title:         "Expense Tracking Streak",
			Description:   "Track your expenses every single day for 30 days straight.",
			ChallengeType: ChallengeStreak,
			DurationDays:  30,
			BadgeType:     BadgeStreakChampion,
			IsActive:      true,
		},
		{
			Title:         "Emergency Fund Booster",
			Description:   "Save ₹25,000 in 60 days to boost your emergency fund.",
			ChallengeType: ChallengeSavings,
			TargetAmount:  amt(25000),
			DurationDays:  60,
			BadgeType:     BadgeSavingsMaster,
			IsActive:      true,
		},
	}
}
