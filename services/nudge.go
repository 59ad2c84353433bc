package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

// Nudge statuses, evaluated in order.
const (
	NudgeOK      = "OK"
	NudgeWarning = "WARNING"
	NudgeExceeds = "EXCEEDS"
)

type NudgeService struct {
	db       *gorm.DB
	budgets  *BudgetService
	expenses *ExpenseService
}

func NewNudgeService(db *gorm.DB) *NudgeService {
	return &NudgeService{
		db:       db,
		budgets:  NewBudgetService(db),
		expenses: NewExpenseService(db),
	}
}

// BudgetImpact shows how a prospective spend lands against the allocation.
type BudgetImpact struct {
	CategoryName     string  `json:"category_name"`
	RemainingBefore  float64 `json:"remaining_before"`
	RemainingAfter   float64 `json:"remaining_after"`
	PercentUsedAfter int     `json:"percent_used_after"`
}

// GoalImpact flags active goals possibly affected by the spend.
type GoalImpact struct {
	GoalName string `json:"goal_name"`
	Affected bool   `json:"affected"`
}

// AdjustmentOption is spare allocation in another category.
type AdjustmentOption struct {
	Category  string  `json:"category"`
	Available float64 `json:"available"`
}

// NudgeResult is the full pre-spend advisory.
type NudgeResult struct {
	Status               string             `json:"status"`
	Message              string             `json:"message"`
	BudgetImpact         BudgetImpact       `json:"budget_impact"`
	GoalImpact           []GoalImpact       `json:"goal_impact"`
	DaysRemainingInMonth int                `json:"days_remaining_in_month"`
	AdjustmentOptions    []AdjustmentOption `json:"adjustment_options"`
}

// EvaluateSpend advises on a prospective expense before it is committed.
func (s *NudgeService) EvaluateSpend(userID uint, amount float64, category models.ExpenseCategory) (*NudgeResult, error) {
	now := time.Now()
	month, year := int(now.Month()), now.Year()
	label := category.Label()

	allocation, err := s.budgets.CategoryAllocation(userID, category, month, year)
	if err != nil {
		return nil, err
	}
	currentSpend, err := s.expenses.CategorySpend(userID, category, month, year)
	if err != nil {
		return nil, err
	}

	remainingBefore := allocation - currentSpend
	remainingAfter := remainingBefore - amount

	percentUsedAfter := 100
	if allocation > 0 {
		percentUsedAfter = int((currentSpend + amount) / allocation * 100)
	}
	if percentUsedAfter > 999 {
		percentUsedAfter = 999
	}

	var goals []models.Goal
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&goals).Error; err != nil {
		return nil, err
	}
	goalImpacts := make([]GoalImpact, 0, len(goals))
	for _, g := range goals {
		goalImpacts = append(goalImpacts, GoalImpact{GoalName: g.Name, Affected: remainingAfter < 0})
	}

	daysLeft := utils.DaysRemainingInMonth()

	var status, message string
	switch {
	case allocation <= 0:
		status = NudgeOK
		message = "No budget set for this category. Consider creating a budget to track your spending."
	case remainingAfter >= 0 && percentUsedAfter <= 75:
		status = NudgeOK
		message = fmt.Sprintf("This fits within your %s budget. You'll have %s left.", label, utils.FormatINR(remainingAfter))
	case remainingAfter >= 0:
		status = NudgeWarning
		message = fmt.Sprintf("You'll use %d%% of your %s budget with %d days left this month.", percentUsedAfter, label, daysLeft)
	default:
		status = NudgeExceeds
		message = fmt.Sprintf("This would exceed your %s budget by %s.", label, utils.FormatINR(-remainingAfter))
	}

	adjustments := []AdjustmentOption{}
	if status == NudgeExceeds {
		budget, err := s.budgets.Current(userID, month, year)
		if err != nil {
			return nil, err
		}
		if budget != nil {
			for _, bc := range budget.Categories {
				if bc.Category == category {
					continue
				}
				spent, err := s.expenses.CategorySpend(userID, bc.Category, month, year)
				if err != nil {
					return nil, err
				}
				if available := bc.AllocatedAmount - spent; available > 0 {
					adjustments = append(adjustments, AdjustmentOption{
						Category:  bc.Category.Label(),
						Available: available,
					})
				}
			}
		}
	}

	return &NudgeResult{
		Status:  status,
		Message: message,
		BudgetImpact: BudgetImpact{
			CategoryName:     label,
			RemainingBefore:  remainingBefore,
			RemainingAfter:   remainingAfter,
			PercentUsedAfter: percentUsedAfter,
		},
		GoalImpact:           goalImpacts,
		DaysRemainingInMonth: daysLeft,
		AdjustmentOptions:    adjustments,
	}, nil
}
