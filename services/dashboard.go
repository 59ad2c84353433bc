package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

type DashboardService struct {
	db        *gorm.DB
	users     *UserService
	expenses  *ExpenseService
	checklist *ChecklistService
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		db:        db,
		users:     NewUserService(db),
		expenses:  NewExpenseService(db),
		checklist: NewChecklistService(db),
	}
}

// GoalPreview is the active goal's headline numbers.
type GoalPreview struct {
	Name            string  `json:"name"`
	ProgressPercent int     `json:"progress_percent"`
	SavedAmount     float64 `json:"saved_amount"`
	TargetAmount    float64 `json:"target_amount"`
}

// Dashboard is the aggregated home view.
type Dashboard struct {
	Greeting     string       `json:"greeting"`
	MonthLabel   string       `json:"month_label"`
	TotalIncome  float64      `json:"total_income"`
	TotalSpent   float64      `json:"total_spent"`
	TotalSaved   float64      `json:"total_saved"`
	Remaining    float64      `json:"remaining"`
	SpendPercent int          `json:"spend_percent"`
	HealthScore  int          `json:"health_score"`
	HealthTotal  int          `json:"health_total"`
	ActiveGoal   *GoalPreview `json:"active_goal"`
}

// Build assembles the dashboard for a user: income vs. outflow for the
// current month, checklist score and the active goal preview.
func (s *DashboardService) Build(userID uint) (*Dashboard, error) {
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	month, year := int(now.Month()), now.Year()

	totalIncome := user.TotalIncome()
	fixedTotal := 0.0
	for _, fe := range user.FixedExpenses {
		fixedTotal += fe.Amount
	}

	totalSpent, err := s.expenses.MonthTotal(userID, month, year)
	if err != nil {
		return nil, err
	}
	totalOut := fixedTotal + totalSpent
	remaining := totalIncome - totalOut

	spendPercent := 0
	if totalIncome > 0 {
		spendPercent = int(totalOut / totalIncome * 100)
	}
	if spendPercent > 999 {
		spendPercent = 999
	}

	score, err := s.checklist.Score(userID)
	if err != nil {
		return nil, err
	}

	var preview *GoalPreview
	var goal models.Goal
	err = s.db.Where("user_id = ? AND is_active = ?", userID, true).First(&goal).Error
	if err == nil {
		preview = &GoalPreview{
			Name:            goal.Name,
			ProgressPercent: utils.GoalProgressPercent(goal.SavedAmount, goal.TargetAmount),
			SavedAmount:     goal.SavedAmount,
			TargetAmount:    goal.TargetAmount,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	saved := remaining
	if saved < 0 {
		saved = 0
	}

	return &Dashboard{
		Greeting:     greeting(user.Name, now),
		MonthLabel:   now.Format("January 2006"),
		TotalIncome:  totalIncome,
		TotalSpent:   totalOut,
		TotalSaved:   saved,
		Remaining:    remaining,
		SpendPercent: spendPercent,
		HealthScore:  score.Completed,
		HealthTotal:  score.Total,
		ActiveGoal:   preview,
	}, nil
}

func greeting(name string, now time.Time) string {
	period := "Evening"
	switch {
	case now.Hour() < 12:
		period = "Morning"
	case now.Hour() < 17:
		period = "Afternoon"
	}
	return fmt.Sprintf("Good %s, %s!", period, name)
}
