package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// GoalView is a goal with derived fields computed on read.
type GoalView struct {
	models.Goal
	ProgressPercent int     `json:"progress_percent"`
	MonthlyNeeded   float64 `json:"monthly_needed"`
	MonthsRemaining int     `json:"months_remaining"`
}

// Create enforces the single-active-goal constraint. A positive initial
// amount also records an initial contribution dated today.
func (s *GoalService) Create(userID uint, name string, icon models.GoalIcon, targetAmount float64, targetDate time.Time, initialAmount float64) (*models.Goal, error) {
	var active int64
	err := s.db.Model(&models.Goal{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&active).Error
	if err != nil {
		return nil, err
	}
	if active >= 1 {
		return nil, ErrInvalidState
	}

	goal := models.Goal{
		UserID:        userID,
		Name:          name,
		Icon:          icon,
		TargetAmount:  targetAmount,
		TargetDate:    targetDate,
		InitialAmount: initialAmount,
		SavedAmount:   initialAmount,
		IsActive:      true,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&goal).Error; err != nil {
			return err
		}
		if initialAmount > 0 {
			contribution := models.GoalContribution{
				GoalID: goal.ID,
				UserID: userID,
				Amount: initialAmount,
				Date:   utils.Today(),
			}
			return tx.Create(&contribution).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *GoalService) List(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error
	return goals, err
}

func (s *GoalService) Get(userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// GoalUpdate carries optional fields; nil means leave unchanged.
type GoalUpdate struct {
	Name         *string
	Icon         *models.GoalIcon
	TargetAmount *float64
	TargetDate   *time.Time
	IsActive     *bool
}

func (s *GoalService) Update(userID, goalID uint, upd GoalUpdate) (*models.Goal, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Icon != nil {
		updates["icon"] = *upd.Icon
	}
	if upd.TargetAmount != nil {
		updates["target_amount"] = *upd.TargetAmount
	}
	if upd.TargetDate != nil {
		updates["target_date"] = *upd.TargetDate
	}
	if upd.IsActive != nil {
		updates["is_active"] = *upd.IsActive
	}
	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(userID, goalID)
}

func (s *GoalService) Delete(userID, goalID uint) error {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return err
	}
	return s.db.Select("Contributions").Delete(goal).Error
}

// AddContribution appends a contribution row and bumps saved_amount in one
// transaction so the running total stays consistent with the rows.
func (s *GoalService) AddContribution(userID, goalID uint, amount float64, date time.Time) (*models.GoalContribution, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}
	contribution := models.GoalContribution{
		GoalID: goal.ID,
		UserID: userID,
		Amount: amount,
		Date:   date,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&contribution).Error; err != nil {
			return err
		}
		return tx.Model(goal).
			Update("saved_amount", gorm.Expr("saved_amount + ?", amount)).Error
	})
	if err != nil {
		return nil, err
	}
	return &contribution, nil
}

// Enrich computes the read-only derived fields.
func (s *GoalService) Enrich(goal *models.Goal) GoalView {
	return GoalView{
		Goal:            *goal,
		ProgressPercent: utils.GoalProgressPercent(goal.SavedAmount, goal.TargetAmount),
		MonthlyNeeded:   utils.MonthlyAmountNeeded(goal.TargetAmount, goal.SavedAmount, goal.TargetDate),
		MonthsRemaining: utils.MonthsRemaining(goal.TargetDate),
	}
}
