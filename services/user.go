package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ProfileUpdate carries optional profile fields; nil means leave unchanged.
type ProfileUpdate struct {
	Name *string
	Age  *int
	City *string
}

// FixedExpenseInput is one category/amount pair for replace-all updates.
type FixedExpenseInput struct {
	Category models.FixedExpenseCategory
	Amount   float64
}

// GetUser loads a user with fixed expenses preloaded.
func (s *UserService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("FixedExpenses").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID uint, upd ProfileUpdate) (*models.User, error) {
	updates := map[string]interface{}{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Age != nil {
		updates["age"] = *upd.Age
	}
	if upd.City != nil {
		updates["city"] = *upd.City
	}
	if len(updates) > 0 {
		if err := s.db.Model(&models.User{}).Where("id = ?", userID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetUser(userID)
}

func (s *UserService) SetIncome(userID uint, monthlySalary float64, otherIncome float64) (*models.User, error) {
	err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"monthly_salary": monthlySalary,
		"other_income":   otherIncome,
	}).Error
	if err != nil {
		return nil, err
	}
	return s.GetUser(userID)
}

// SetFixedExpenses replaces the user's fixed expenses wholesale.
func (s *UserService) SetFixedExpenses(userID uint, expenses []FixedExpenseInput) (*models.User, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.FixedExpense{}).Error; err != nil {
			return err
		}
		for _, e := range expenses {
			row := models.FixedExpense{UserID: userID, Category: e.Category, Amount: e.Amount}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetUser(userID)
}

func (s *UserService) SetDependents(userID uint, dependentType models.DependentType) (*models.User, error) {
	err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("dependent_type", dependentType).Error
	if err != nil {
		return nil, err
	}
	return s.GetUser(userID)
}

// CompleteOnboarding requires income to be set first.
func (s *UserService) CompleteOnboarding(userID uint) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user.MonthlySalary == nil || *user.MonthlySalary <= 0 {
		return nil, ErrInvalidState
	}
	if err := s.db.Model(user).Update("onboarding_complete", true).Error; err != nil {
		return nil, err
	}
	user.OnboardingComplete = true
	return user, nil
}
