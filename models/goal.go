package models

import (
	"time"
)

// GoalIcon identifies what a savings goal is for.
type GoalIcon string

const (
	IconBike      GoalIcon = "BIKE"
	IconCar       GoalIcon = "CAR"
	IconHome      GoalIcon = "HOME"
	IconTrip      GoalIcon = "TRIP"
	IconWedding   GoalIcon = "WEDDING"
	IconGadget    GoalIcon = "GADGET"
	IconEducation GoalIcon = "EDUCATION_GOAL"
	IconOtherGoal GoalIcon = "OTHER_GOAL"
)

func (i GoalIcon) Valid() bool {
	switch i {
	case IconBike, IconCar, IconHome, IconTrip, IconWedding, IconGadget, IconEducation, IconOtherGoal:
		return true
	}
	return false
}

// Goal is a savings target. SavedAmount is a running total maintained by the
// goal service: it always equals InitialAmount plus the sum of contributions.
type Goal struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Icon          GoalIcon  `gorm:"size:32;not null" json:"icon"`
	TargetAmount  float64   `gorm:"type:decimal(12,2);not null" json:"target_amount"`
	SavedAmount   float64   `gorm:"type:decimal(12,2);default:0" json:"saved_amount"`
	TargetDate    time.Time `gorm:"type:date;not null" json:"target_date"`
	InitialAmount float64   `gorm:"type:decimal(12,2);default:0" json:"initial_amount"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Contributions []GoalContribution `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// GoalContribution is a single deposit toward a goal.
type GoalContribution struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GoalID    uint      `gorm:"not null;index" json:"goal_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Amount    float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
