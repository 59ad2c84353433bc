package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChecklistItemType enumerates the financial-health checklist.
type ChecklistItemType string

const (
	ItemEmergencyFund      ChecklistItemType = "EMERGENCY_FUND"
	ItemHealthInsurance    ChecklistItemType = "HEALTH_INSURANCE"
	ItemTermInsurance      ChecklistItemType = "TERM_INSURANCE"
	ItemEPFPPF             ChecklistItemType = "EPF_PPF"
	ItemBasicSavingsHabit  ChecklistItemType = "BASIC_SAVINGS_HABIT"
	ItemNoHighInterestDebt ChecklistItemType = "NO_HIGH_INTEREST_DEBT"
)

// ChecklistItemTypes lists every known item type. Registration seeds one row
// per entry.
func ChecklistItemTypes() []ChecklistItemType {
	return []ChecklistItemType{
		ItemEmergencyFund,
		ItemHealthInsurance,
		ItemTermInsurance,
		ItemEPFPPF,
		ItemBasicSavingsHabit,
		ItemNoHighInterestDebt,
	}
}

func (t ChecklistItemType) Valid() bool {
	for _, known := range ChecklistItemTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ChecklistStatus is the state of one checklist item.
type ChecklistStatus string

const (
	ChecklistComplete   ChecklistStatus = "COMPLETE"
	ChecklistIncomplete ChecklistStatus = "INCOMPLETE"
	ChecklistMissing    ChecklistStatus = "MISSING"
)

func (s ChecklistStatus) Valid() bool {
	switch s {
	case ChecklistComplete, ChecklistIncomplete, ChecklistMissing:
		return true
	}
	return false
}

// UserChecklistItem is one entry of a user's financial-health checklist.
// CompletedAt is set on the first transition into COMPLETE and cleared on any
// transition away from it.
type UserChecklistItem struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	UserID      uint              `gorm:"not null;uniqueIndex:uq_user_checklist_item" json:"user_id"`
	ItemType    ChecklistItemType `gorm:"size:32;not null;uniqueIndex:uq_user_checklist_item" json:"item_type"`
	Status      ChecklistStatus   `gorm:"size:16;default:MISSING" json:"status"`
	Details     datatypes.JSON    `json:"details"`
	CompletedAt *time.Time        `json:"completed_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
