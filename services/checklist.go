package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
)

type ChecklistService struct {
	db *gorm.DB
}

func NewChecklistService(db *gorm.DB) *ChecklistService {
	return &ChecklistService{db: db}
}

// ChecklistScore summarizes checklist completion.
type ChecklistScore struct {
	Completed  int                        `json:"completed"`
	Total      int                        `json:"total"`
	ScoreLabel string                     `json:"score_label"`
	Items      []models.UserChecklistItem `json:"items"`
}

func (s *ChecklistService) Items(userID uint) ([]models.UserChecklistItem, error) {
	var items []models.UserChecklistItem
	err := s.db.Where("user_id = ?", userID).Order("id").Find(&items).Error
	return items, err
}

func (s *ChecklistService) Item(userID uint, itemType models.ChecklistItemType) (*models.UserChecklistItem, error) {
	var item models.UserChecklistItem
	err := s.db.Where("user_id = ? AND item_type = ?", userID, itemType).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItem sets status and details. completed_at is stamped on the first
// transition into COMPLETE and cleared on any transition away from it.
func (s *ChecklistService) UpdateItem(userID uint, itemType models.ChecklistItemType, status models.ChecklistStatus, details datatypes.JSON) (*models.UserChecklistItem, error) {
	item, err := s.Item(userID, itemType)
	if err != nil {
		return nil, err
	}
	item.Status = status
	item.Details = details
	if status == models.ChecklistComplete && item.CompletedAt == nil {
		now := time.Now().UTC()
		item.CompletedAt = &now
	} else if status != models.ChecklistComplete {
		item.CompletedAt = nil
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ChecklistService) Score(userID uint) (*ChecklistScore, error) {
	items, err := s.Items(userID)
	if err != nil {
		return nil, err
	}
	completed := 0
	for _, it := range items {
		if it.Status == models.ChecklistComplete {
			completed++
		}
	}
	return &ChecklistScore{
		Completed:  completed,
		Total:      len(items),
		ScoreLabel: fmt.Sprintf("%d/%d", completed, len(items)),
		Items:      items,
	}, nil
}
