package models

import (
	"time"
)

// Chat message roles.
const (
	ChatRoleUser = "user"
	ChatRoleBot  = "bot"
)

// ChatMessage is one entry of a user's append-only conversation log.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Role      string    `gorm:"size:10;not null" json:"role"`
	Content   string    `gorm:"size:2000;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
