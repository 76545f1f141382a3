package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Save is a bookmark linking a user to a post. Deleting the post leaves it in place.
type Save struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Save) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
