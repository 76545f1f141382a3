package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Post struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	CreatorID string         `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator   *User          `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Caption   string         `gorm:"type:text" json:"caption"`
	ImageURL  string         `gorm:"type:varchar(1000);not null" json:"image_url"`
	ImageID   string         `gorm:"type:varchar(255);not null;index" json:"image_id"`
	Location  string         `gorm:"type:varchar(255)" json:"location"`
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`
	Likes     pq.StringArray `gorm:"type:text[]" json:"likes"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
