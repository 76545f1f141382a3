package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account holds credentials. It is linked to exactly one User profile through
// User.AccountID, but the two rows are written independently.
type Account struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

type User struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	AccountID string    `gorm:"type:uuid;uniqueIndex;not null" json:"account_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Username  string    `gorm:"not null" json:"username"`
	ImageURL  string    `json:"image_url"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
