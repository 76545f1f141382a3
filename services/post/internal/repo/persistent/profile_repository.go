package persistent

import (
	"context"

	"snapgram/pkg/models"
	"snapgram/services/post/internal/entity"

	"gorm.io/gorm"
)

// ProfileRepository resolves the profile behind an authenticated account.
type ProfileRepository interface {
	GetByAccountID(ctx context.Context, accountID string) (*entity.Creator, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByAccountID(ctx context.Context, accountID string) (*entity.Creator, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &entity.Creator{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		ImageURL: user.ImageURL,
	}, nil
}
