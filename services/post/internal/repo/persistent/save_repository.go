package persistent

import (
	"context"

	"snapgram/pkg/models"
	"snapgram/services/post/internal/entity"

	"gorm.io/gorm"
)

type SaveRepository interface {
	Create(ctx context.Context, userID, postID string) (*entity.Save, error)
	GetByID(ctx context.Context, id string) (*entity.Save, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Save, error)
	ListSavedPosts(ctx context.Context, userID string) ([]*entity.Post, error)
}

type saveRepository struct {
	db *gorm.DB
}

func NewSaveRepository(db *gorm.DB) SaveRepository {
	return &saveRepository{db: db}
}

func (r *saveRepository) Create(ctx context.Context, userID, postID string) (*entity.Save, error) {
	saveModel := &models.Save{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(saveModel).Error; err != nil {
		return nil, err
	}
	return ToSaveEntity(saveModel), nil
}

func (r *saveRepository) GetByID(ctx context.Context, id string) (*entity.Save, error) {
	var saveModel models.Save
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&saveModel).Error; err != nil {
		return nil, notFound(err)
	}
	return ToSaveEntity(&saveModel), nil
}

func (r *saveRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Save{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *saveRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Save, error) {
	var saveModels []models.Save
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&saveModels).Error; err != nil {
		return nil, err
	}

	saves := make([]*entity.Save, len(saveModels))
	for i := range saveModels {
		saves[i] = ToSaveEntity(&saveModels[i])
	}
	return saves, nil
}

// ListSavedPosts returns the posts userID saved, most recently saved first.
// Records pointing at deleted posts are skipped.
func (r *saveRepository) ListSavedPosts(ctx context.Context, userID string) ([]*entity.Post, error) {
	var postModels []models.Post
	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Joins("INNER JOIN saves ON saves.post_id = posts.id").
		Where("saves.user_id = ?", userID).
		Order("saves.created_at DESC").
		Find(&postModels).Error; err != nil {
		return nil, err
	}
	return toPostEntities(postModels), nil
}
