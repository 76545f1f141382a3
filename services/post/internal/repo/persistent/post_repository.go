package persistent

import (
	"context"
	"errors"
	"strings"
	"time"

	"snapgram/pkg/models"
	"snapgram/services/post/internal/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetByImageID(ctx context.Context, imageID string) (*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id string) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Post, error)
	ListUpdatedAfter(ctx context.Context, cursor string, limit int) ([]*entity.Post, error)
	Search(ctx context.Context, term string) ([]*entity.Post, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*entity.Post, error)
	SetLikes(ctx context.Context, id string, likes []string) (*entity.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) withCreator(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Creator")
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return err
	}

	created, err := r.GetByID(ctx, postModel.ID)
	if err != nil {
		return err
	}
	*post = *created
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var postModel models.Post
	if err := r.withCreator(ctx).Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, notFound(err)
	}
	return ToPostEntity(&postModel), nil
}

// GetByImageID returns the post whose image is imageID.
func (r *postRepository) GetByImageID(ctx context.Context, imageID string) (*entity.Post, error) {
	var postModel models.Post
	if err := r.withCreator(ctx).Where("image_id = ?", imageID).First(&postModel).Error; err != nil {
		return nil, notFound(err)
	}
	return ToPostEntity(&postModel), nil
}

// Update writes caption, location and tags. The image pair is written only
// when post.ImageID is set, so an update without a new file keeps it as is.
func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	columns := []string{"caption", "location", "tags", "updated_at"}
	if post.ImageID != "" {
		columns = append(columns, "image_url", "image_id")
	}

	postModel := ToPostModel(post)
	postModel.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Select(columns).
		Updates(postModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	updated, err := r.GetByID(ctx, post.ID)
	if err != nil {
		return err
	}
	*post = *updated
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Post, error) {
	var postModels []models.Post
	if err := r.withCreator(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&postModels).Error; err != nil {
		return nil, err
	}
	return toPostEntities(postModels), nil
}

// ListUpdatedAfter pages through posts by most recent update. cursor is the id
// of the last post of the previous page; an empty cursor starts from the top.
func (r *postRepository) ListUpdatedAfter(ctx context.Context, cursor string, limit int) ([]*entity.Post, error) {
	query := r.withCreator(ctx).Order("updated_at DESC").Order("id DESC").Limit(limit)

	if cursor != "" {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", cursor).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrNotFound
		}

		cursorUpdated := r.db.Model(&models.Post{}).Select("updated_at").Where("id = ?", cursor)
		query = query.Where(
			"updated_at < (?) OR (updated_at = (?) AND id < ?)",
			cursorUpdated, cursorUpdated, cursor,
		)
	}

	var postModels []models.Post
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}
	return toPostEntities(postModels), nil
}

// Search matches term against the caption only.
func (r *postRepository) Search(ctx context.Context, term string) ([]*entity.Post, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	var postModels []models.Post
	if err := r.withCreator(ctx).
		Where(`LOWER(caption) LIKE ? ESCAPE '\'`, pattern).
		Order("created_at DESC").
		Find(&postModels).Error; err != nil {
		return nil, err
	}
	return toPostEntities(postModels), nil
}

func (r *postRepository) ListByCreator(ctx context.Context, creatorID string) ([]*entity.Post, error) {
	var postModels []models.Post
	if err := r.withCreator(ctx).Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&postModels).Error; err != nil {
		return nil, err
	}
	return toPostEntities(postModels), nil
}

// SetLikes replaces the whole liker list. Concurrent writers race and the last
// one wins.
func (r *postRepository) SetLikes(ctx context.Context, id string, likes []string) (*entity.Post, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Post{ID: id}).
		Update("likes", pq.StringArray(nonNil(likes)))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
