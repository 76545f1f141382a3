package persistent

import (
	"snapgram/pkg/models"
	"snapgram/services/post/internal/entity"

	"github.com/lib/pq"
)

func ToPostEntity(m *models.Post) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:        m.ID,
		CreatorID: m.CreatorID,
		Caption:   m.Caption,
		ImageURL:  m.ImageURL,
		ImageID:   m.ImageID,
		Location:  m.Location,
		Tags:      nonNil(m.Tags),
		Likes:     nonNil(m.Likes),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.Creator != nil {
		post.Creator = &entity.Creator{
			ID:       m.Creator.ID,
			Name:     m.Creator.Name,
			Username: m.Creator.Username,
			ImageURL: m.Creator.ImageURL,
		}
	}

	return post
}

func ToPostModel(e *entity.Post) *models.Post {
	if e == nil {
		return nil
	}

	return &models.Post{
		ID:        e.ID,
		CreatorID: e.CreatorID,
		Caption:   e.Caption,
		ImageURL:  e.ImageURL,
		ImageID:   e.ImageID,
		Location:  e.Location,
		Tags:      pq.StringArray(nonNil(e.Tags)),
		Likes:     pq.StringArray(nonNil(e.Likes)),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToSaveEntity(m *models.Save) *entity.Save {
	if m == nil {
		return nil
	}

	return &entity.Save{
		ID:        m.ID,
		UserID:    m.UserID,
		PostID:    m.PostID,
		CreatedAt: m.CreatedAt,
	}
}

func toPostEntities(postModels []models.Post) []*entity.Post {
	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
