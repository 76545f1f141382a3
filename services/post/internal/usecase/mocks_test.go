package usecase

import (
	"context"
	"io"

	"snapgram/pkg/queue"
	"snapgram/services/post/internal/entity"
	"snapgram/services/post/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockPostRepository struct {
	mock.Mock
}

var _ persistent.PostRepository = (*MockPostRepository)(nil)

func (m *MockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) GetByImageID(ctx context.Context, imageID string) (*entity.Post, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) ListUpdatedAfter(ctx context.Context, cursor string, limit int) ([]*entity.Post, error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) Search(ctx context.Context, term string) ([]*entity.Post, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) ListByCreator(ctx context.Context, creatorID string) ([]*entity.Post, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) SetLikes(ctx context.Context, id string, likes []string) (*entity.Post, error) {
	args := m.Called(ctx, id, likes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

type MockSaveRepository struct {
	mock.Mock
}

var _ persistent.SaveRepository = (*MockSaveRepository)(nil)

func (m *MockSaveRepository) Create(ctx context.Context, userID, postID string) (*entity.Save, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Save), args.Error(1)
}

func (m *MockSaveRepository) GetByID(ctx context.Context, id string) (*entity.Save, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Save), args.Error(1)
}

func (m *MockSaveRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaveRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Save, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Save), args.Error(1)
}

func (m *MockSaveRepository) ListSavedPosts(ctx context.Context, userID string) ([]*entity.Post, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

type MockFileStorage struct {
	mock.Mock
}

var _ FileStorage = (*MockFileStorage)(nil)

func (m *MockFileStorage) UploadFile(ctx context.Context, fileID string, body io.ReadSeeker, contentType string) error {
	args := m.Called(ctx, fileID, body, contentType)
	return args.Error(0)
}

func (m *MockFileStorage) PreviewURL(ctx context.Context, fileID string, width, height, quality int) (string, error) {
	args := m.Called(ctx, fileID, width, height, quality)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) OpenFile(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

func (m *MockFileStorage) DeleteFile(ctx context.Context, fileID string) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishPostEvent(ctx context.Context, routingKey string, event queue.PostEvent) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}
