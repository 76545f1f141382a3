package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"snapgram/pkg/logger"
	"snapgram/pkg/preview"
	"snapgram/pkg/queue"
	"snapgram/services/post/internal/entity"
	"snapgram/services/post/internal/repo/persistent"

	"github.com/google/uuid"
)

const (
	RecentPageSize   = 20
	InfinitePageSize = 10

	publishTimeout = 5 * time.Second
)

var (
	ErrMissingIdentifiers = errors.New("post id and image id are required")
	ErrFileRequired       = errors.New("file is required")
	ErrNotFound           = persistent.ErrNotFound
)

// FileStorage is the media store posts keep their images in.
type FileStorage interface {
	UploadFile(ctx context.Context, fileID string, body io.ReadSeeker, contentType string) error
	PreviewURL(ctx context.Context, fileID string, width, height, quality int) (string, error)
	OpenFile(ctx context.Context, fileID string) (io.ReadCloser, string, error)
	DeleteFile(ctx context.Context, fileID string) error
}

type EventPublisher interface {
	PublishPostEvent(ctx context.Context, routingKey string, event queue.PostEvent) error
}

// Upload is a file handed in by a client.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.ReadSeeker
}

type NewPost struct {
	CreatorID string
	Caption   string
	Location  string
	Tags      string
	File      *Upload
}

// PostUpdate carries the editable fields of a post. File is optional; without
// it the stored image is kept.
type PostUpdate struct {
	PostID   string
	Caption  string
	Location string
	Tags     string
	File     *Upload
}

// Page is one slice of the infinite feed. NextCursor is the id of the last
// post, empty when the page is empty.
type Page struct {
	Posts      []*entity.Post `json:"documents"`
	NextCursor string         `json:"next_cursor"`
}

type PostUseCase interface {
	CreatePost(ctx context.Context, input NewPost) (*entity.Post, error)
	UpdatePost(ctx context.Context, input PostUpdate) (*entity.Post, error)
	DeletePost(ctx context.Context, postID, imageID string) error
	GetPostByID(ctx context.Context, postID string) (*entity.Post, error)
	GetPostByImageID(ctx context.Context, imageID string) (*entity.Post, error)
	GetRecentPosts(ctx context.Context) ([]*entity.Post, error)
	GetInfinitePosts(ctx context.Context, cursor string) (*Page, error)
	SearchPosts(ctx context.Context, term string) ([]*entity.Post, error)
	GetUserPosts(ctx context.Context, creatorID string) ([]*entity.Post, error)
	LikePost(ctx context.Context, postID string, likes []string) (*entity.Post, error)
	SavePost(ctx context.Context, userID, postID string) (*entity.Save, error)
	GetSave(ctx context.Context, recordID string) (*entity.Save, error)
	DeleteSavedPost(ctx context.Context, recordID string) error
	GetSavedPosts(ctx context.Context, userID string) ([]*entity.Post, error)
	GetSaves(ctx context.Context, userID string) ([]*entity.Save, error)
	UploadFile(ctx context.Context, upload *Upload) (*entity.File, error)
	GetFilePreview(ctx context.Context, fileID string) (string, error)
	DeleteFile(ctx context.Context, fileID string) error
	RenderPreview(ctx context.Context, dst io.Writer, fileID string, opts preview.Options) error
}

type postUseCase struct {
	postRepo  persistent.PostRepository
	saveRepo  persistent.SaveRepository
	files     FileStorage
	publisher EventPublisher
	logger    *logger.Logger
}

// NewPostUseCase wires the post operations. publisher may be nil, which turns
// event publishing off.
func NewPostUseCase(
	postRepo persistent.PostRepository,
	saveRepo persistent.SaveRepository,
	files FileStorage,
	publisher EventPublisher,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:  postRepo,
		saveRepo:  saveRepo,
		files:     files,
		publisher: publisher,
		logger:    logger,
	}
}

// NormalizeTags removes every space and splits the rest on commas. An empty
// string yields no tags.
func NormalizeTags(s string) []string {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// CreatePost uploads the file, confirms its preview URL and then persists the
// post. A failure after the upload deletes the uploaded file.
func (uc *postUseCase) CreatePost(ctx context.Context, input NewPost) (*entity.Post, error) {
	if input.File == nil {
		return nil, ErrFileRequired
	}

	file, imageURL, err := uc.storeImage(ctx, input.File)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		CreatorID: input.CreatorID,
		Caption:   input.Caption,
		Location:  input.Location,
		Tags:      NormalizeTags(input.Tags),
		Likes:     []string{},
		ImageURL:  imageURL,
		ImageID:   file.ID,
	}
	if err := uc.postRepo.Create(ctx, post); err != nil {
		uc.logger.Error("Failed to create post for %s: %v", input.CreatorID, err)
		uc.discardFile(ctx, file.ID)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.publish(ctx, queue.RoutingPostCreated, post)
	return post, nil
}

// UpdatePost writes the editable fields. With a new file the upload and preview
// steps of CreatePost run first; the new file is deleted if the write fails and
// the old one after it succeeds.
func (uc *postUseCase) UpdatePost(ctx context.Context, input PostUpdate) (*entity.Post, error) {
	if input.PostID == "" {
		return nil, ErrMissingIdentifiers
	}

	current, err := uc.postRepo.GetByID(ctx, input.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	post := &entity.Post{
		ID:       input.PostID,
		Caption:  input.Caption,
		Location: input.Location,
		Tags:     NormalizeTags(input.Tags),
	}

	var newFile *entity.File
	if input.File != nil {
		file, imageURL, err := uc.storeImage(ctx, input.File)
		if err != nil {
			return nil, err
		}
		newFile = file
		post.ImageID = file.ID
		post.ImageURL = imageURL
	}

	if err := uc.postRepo.Update(ctx, post); err != nil {
		uc.logger.Error("Failed to update post %s: %v", input.PostID, err)
		if newFile != nil {
			uc.discardFile(ctx, newFile.ID)
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	if newFile != nil && current.ImageID != "" && current.ImageID != newFile.ID {
		uc.discardFile(ctx, current.ImageID)
	}
	return post, nil
}

// DeletePost removes the post document. The stored file and any saved-post
// records are left in place.
func (uc *postUseCase) DeletePost(ctx context.Context, postID, imageID string) error {
	if postID == "" || imageID == "" {
		return ErrMissingIdentifiers
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		uc.logger.Error("Failed to delete post %s: %v", postID, err)
		return fmt.Errorf("failed to delete post: %w", err)
	}

	uc.publish(ctx, queue.RoutingPostDeleted, &entity.Post{ID: postID, ImageID: imageID})
	return nil
}

func (uc *postUseCase) GetPostByID(ctx context.Context, postID string) (*entity.Post, error) {
	if postID == "" {
		return nil, ErrMissingIdentifiers
	}
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// GetPostByImageID returns the post that references imageID, or ErrNotFound
// when no post does.
func (uc *postUseCase) GetPostByImageID(ctx context.Context, imageID string) (*entity.Post, error) {
	if imageID == "" {
		return nil, ErrMissingIdentifiers
	}
	post, err := uc.postRepo.GetByImageID(ctx, imageID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			uc.logger.Error("Failed to look up post of image %s: %v", imageID, err)
		}
		return nil, fmt.Errorf("failed to get post by image: %w", err)
	}
	return post, nil
}

func (uc *postUseCase) GetRecentPosts(ctx context.Context) ([]*entity.Post, error) {
	posts, err := uc.postRepo.ListRecent(ctx, RecentPageSize)
	if err != nil {
		uc.logger.Error("Failed to list recent posts: %v", err)
		return nil, fmt.Errorf("failed to list recent posts: %w", err)
	}
	return posts, nil
}

func (uc *postUseCase) GetInfinitePosts(ctx context.Context, cursor string) (*Page, error) {
	posts, err := uc.postRepo.ListUpdatedAfter(ctx, cursor, InfinitePageSize)
	if err != nil {
		uc.logger.Error("Failed to list posts after %q: %v", cursor, err)
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	page := &Page{Posts: posts}
	if len(posts) > 0 {
		page.NextCursor = posts[len(posts)-1].ID
	}
	return page, nil
}

func (uc *postUseCase) SearchPosts(ctx context.Context, term string) ([]*entity.Post, error) {
	posts, err := uc.postRepo.Search(ctx, term)
	if err != nil {
		uc.logger.Error("Failed to search posts for %q: %v", term, err)
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	return posts, nil
}

func (uc *postUseCase) GetUserPosts(ctx context.Context, creatorID string) ([]*entity.Post, error) {
	posts, err := uc.postRepo.ListByCreator(ctx, creatorID)
	if err != nil {
		uc.logger.Error("Failed to list posts of %s: %v", creatorID, err)
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}
	return posts, nil
}

// LikePost replaces the liker list with likes.
func (uc *postUseCase) LikePost(ctx context.Context, postID string, likes []string) (*entity.Post, error) {
	if postID == "" {
		return nil, ErrMissingIdentifiers
	}
	post, err := uc.postRepo.SetLikes(ctx, postID, likes)
	if err != nil {
		uc.logger.Error("Failed to set likes on post %s: %v", postID, err)
		return nil, fmt.Errorf("failed to like post: %w", err)
	}
	return post, nil
}

func (uc *postUseCase) SavePost(ctx context.Context, userID, postID string) (*entity.Save, error) {
	if userID == "" || postID == "" {
		return nil, ErrMissingIdentifiers
	}
	save, err := uc.saveRepo.Create(ctx, userID, postID)
	if err != nil {
		uc.logger.Error("Failed to save post %s for %s: %v", postID, userID, err)
		return nil, fmt.Errorf("failed to save post: %w", err)
	}
	return save, nil
}

func (uc *postUseCase) GetSave(ctx context.Context, recordID string) (*entity.Save, error) {
	if recordID == "" {
		return nil, ErrMissingIdentifiers
	}
	save, err := uc.saveRepo.GetByID(ctx, recordID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			uc.logger.Error("Failed to get saved post %s: %v", recordID, err)
		}
		return nil, fmt.Errorf("failed to get saved post: %w", err)
	}
	return save, nil
}

func (uc *postUseCase) DeleteSavedPost(ctx context.Context, recordID string) error {
	if recordID == "" {
		return ErrMissingIdentifiers
	}
	if err := uc.saveRepo.Delete(ctx, recordID); err != nil {
		uc.logger.Error("Failed to delete saved post %s: %v", recordID, err)
		return fmt.Errorf("failed to delete saved post: %w", err)
	}
	return nil
}

func (uc *postUseCase) GetSavedPosts(ctx context.Context, userID string) ([]*entity.Post, error) {
	posts, err := uc.saveRepo.ListSavedPosts(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list saved posts of %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list saved posts: %w", err)
	}
	return posts, nil
}

func (uc *postUseCase) GetSaves(ctx context.Context, userID string) ([]*entity.Save, error) {
	saves, err := uc.saveRepo.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list saves of %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	return saves, nil
}

// UploadFile stores upload under a fresh id.
func (uc *postUseCase) UploadFile(ctx context.Context, upload *Upload) (*entity.File, error) {
	if upload == nil || upload.Body == nil {
		return nil, ErrFileRequired
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	contentType := upload.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	size, err := upload.Body.Seek(0, io.SeekEnd)
	if err == nil {
		_, err = upload.Body.Seek(0, io.SeekStart)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	file := &entity.File{
		ID:          uuid.New().String() + ext,
		ContentType: contentType,
		Size:        size,
	}
	if err := uc.files.UploadFile(ctx, file.ID, upload.Body, contentType); err != nil {
		uc.logger.Error("Failed to upload %s: %v", upload.Filename, err)
		return nil, err
	}
	return file, nil
}

// GetFilePreview returns the preview URL of a stored file at the default size
// and quality.
func (uc *postUseCase) GetFilePreview(ctx context.Context, fileID string) (string, error) {
	previewURL, err := uc.files.PreviewURL(ctx, fileID, preview.DefaultWidth, preview.DefaultHeight, preview.DefaultQuality)
	if err != nil {
		uc.logger.Error("Failed to get preview for %s: %v", fileID, err)
		return "", err
	}
	return previewURL, nil
}

func (uc *postUseCase) DeleteFile(ctx context.Context, fileID string) error {
	if err := uc.files.DeleteFile(ctx, fileID); err != nil {
		uc.logger.Error("Failed to delete file %s: %v", fileID, err)
		return err
	}
	return nil
}

// RenderPreview writes a JPEG rendition of the stored file scaled to fit opts.
func (uc *postUseCase) RenderPreview(ctx context.Context, dst io.Writer, fileID string, opts preview.Options) error {
	body, _, err := uc.files.OpenFile(ctx, fileID)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := preview.Render(dst, body, opts); err != nil {
		uc.logger.Warn("Failed to render preview of %s: %v", fileID, err)
		return err
	}
	return nil
}

// storeImage runs the upload and preview steps shared by create and update.
func (uc *postUseCase) storeImage(ctx context.Context, upload *Upload) (*entity.File, string, error) {
	file, err := uc.UploadFile(ctx, upload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to upload file: %w", err)
	}

	imageURL, err := uc.GetFilePreview(ctx, file.ID)
	if err != nil {
		uc.discardFile(ctx, file.ID)
		return nil, "", fmt.Errorf("failed to get file preview: %w", err)
	}
	return file, imageURL, nil
}

// discardFile deletes a file that no post references. It runs even when ctx
// is already cancelled.
func (uc *postUseCase) discardFile(ctx context.Context, fileID string) {
	if err := uc.files.DeleteFile(context.WithoutCancel(ctx), fileID); err != nil {
		uc.logger.Error("Failed to delete orphaned file %s: %v", fileID, err)
	}
}

func (uc *postUseCase) publish(ctx context.Context, routingKey string, post *entity.Post) {
	if uc.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := queue.PostEvent{
		Type:      routingKey,
		PostID:    post.ID,
		CreatorID: post.CreatorID,
		ImageID:   post.ImageID,
		At:        time.Now().UTC(),
	}
	if err := uc.publisher.PublishPostEvent(ctx, routingKey, event); err != nil {
		uc.logger.Error("Failed to publish %s for post %s: %v", routingKey, post.ID, err)
	}
}
