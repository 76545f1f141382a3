package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"snapgram/pkg/logger"
	"snapgram/pkg/middleware"
	"snapgram/pkg/preview"
	"snapgram/pkg/s3"
	"snapgram/services/post/internal/entity"
	"snapgram/services/post/internal/presenter"
	"snapgram/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

const ContextUserID = "user_id"

// MaxUploadSize bounds the request body of routes that accept a file.
const MaxUploadSize = 20 << 20

// ProfileLookup maps an authenticated account to its user profile.
type ProfileLookup interface {
	GetByAccountID(ctx context.Context, accountID string) (*entity.Creator, error)
}

type PostHandler struct {
	postUseCase   usecase.PostUseCase
	profiles      ProfileLookup
	logger        *logger.Logger
	maxUploadSize int64
}

func NewPostHandler(postUseCase usecase.PostUseCase, profiles ProfileLookup, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase:   postUseCase,
		profiles:      profiles,
		logger:        logger,
		maxUploadSize: MaxUploadSize,
	}
}

// RequireProfile resolves the profile of the signed-in account and stores its
// id under ContextUserID. It runs after middleware.AuthMiddleware.
func (h *PostHandler) RequireProfile(c *gin.Context) {
	accountID := c.GetString(middleware.ContextAccountID)
	profile, err := h.profiles.GetByAccountID(c.Request.Context(), accountID)
	if err != nil {
		h.logger.Warn("No profile for account %s: %v", accountID, err)
		c.JSON(http.StatusForbidden, gin.H{"error": "User profile not found"})
		c.Abort()
		return
	}
	c.Set(ContextUserID, profile.ID)
	c.Next()
}

type LikeRequest struct {
	Likes []string `json:"likes" binding:"required"`
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Uploads the image, confirms its preview and stores the post. The image is removed again if the post cannot be stored.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        caption formData string false "Caption"
// @Param        location formData string false "Location"
// @Param        tags formData string false "Comma separated tags"
// @Param        file formData file true "Image file"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	upload, closeFile, err := h.formUpload(c, true)
	if err != nil {
		uploadFailed(c, err, "Image file is required")
		return
	}
	defer closeFile()

	post, err := h.postUseCase.CreatePost(c.Request.Context(), usecase.NewPost{
		CreatorID: c.GetString(ContextUserID),
		Caption:   c.PostForm("caption"),
		Location:  c.PostForm("location"),
		Tags:      c.PostForm("tags"),
		File:      upload,
	})
	if err != nil {
		h.fail(c, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Updates caption, location and tags. A new image replaces the old one, which is deleted afterwards.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        caption formData string false "Caption"
// @Param        location formData string false "Location"
// @Param        tags formData string false "Comma separated tags"
// @Param        file formData file false "Replacement image"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("id")
	if !h.requireOwner(c, postID) {
		return
	}

	upload, closeFile, err := h.formUpload(c, false)
	if err != nil {
		uploadFailed(c, err, "Failed to read image file")
		return
	}
	defer closeFile()

	post, err := h.postUseCase.UpdatePost(c.Request.Context(), usecase.PostUpdate{
		PostID:   postID,
		Caption:  c.PostForm("caption"),
		Location: c.PostForm("location"),
		Tags:     c.PostForm("tags"),
		File:     upload,
	})
	if err != nil {
		h.fail(c, err, "Failed to update post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes the post document. Both the post id and its image id are required.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        image_id query string true "Image ID of the post"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("id")
	imageID := c.Query("image_id")
	if imageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": usecase.ErrMissingIdentifiers.Error()})
		return
	}
	if !h.requireOwner(c, postID) {
		return
	}

	if err := h.postUseCase.DeletePost(c.Request.Context(), postID, imageID); err != nil {
		h.fail(c, err, "Failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetPost godoc
// @Summary      Get post by ID
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPostByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to get post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetRecentPosts godoc
// @Summary      Recent posts
// @Description  The 20 most recently created posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /posts/recent [get]
func (h *PostHandler) GetRecentPosts(c *gin.Context) {
	posts, err := h.postUseCase.GetRecentPosts(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": posts, "total": len(posts)})
}

// GetInfinitePosts godoc
// @Summary      Infinite feed page
// @Description  Pages of 10 posts by most recent update. Pass next_cursor of the previous page as cursor.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        cursor query string false "Id of the last post seen"
// @Success      200  {object}  usecase.Page
// @Failure      404  {object}  map[string]string
// @Router       /posts/infinite [get]
func (h *PostHandler) GetInfinitePosts(c *gin.Context) {
	page, err := h.postUseCase.GetInfinitePosts(c.Request.Context(), c.Query("cursor"))
	if err != nil {
		h.fail(c, err, "Failed to fetch posts")
		return
	}
	c.JSON(http.StatusOK, page)
}

// SearchPosts godoc
// @Summary      Search posts
// @Description  Matches the term against post captions
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Search term"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /posts/search [get]
func (h *PostHandler) SearchPosts(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search term is required"})
		return
	}

	posts, err := h.postUseCase.SearchPosts(c.Request.Context(), term)
	if err != nil {
		h.fail(c, err, "Failed to search posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": posts, "total": len(posts)})
}

// GetGrid godoc
// @Summary      Post grid
// @Description  Grid items for a listing, with optional creator byline and stats for the current user
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        source query string false "recent, saved, user or search" Enums(recent, saved, user, search)
// @Param        user_id query string false "Creator for source=user"
// @Param        q query string false "Term for source=search"
// @Param        show_user query bool false "Include creator byline" default(true)
// @Param        show_stats query bool false "Include stats" default(true)
// @Success      200  {array}   presenter.GridItem
// @Failure      400  {object}  map[string]string
// @Router       /posts/grid [get]
func (h *PostHandler) GetGrid(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString(ContextUserID)

	var (
		posts []*entity.Post
		err   error
	)
	switch c.DefaultQuery("source", "recent") {
	case "recent":
		posts, err = h.postUseCase.GetRecentPosts(ctx)
	case "saved":
		posts, err = h.postUseCase.GetSavedPosts(ctx, userID)
	case "user":
		posts, err = h.postUseCase.GetUserPosts(ctx, c.DefaultQuery("user_id", userID))
	case "search":
		term := c.Query("q")
		if term == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Search term is required"})
			return
		}
		posts, err = h.postUseCase.SearchPosts(ctx, term)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown grid source"})
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to fetch posts")
		return
	}

	showUser := queryBool(c, "show_user", true)
	showStats := queryBool(c, "show_stats", true)

	viewer := presenter.Viewer{UserID: userID}
	if showStats {
		viewer.Saves, err = h.postUseCase.GetSaves(ctx, userID)
		if err != nil {
			h.fail(c, err, "Failed to fetch saved posts")
			return
		}
	}

	c.JSON(http.StatusOK, presenter.RenderGrid(posts, viewer,
		presenter.WithUser(showUser),
		presenter.WithStats(showStats),
	))
}

// LikePost godoc
// @Summary      Set the likes of a post
// @Description  Replaces the whole list of users who like the post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body LikeRequest true "Full liker list"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/like [post]
func (h *PostHandler) LikePost(c *gin.Context) {
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.LikePost(c.Request.Context(), c.Param("id"), req.Likes)
	if err != nil {
		h.fail(c, err, "Failed to like post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// SavePost godoc
// @Summary      Save a post
// @Tags         saves
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      201  {object}  entity.Save
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id}/save [post]
func (h *PostHandler) SavePost(c *gin.Context) {
	save, err := h.postUseCase.SavePost(c.Request.Context(), c.GetString(ContextUserID), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to save post")
		return
	}
	c.JSON(http.StatusCreated, save)
}

// DeleteSavedPost godoc
// @Summary      Remove a saved post
// @Tags         saves
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Saved record ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /saves/{id} [delete]
func (h *PostHandler) DeleteSavedPost(c *gin.Context) {
	recordID := c.Param("id")
	save, err := h.postUseCase.GetSave(c.Request.Context(), recordID)
	if err != nil {
		h.fail(c, err, "Failed to get saved post")
		return
	}
	if save.UserID != c.GetString(ContextUserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only remove your own saved posts"})
		return
	}

	if err := h.postUseCase.DeleteSavedPost(c.Request.Context(), recordID); err != nil {
		h.fail(c, err, "Failed to delete saved post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetUserPosts godoc
// @Summary      Posts of a user
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /users/{id}/posts [get]
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	posts, err := h.postUseCase.GetUserPosts(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": posts, "total": len(posts)})
}

// GetSavedPosts godoc
// @Summary      Saved posts of the current user
// @Tags         saves
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /users/{id}/saves [get]
func (h *PostHandler) GetSavedPosts(c *gin.Context) {
	userID := c.Param("id")
	if userID != c.GetString(ContextUserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only view your own saved posts"})
		return
	}

	posts, err := h.postUseCase.GetSavedPosts(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Failed to fetch saved posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": posts, "total": len(posts)})
}

// UploadFile godoc
// @Summary      Upload a file
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "File"
// @Success      201  {object}  entity.File
// @Failure      400  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /files [post]
func (h *PostHandler) UploadFile(c *gin.Context) {
	upload, closeFile, err := h.formUpload(c, true)
	if err != nil {
		uploadFailed(c, err, "File is required")
		return
	}
	defer closeFile()

	file, err := h.postUseCase.UploadFile(c.Request.Context(), upload)
	if err != nil {
		h.fail(c, err, "Failed to upload file")
		return
	}
	c.JSON(http.StatusCreated, file)
}

// GetFilePreview godoc
// @Summary      File preview
// @Description  JPEG rendition of a stored image scaled to fit width x height
// @Tags         files
// @Produce      image/jpeg
// @Param        id path string true "File ID"
// @Param        width query int false "Max width" default(2000)
// @Param        height query int false "Max height" default(2000)
// @Param        quality query int false "JPEG quality 1-100" default(100)
// @Success      200  {file}    binary
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /files/{id}/preview [get]
func (h *PostHandler) GetFilePreview(c *gin.Context) {
	opts := preview.Options{
		Width:   queryInt(c, "width"),
		Height:  queryInt(c, "height"),
		Quality: queryInt(c, "quality"),
	}

	var buf bytes.Buffer
	if err := h.postUseCase.RenderPreview(c.Request.Context(), &buf, c.Param("id"), opts); err != nil {
		h.fail(c, err, "Failed to render preview")
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
}

// DeleteFile godoc
// @Summary      Delete a file
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "File ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /files/{id} [delete]
func (h *PostHandler) DeleteFile(c *gin.Context) {
	fileID := c.Param("id")
	post, err := h.postUseCase.GetPostByImageID(c.Request.Context(), fileID)
	switch {
	case err == nil && post.CreatorID != c.GetString(ContextUserID):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own files"})
		return
	case err == nil:
		c.JSON(http.StatusConflict, gin.H{"error": "File is the image of a post; delete or update the post instead"})
		return
	case !errors.Is(err, usecase.ErrNotFound):
		h.fail(c, err, "Failed to delete file")
		return
	}

	if err := h.postUseCase.DeleteFile(c.Request.Context(), fileID); err != nil {
		h.fail(c, err, "Failed to delete file")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requireOwner writes the error response and returns false unless the current
// user created postID.
func (h *PostHandler) requireOwner(c *gin.Context, postID string) bool {
	post, err := h.postUseCase.GetPostByID(c.Request.Context(), postID)
	if err != nil {
		h.fail(c, err, "Failed to get post")
		return false
	}
	if post.CreatorID != c.GetString(ContextUserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only change your own posts"})
		return false
	}
	return true
}

func (h *PostHandler) fail(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, s3.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, usecase.ErrMissingIdentifiers), errors.Is(err, usecase.ErrFileRequired),
		errors.Is(err, preview.ErrInvalidDimensions), errors.Is(err, preview.ErrImageTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("%s: %v", message, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

// formUpload opens the "file" form field. With required false a missing field
// yields a nil upload. Bodies over maxUploadSize fail with *http.MaxBytesError.
func (h *PostHandler) formUpload(c *gin.Context, required bool) (*usecase.Upload, func(), error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)

	header, err := c.FormFile("file")
	if err != nil {
		if !required && errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}

	return &usecase.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}, func() { file.Close() }, nil
}

func uploadFailed(c *gin.Context, err error, message string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File is too large"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func queryBool(c *gin.Context, key string, fallback bool) bool {
	v, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}
