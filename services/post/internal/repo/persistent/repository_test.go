package persistent

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"snapgram/pkg/database"
	"snapgram/pkg/models"
	"snapgram/services/post/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, accountID string) *models.User {
	t.Helper()
	user := &models.User{AccountID: accountID, Name: "Ann Lee", Email: accountID + "@example.com", Username: "ann"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedPosts creates n posts; post i is created at base+i minutes and updated
// at base+(n-i) minutes, so the two orderings are reversed.
func seedPosts(t *testing.T, repo PostRepository, creatorID string, n int) []*entity.Post {
	t.Helper()
	posts := make([]*entity.Post, n)
	for i := 0; i < n; i++ {
		post := &entity.Post{
			ID:        fmt.Sprintf("post-%02d", i),
			CreatorID: creatorID,
			Caption:   fmt.Sprintf("caption %d", i),
			ImageURL:  "http://files/" + fmt.Sprint(i),
			ImageID:   fmt.Sprintf("file-%02d.jpg", i),
			Tags:      []string{"tag"},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(n-i) * time.Minute),
		}
		require.NoError(t, repo.Create(context.Background(), post))
		posts[i] = post
	}
	return posts
}

func ids(posts []*entity.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestPostRepository_CreateLoadsCreator(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	repo := NewPostRepository(db)

	post := &entity.Post{
		CreatorID: user.ID,
		Caption:   "Sunset",
		ImageURL:  "http://files/1",
		ImageID:   "file-1.jpg",
		Location:  "Lisbon",
		Tags:      []string{"sun", "sea"},
	}
	require.NoError(t, repo.Create(context.Background(), post))

	assert.NotEmpty(t, post.ID)
	require.NotNil(t, post.Creator)
	assert.Equal(t, "Ann Lee", post.Creator.Name)
	assert.Equal(t, []string{"sun", "sea"}, post.Tags)
	assert.Equal(t, []string{}, post.Likes)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepository_ListRecent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	repo := NewPostRepository(db)
	seedPosts(t, repo, user.ID, 25)

	posts, err := repo.ListRecent(context.Background(), 20)
	require.NoError(t, err)

	require.Len(t, posts, 20)
	assert.Equal(t, "post-24", posts[0].ID)
	assert.Equal(t, "post-05", posts[19].ID)
}

func TestPostRepository_ListUpdatedAfter_Pages(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	repo := NewPostRepository(db)
	seedPosts(t, repo, user.ID, 25)
	ctx := context.Background()

	first, err := repo.ListUpdatedAfter(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, "post-00", first[0].ID)
	assert.Equal(t, "post-09", first[9].ID)

	second, err := repo.ListUpdatedAfter(ctx, first[9].ID, 10)
	require.NoError(t, err)
	require.Len(t, second, 10)
	assert.Equal(t, "post-10", second[0].ID)

	third, err := repo.ListUpdatedAfter(ctx, second[9].ID, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"post-20", "post-21", "post-22", "post-23", "post-24"}, ids(third))

	last, err := repo.ListUpdatedAfter(ctx, third[len(third)-1].ID, 10)
	require.NoError(t, err)
	assert.Empty(t, last)
}

func TestPostRepository_ListUpdatedAfter_UnknownCursor(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))

	_, err := repo.ListUpdatedAfter(context.Background(), "missing", 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepository_SearchCaptionOnly(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	repo := NewPostRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Post{CreatorID: user.ID, Caption: "Beach Day", ImageURL: "u", ImageID: "a", CreatedAt: base, UpdatedAt: base}))
	require.NoError(t, repo.Create(ctx, &entity.Post{CreatorID: user.ID, Caption: "city", Location: "beach", ImageURL: "u", ImageID: "b", CreatedAt: base, UpdatedAt: base}))
	require.NoError(t, repo.Create(ctx, &entity.Post{CreatorID: user.ID, Caption: "100% fun", ImageURL: "u", ImageID: "c", CreatedAt: base, UpdatedAt: base}))

	posts, err := repo.Search(ctx, "beach")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Beach Day", posts[0].Caption)

	posts, err = repo.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "100% fun", posts[0].Caption)
}

func TestPostRepository_UpdateWithoutImageKeepsImage(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	repo := NewPostRepository(db)
	ctx := context.Background()
	post := seedPosts(t, repo, user.ID, 1)[0]

	update := &entity.Post{ID: post.ID, Caption: "new caption", Location: "Porto", Tags: []string{"x"}}
	require.NoError(t, repo.Update(ctx, update))

	assert.Equal(t, "new caption", update.Caption)
	assert.Equal(t, "Porto", update.Location)
	assert.Equal(t, []string{"x"}, update.Tags)
	assert.Equal(t, post.ImageID, update.ImageID)
	assert.Equal(t, post.ImageURL, update.ImageURL)
	assert.True(t, update.UpdatedAt.After(post.UpdatedAt))
}

func TestPostRepository_UpdateReplacesImage(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	repo := NewPostRepository(db)
	ctx := context.Background()
	post := seedPosts(t, repo, user.ID, 1)[0]

	update := &entity.Post{ID: post.ID, Caption: post.Caption, ImageURL: "http://files/new", ImageID: "new.jpg"}
	require.NoError(t, repo.Update(ctx, update))

	assert.Equal(t, "new.jpg", update.ImageID)
	assert.Equal(t, "http://files/new", update.ImageURL)
}

func TestPostRepository_UpdateMissing(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))

	err := repo.Update(context.Background(), &entity.Post{ID: "missing", Caption: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepository_SetLikesOverwrites(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	repo := NewPostRepository(db)
	ctx := context.Background()
	post := seedPosts(t, repo, user.ID, 1)[0]

	_, err := repo.SetLikes(ctx, post.ID, []string{"u1", "u2"})
	require.NoError(t, err)

	updated, err := repo.SetLikes(ctx, post.ID, []string{"u3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u3"}, updated.Likes)

	updated, err = repo.SetLikes(ctx, post.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, updated.Likes)
}

func TestPostRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	repo := NewPostRepository(db)
	ctx := context.Background()
	post := seedPosts(t, repo, user.ID, 1)[0]

	require.NoError(t, repo.Delete(ctx, post.ID))
	assert.ErrorIs(t, repo.Delete(ctx, post.ID), ErrNotFound)
}

func TestPostRepository_ListByCreator(t *testing.T) {
	db := newTestDB(t)
	ann := seedUser(t, db, "account-1")
	bob := seedUser(t, db, "account-2")
	repo := NewPostRepository(db)
	seedPosts(t, repo, ann.ID, 3)
	require.NoError(t, repo.Create(context.Background(), &entity.Post{CreatorID: bob.ID, ImageURL: "u", ImageID: "b"}))

	posts, err := repo.ListByCreator(context.Background(), ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"post-02", "post-01", "post-00"}, ids(posts))
}

func TestSaveRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	posts := seedPosts(t, NewPostRepository(db), user.ID, 2)
	repo := NewSaveRepository(db)
	ctx := context.Background()

	save, err := repo.Create(ctx, user.ID, posts[1].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, save.ID)

	saves, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, posts[1].ID, saves[0].PostID)

	saved, err := repo.ListSavedPosts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, posts[1].ID, saved[0].ID)
	require.NotNil(t, saved[0].Creator)

	require.NoError(t, repo.Delete(ctx, save.ID))
	assert.ErrorIs(t, repo.Delete(ctx, save.ID), ErrNotFound)
}

func TestSaveRepository_SurvivesPostDeletion(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	postRepo := NewPostRepository(db)
	post := seedPosts(t, postRepo, user.ID, 1)[0]
	repo := NewSaveRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, user.ID, post.ID)
	require.NoError(t, err)
	require.NoError(t, postRepo.Delete(ctx, post.ID))

	saves, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, saves, 1)

	saved, err := repo.ListSavedPosts(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestProfileRepository_GetByAccountID(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	repo := NewProfileRepository(db)

	profile, err := repo.GetByAccountID(context.Background(), "account-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)

	_, err = repo.GetByAccountID(context.Background(), "account-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepository_GetByImageID(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	repo := NewPostRepository(db)
	ctx := context.Background()
	posts := seedPosts(t, repo, user.ID, 2)

	post, err := repo.GetByImageID(ctx, "file-01.jpg")
	require.NoError(t, err)
	assert.Equal(t, posts[1].ID, post.ID)
	assert.Equal(t, user.ID, post.CreatorID)

	_, err = repo.GetByImageID(ctx, "unreferenced.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "account-1")
	post := seedPosts(t, NewPostRepository(db), user.ID, 1)[0]
	repo := NewSaveRepository(db)
	ctx := context.Background()

	save, err := repo.Create(ctx, user.ID, post.ID)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, save.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, post.ID, got.PostID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
