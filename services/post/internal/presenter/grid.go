// Package presenter projects posts into the shapes the feed and grid views
// render. It performs no I/O.
package presenter

import (
	"snapgram/services/post/internal/entity"
)

type Byline struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type Stats struct {
	Likes         int    `json:"likes"`
	LikedByViewer bool   `json:"liked_by_viewer"`
	SavedByViewer bool   `json:"saved_by_viewer"`
	SaveID        string `json:"save_id,omitempty"`
}

type GridItem struct {
	ID       string  `json:"id"`
	Link     string  `json:"link"`
	ImageURL string  `json:"image_url"`
	Creator  *Byline `json:"creator,omitempty"`
	Stats    *Stats  `json:"stats,omitempty"`
}

// Viewer is the user the grid is rendered for. Saves feeds the saved state of
// the stats block; the grid never looks it up itself.
type Viewer struct {
	UserID string
	Saves  []*entity.Save
}

type gridOptions struct {
	showUser  bool
	showStats bool
}

type Option func(*gridOptions)

// WithUser toggles the creator byline. It is shown by default.
func WithUser(show bool) Option {
	return func(o *gridOptions) { o.showUser = show }
}

// WithStats toggles the stats block. It is shown by default.
func WithStats(show bool) Option {
	return func(o *gridOptions) { o.showStats = show }
}

// RenderGrid maps posts to grid items in order. A nil slice renders an empty
// grid.
func RenderGrid(posts []*entity.Post, viewer Viewer, opts ...Option) []GridItem {
	o := gridOptions{showUser: true, showStats: true}
	for _, opt := range opts {
		opt(&o)
	}

	saved := make(map[string]string, len(viewer.Saves))
	for _, s := range viewer.Saves {
		saved[s.PostID] = s.ID
	}

	items := make([]GridItem, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}

		item := GridItem{
			ID:       post.ID,
			Link:     "/posts/" + post.ID,
			ImageURL: post.ImageURL,
		}
		if o.showUser && post.Creator != nil {
			item.Creator = &Byline{Name: post.Creator.Name, ImageURL: post.Creator.ImageURL}
		}
		if o.showStats {
			saveID, isSaved := saved[post.ID]
			item.Stats = &Stats{
				Likes:         len(post.Likes),
				LikedByViewer: viewer.UserID != "" && post.LikedBy(viewer.UserID),
				SavedByViewer: isSaved,
				SaveID:        saveID,
			}
		}
		items = append(items, item)
	}
	return items
}
