package entity

import "time"

// Creator is the byline part of a user profile carried on each post.
type Creator struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
}

type Post struct {
	ID        string    `json:"id"`
	CreatorID string    `json:"creator_id"`
	Creator   *Creator  `json:"creator,omitempty"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"image_url"`
	ImageID   string    `json:"image_id"`
	Location  string    `json:"location"`
	Tags      []string  `json:"tags"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LikedBy reports whether userID is in the post's liker list.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Save is a saved-post (bookmark) record.
type Save struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// File is an uploaded object in media storage.
type File struct {
	ID          string `json:"id"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
