package domain

import "time"

// Bounds enforced on post creation.
const (
	PostTitleMaxLen   = 200
	PostContentMaxLen = 10000
)

// Post is a short text post. AuthorName is denormalized from the users table
// on read; it is never stored on the posts row.
type Post struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=10000"`
}
