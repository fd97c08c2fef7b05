package postgres

import (
	"context"
	"fmt"

	"github.com/go-board-api/internal/domain"
)

// PostRepo persists posts.
type PostRepo struct {
	db pool
}

func NewPostRepo(db pool) *PostRepo {
	return &PostRepo{db: db}
}

// List returns all posts, newest first, with the author name joined in.
func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.title, p.content, p.author_id, u.username, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC, p.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.AuthorName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// Insert stores a new post attributed to authorID.
func (r *PostRepo) Insert(ctx context.Context, title, content string, authorID int64) (*domain.Post, error) {
	var p domain.Post
	err := r.db.QueryRow(ctx, `
		INSERT INTO posts (title, content, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, content, author_id, created_at`,
		title, content, authorID,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &p, nil
}

// DeleteOwned removes the post only if authorID owns it. The ownership check
// is part of the DELETE statement itself, so there is no read-then-delete
// race. Returns false when nothing was removed; missing post and foreign post
// are indistinguishable.
func (r *PostRepo) DeleteOwned(ctx context.Context, postID, authorID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND author_id = $2`, postID, authorID)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
