package post

import (
	"context"
	"fmt"

	"github.com/go-board-api/internal/domain"
	"github.com/go-board-api/internal/pkg/validate"
)

type Service interface {
	List(ctx context.Context) ([]domain.Post, error)
	Create(ctx context.Context, callerID int64, req domain.CreatePostRequest) (*domain.Post, error)
	Delete(ctx context.Context, callerID, postID int64) error
}

type postStore interface {
	List(ctx context.Context) ([]domain.Post, error)
	Insert(ctx context.Context, title, content string, authorID int64) (*domain.Post, error)
	DeleteOwned(ctx context.Context, postID, authorID int64) (bool, error)
}

type userStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type service struct {
	posts postStore
	users userStore
}

func NewService(posts postStore, users userStore) Service {
	return &service{posts: posts, users: users}
}

// List returns all posts, newest first.
func (s *service) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

// Create persists a post for the caller. The caller must exist and be
// verified: being authenticated is not enough to post.
func (s *service) Create(ctx context.Context, callerID int64, req domain.CreatePostRequest) (*domain.Post, error) {
	u, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("unknown user: %w", domain.ErrUnauthorized)
	}
	if !u.Verified {
		return nil, fmt.Errorf("verify your email before posting: %w", domain.ErrForbidden)
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	p, err := s.posts.Insert(ctx, req.Title, req.Content, u.ID)
	if err != nil {
		return nil, err
	}
	p.AuthorName = u.Username
	return p, nil
}

// Delete removes the caller's post. Ownership is checked inside the store's
// DELETE statement; a missing post and someone else's post both report the
// same merged failure.
func (s *service) Delete(ctx context.Context, callerID, postID int64) error {
	ok, err := s.posts.DeleteOwned(ctx, postID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("post not found or not yours: %w", domain.ErrNotFound)
	}
	return nil
}
