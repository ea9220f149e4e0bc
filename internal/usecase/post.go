package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/core/port"
	"github.com/gutscas/santo-dashboard/internal/repository"
)

const maxPostTitleLength = 100

var (
	// ErrPostNotFound indicates no post matches the identifier.
	ErrPostNotFound = errors.New("post not found")
	// ErrPostTitleTooLong indicates the title exceeds the column limit.
	ErrPostTitleTooLong = errors.New("post title too long")
)

// PostInput carries the payload for creating or updating a post.
type PostInput struct {
	Title   string
	Content string
}

// PostService manages free-standing post records.
type PostService struct {
	posts port.PostRepository
	now   func() time.Time
}

// NewPostService constructs a PostService.
func NewPostService(posts port.PostRepository) *PostService {
	return &PostService{posts: posts, now: time.Now}
}

// WithClock allows tests to override the clock used by the service.
func (s *PostService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// Create stores a new post.
func (s *PostService) Create(ctx context.Context, input PostInput) (*domain.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post := domain.Post{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: s.now().UTC(),
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return &post, nil
}

// GetByID retrieves a post by its identifier.
func (s *PostService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("lookup post: %w", err)
	}
	return post, nil
}

// Update replaces the title and content of an existing post.
func (s *PostService) Update(ctx context.Context, id string, input PostInput) (*domain.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Content = input.Content

	if err := s.posts.Update(ctx, *post); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	return post, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// ListAll returns every post, newest first.
func (s *PostService) ListAll(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func validatePostInput(input PostInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(input.Title) > maxPostTitleLength {
		return ErrPostTitleTooLong
	}
	return nil
}
