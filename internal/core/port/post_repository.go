package port

import (
	"context"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
)

// PostRepository exposes persistence behavior for posts.
type PostRepository interface {
	Create(ctx context.Context, post domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	Update(ctx context.Context, post domain.Post) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]domain.Post, error)
}
