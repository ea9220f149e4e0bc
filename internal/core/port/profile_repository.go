package port

import (
	"context"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
)

// ProfileRepository exposes persistence behavior for profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByAccount(ctx context.Context, accountID string) (*domain.Profile, error)
	Update(ctx context.Context, profile domain.Profile) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]domain.Profile, error)
}
