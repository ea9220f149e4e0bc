package port

import (
	"context"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
)

// AccountRepository exposes persistence behavior for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
