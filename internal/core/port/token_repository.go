package port

import (
	"context"
	"time"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
)

// TokenRepository manages persisted refresh token records.
type TokenRepository interface {
	CreateRefreshToken(ctx context.Context, token domain.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error
}
