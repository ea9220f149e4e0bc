package port

import (
	"context"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
)

// ResetCodeRepository manages one-time password reset codes.
type ResetCodeRepository interface {
	Create(ctx context.Context, code domain.ResetCode) error
	GetByEmailAndCode(ctx context.Context, email, code string) (*domain.ResetCode, error)
	DeleteByEmail(ctx context.Context, email string) (int, error)
	MarkUsed(ctx context.Context, id string) error
}
