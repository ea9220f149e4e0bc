package port

import (
	"context"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error
	PublishPasswordResetRequested(ctx context.Context, event domain.PasswordResetRequestedEvent) error
	PublishPasswordChanged(ctx context.Context, event domain.PasswordChangedEvent) error
}
