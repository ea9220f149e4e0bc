package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, accountID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("account_id", accountID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishAccountRegistered logs accounts.account.registered events.
func (p *StubPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	payload := map[string]any{
		"account_id":    event.AccountID,
		"username":      event.Username,
		"email":         event.Email,
		"registered_at": event.RegisteredAt,
		"metadata":      event.Metadata,
	}
	p.logEvent("accounts.account.registered", event.AccountID, event.RegisteredAt, payload)
	return nil
}

// PublishPasswordResetRequested logs accounts.password.reset_requested events.
func (p *StubPublisher) PublishPasswordResetRequested(_ context.Context, event domain.PasswordResetRequestedEvent) error {
	payload := map[string]any{
		"account_id":   event.AccountID,
		"masked_email": event.MaskedEmail,
		"requested_at": event.RequestedAt,
		"expires_at":   event.ExpiresAt,
		"metadata":     event.Metadata,
	}
	p.logEvent("accounts.password.reset_requested", event.AccountID, event.RequestedAt, payload)
	return nil
}

// PublishPasswordChanged logs accounts.password.changed events.
func (p *StubPublisher) PublishPasswordChanged(_ context.Context, event domain.PasswordChangedEvent) error {
	payload := map[string]any{
		"account_id": event.AccountID,
		"changed_at": event.ChangedAt,
		"reason":     event.Reason,
		"metadata":   event.Metadata,
	}
	p.logEvent("accounts.password.changed", event.AccountID, event.ChangedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
