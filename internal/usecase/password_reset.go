package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/core/port"
	"github.com/gutscas/santo-dashboard/internal/infra/logger"
	"github.com/gutscas/santo-dashboard/internal/infra/security"
	"github.com/gutscas/santo-dashboard/internal/repository"
)

const passwordResetReason = "password_reset"

var (
	// ErrAccountNotFound indicates no account exists for the supplied email.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidResetCode indicates no reset code matches the email and code pair.
	ErrInvalidResetCode = errors.New("reset code invalid")
	// ErrResetCodeExpired indicates the code exists but is expired or already used.
	ErrResetCodeExpired = errors.New("reset code expired")
	// ErrDeliveryFailed indicates the reset code was stored but could not be mailed.
	ErrDeliveryFailed = errors.New("reset code delivery failed")
)

// PasswordResetService coordinates the email OTP reset flow: issuing codes,
// verifying them, and applying the new password.
type PasswordResetService struct {
	accounts port.AccountRepository
	codes    port.ResetCodeRepository
	mailer   port.Mailer
	events   port.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewPasswordResetService constructs a PasswordResetService.
func NewPasswordResetService(accounts port.AccountRepository, codes port.ResetCodeRepository, mailer port.Mailer, events port.EventPublisher, log *zap.Logger) *PasswordResetService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PasswordResetService{
		accounts: accounts,
		codes:    codes,
		mailer:   mailer,
		events:   events,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock allows tests to override the clock used by the service.
func (s *PasswordResetService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// ForgotPassword issues a fresh reset code for the email and mails it out.
// Outstanding codes for the address are removed first, so only the newest
// code can be redeemed. If mail dispatch fails the stored code is left in
// place and ErrDeliveryFailed is returned.
func (s *PasswordResetService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	if _, err := s.codes.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("invalidate previous reset codes: %w", err)
	}

	code, err := security.GenerateResetCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	now := s.now().UTC()
	record := domain.ResetCode{
		ID:        uuid.NewString(),
		Email:     email,
		Code:      code,
		CreatedAt: now,
	}

	if err := s.codes.Create(ctx, record); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	s.publishResetRequestedEvent(ctx, account, now)

	if err := s.mailer.SendPasswordResetCode(ctx, email, code); err != nil {
		s.logger.Error("reset code mail dispatch failed",
			zap.String("email", logger.MaskEmail(email)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return nil
}

// VerifyCode checks whether the email and code pair identifies a redeemable
// reset code. The code is not consumed.
func (s *PasswordResetService) VerifyCode(ctx context.Context, email, code string) error {
	_, err := s.lookupValidCode(ctx, email, code)
	return err
}

// ResetPassword redeems the code and replaces the account password. The code
// is re-validated in full before the new hash is stored and the code marked
// used.
func (s *PasswordResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("new password is required")
	}

	record, err := s.lookupValidCode(ctx, email, code)
	if err != nil {
		return err
	}

	account, err := s.accounts.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	if err := s.accounts.UpdatePassword(ctx, account.ID, passwordHash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.codes.MarkUsed(ctx, record.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("consume reset code: %w", err)
	}

	s.publishPasswordChangedEvent(ctx, account)

	return nil
}

func (s *PasswordResetService) lookupValidCode(ctx context.Context, email, code string) (*domain.ResetCode, error) {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return nil, ErrInvalidResetCode
	}

	record, err := s.codes.GetByEmailAndCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidResetCode
		}
		return nil, fmt.Errorf("lookup reset code: %w", err)
	}

	if !record.IsValid(s.now().UTC()) {
		return nil, ErrResetCodeExpired
	}

	return record, nil
}

func (s *PasswordResetService) publishResetRequestedEvent(ctx context.Context, account *domain.Account, requestedAt time.Time) {
	if s.events == nil {
		return
	}

	event := domain.PasswordResetRequestedEvent{
		EventID:     uuid.NewString(),
		AccountID:   account.ID,
		Email:       account.Email,
		MaskedEmail: logger.MaskEmail(account.Email),
		RequestedAt: requestedAt,
		ExpiresAt:   requestedAt.Add(domain.ResetCodeTTL),
	}

	if err := s.events.PublishPasswordResetRequested(ctx, event); err != nil {
		s.logger.Warn("publish password reset requested failed", zap.String("account_id", account.ID), zap.Error(err))
	}
}

func (s *PasswordResetService) publishPasswordChangedEvent(ctx context.Context, account *domain.Account) {
	if s.events == nil {
		return
	}

	event := domain.PasswordChangedEvent{
		EventID:   uuid.NewString(),
		AccountID: account.ID,
		ChangedAt: s.now().UTC(),
		Reason:    passwordResetReason,
	}

	if err := s.events.PublishPasswordChanged(ctx, event); err != nil {
		s.logger.Warn("publish password changed event failed", zap.String("account_id", account.ID), zap.Error(err))
	}
}
