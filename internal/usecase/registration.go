package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	zxcvbn "github.com/nbutton23/zxcvbn-go"
	"go.uber.org/zap"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/core/port"
	"github.com/gutscas/santo-dashboard/internal/infra/logger"
	"github.com/gutscas/santo-dashboard/internal/infra/security"
	"github.com/gutscas/santo-dashboard/internal/repository"
)

const weakPasswordScoreThreshold = 2

// ErrEmailAlreadyRegistered indicates the email is already bound to an account.
var ErrEmailAlreadyRegistered = errors.New("email already registered")

// RegistrationService handles new account onboarding.
type RegistrationService struct {
	accounts port.AccountRepository
	events   port.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(accounts port.AccountRepository, events port.EventPublisher, log *zap.Logger) *RegistrationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RegistrationService{
		accounts: accounts,
		events:   events,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock allows tests to override the clock used by the service.
func (s *RegistrationService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// RegistrationInput carries the payload for creating a new account. Username
// is optional; when absent it is derived from the email local part.
type RegistrationInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new account keyed by email. The username is derived from
// the email local part and carries no uniqueness guarantee. The returned
// account never includes the password hash.
func (s *RegistrationService) Register(ctx context.Context, input RegistrationInput) (*domain.Account, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if input.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		username = deriveUsername(email)
	}

	s.reportWeakPassword(email, input.Password)

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	account := domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.publishRegisteredEvent(ctx, account)

	account.PasswordHash = ""
	return &account, nil
}

// deriveUsername takes everything before the first @ of the address; an
// address without @ is used verbatim.
func deriveUsername(email string) string {
	if idx := strings.Index(email, "@"); idx >= 0 {
		return email[:idx]
	}
	return email
}

// reportWeakPassword measures password strength for telemetry only. Any
// password is accepted; weak ones are surfaced in logs for operators.
func (s *RegistrationService) reportWeakPassword(email, password string) {
	score := zxcvbn.PasswordStrength(password, []string{email}).Score
	if score < weakPasswordScoreThreshold {
		s.logger.Warn("weak password accepted at registration",
			zap.String("email", logger.MaskEmail(email)),
			zap.Int("strength_score", score),
		)
	}
}

func (s *RegistrationService) publishRegisteredEvent(ctx context.Context, account domain.Account) {
	if s.events == nil {
		return
	}

	event := domain.AccountRegisteredEvent{
		EventID:      uuid.NewString(),
		AccountID:    account.ID,
		Username:     account.Username,
		Email:        account.Email,
		RegisteredAt: account.CreatedAt,
	}

	if err := s.events.PublishAccountRegistered(ctx, event); err != nil {
		s.logger.Warn("publish account registered event failed", zap.String("account_id", account.ID), zap.Error(err))
	}
}
