package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/core/port"
	"github.com/gutscas/santo-dashboard/internal/infra/config"
	"github.com/gutscas/santo-dashboard/internal/infra/security"
	"github.com/gutscas/santo-dashboard/internal/repository"
)

const refreshTokenBytes = 32

var (
	// ErrInvalidCredentials indicates the email or password did not match an active account.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRefreshToken indicates the refresh token is unknown or revoked.
	ErrInvalidRefreshToken = errors.New("refresh token invalid")
	// ErrExpiredRefreshToken indicates the refresh token exists but has elapsed its window.
	ErrExpiredRefreshToken = errors.New("refresh token expired")
	// ErrInvalidAccessToken indicates the access token failed signature or claim validation.
	ErrInvalidAccessToken = errors.New("access token invalid")
	// ErrExpiredAccessToken indicates the access token is past its expiry.
	ErrExpiredAccessToken = errors.New("access token expired")
)

// TokenPair bundles the bearer tokens returned on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult carries the authenticated account alongside its tokens.
type LoginResult struct {
	Account *domain.Account
	Tokens  TokenPair
}

// AuthService validates credentials and manages access and refresh tokens.
type AuthService struct {
	cfg      *config.AppConfig
	accounts port.AccountRepository
	tokens   port.TokenRepository
	jwt      *security.JWTManager
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(cfg *config.AppConfig, accounts port.AccountRepository, tokens port.TokenRepository, jwtManager *security.JWTManager, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		cfg:      cfg,
		accounts: accounts,
		tokens:   tokens,
		jwt:      jwtManager,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock allows tests to override the clock used by the service.
func (s *AuthService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// Login verifies the email and password and issues a fresh token pair.
// Unknown addresses, inactive accounts, and password mismatches are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if !account.IsActive {
		return nil, ErrInvalidCredentials
	}

	matches, err := security.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !matches {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	account.PasswordHash = ""
	return &LoginResult{Account: account, Tokens: pair}, nil
}

// Refresh rotates the presented refresh token and returns a new pair. The
// presented token is revoked whether or not it was close to expiry.
func (s *AuthService) Refresh(ctx context.Context, rawRefreshToken string) (*TokenPair, error) {
	rawRefreshToken = strings.TrimSpace(rawRefreshToken)
	if rawRefreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.tokens.GetRefreshTokenByHash(ctx, security.HashToken(rawRefreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}

	now := s.now().UTC()
	if stored.IsRevoked() {
		return nil, ErrInvalidRefreshToken
	}
	if stored.IsExpired(now) {
		return nil, ErrExpiredRefreshToken
	}

	pair, err := s.issueTokenPair(ctx, stored.AccountID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.RevokeRefreshToken(ctx, stored.ID, now); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("revoke rotated refresh token failed", zap.String("token_id", stored.ID), zap.Error(err))
	}

	return &pair, nil
}

// ParseAccessToken validates a bearer token and returns the account it was
// issued to.
func (s *AuthService) ParseAccessToken(raw string) (string, error) {
	claims, err := s.jwt.Parse(raw)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredAccessToken
		}
		return "", ErrInvalidAccessToken
	}

	if claims.AccountID == "" {
		return "", ErrInvalidAccessToken
	}

	return claims.AccountID, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, accountID string) (TokenPair, error) {
	now := s.now().UTC()

	access, err := s.jwt.Sign(accountID, now, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}

	rawRefresh, err := security.GenerateSecureToken(refreshTokenBytes)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate refresh token: %w", err)
	}

	record := domain.RefreshToken{
		ID:        uuid.NewString(),
		AccountID: accountID,
		TokenHash: security.HashToken(rawRefresh),
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.JWT.RefreshTokenTTL),
	}

	if err := s.tokens.CreateRefreshToken(ctx, record); err != nil {
		return TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: rawRefresh}, nil
}
