package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/core/port"
	"github.com/gutscas/santo-dashboard/internal/repository"
)

const refreshTokensTable = "accounts.refresh_tokens"

var refreshTokenColumns = []string{
	"id",
	"account_id",
	"token_hash",
	"created_at",
	"expires_at",
	"revoked_at",
}

// TokenRepository implements port.TokenRepository using PostgreSQL. Only the
// SHA-256 hash of a refresh token is ever stored.
type TokenRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

func NewTokenRepository(exec pgExecutor) *TokenRepository {
	return &TokenRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *TokenRepository) CreateRefreshToken(ctx context.Context, token domain.RefreshToken) error {
	stmt, args, err := r.builder.Insert(refreshTokensTable).
		Columns(refreshTokenColumns...).
		Values(
			token.ID,
			token.AccountID,
			token.TokenHash,
			token.CreatedAt,
			token.ExpiresAt,
			token.RevokedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert refresh token sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}

	return nil
}

func (r *TokenRepository) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	stmt, args, err := r.builder.
		Select(refreshTokenColumns...).
		From(refreshTokensTable).
		Where(squirrel.Eq{"token_hash": tokenHash}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select refresh token sql: %w", err)
	}

	var token domain.RefreshToken
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(
		&token.ID,
		&token.AccountID,
		&token.TokenHash,
		&token.CreatedAt,
		&token.ExpiresAt,
		&token.RevokedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan refresh token: %w", err)
	}

	return &token, nil
}

// RevokeRefreshToken stamps the token as revoked at the given time. Already
// revoked tokens are left untouched.
func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	stmt, args, err := r.builder.Update(refreshTokensTable).
		Set("revoked_at", revokedAt).
		Where(squirrel.Eq{"id": id, "revoked_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build revoke refresh token sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ port.TokenRepository = (*TokenRepository)(nil)
