package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/core/port"
	"github.com/gutscas/santo-dashboard/internal/repository"
)

const accountsTable = "accounts.accounts"

var accountColumns = []string{
	"id",
	"email",
	"username",
	"password_hash",
	"is_active",
	"created_at",
}

// AccountRepository implements port.AccountRepository using PostgreSQL.
type AccountRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewAccountRepository wires a PostgreSQL-backed account repository.
func NewAccountRepository(exec pgExecutor) *AccountRepository {
	return &AccountRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new account row. A unique violation on the email column is
// reported as repository.ErrDuplicate.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	stmt, args, err := r.builder.Insert(accountsTable).
		Columns(accountColumns...).
		Values(
			account.ID,
			account.Email,
			account.Username,
			account.PasswordHash,
			account.IsActive,
			account.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by identifier.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves an account by exact email match.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

func (r *AccountRepository) getBy(ctx context.Context, cond squirrel.Eq) (*domain.Account, error) {
	stmt, args, err := r.builder.
		Select(accountColumns...).
		From(accountsTable).
		Where(cond).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account sql: %w", err)
	}

	var account domain.Account
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Username,
		&account.PasswordHash,
		&account.IsActive,
		&account.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	return &account, nil
}

// UpdatePassword replaces the stored password hash for the account.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	stmt, args, err := r.builder.Update(accountsTable).
		Set("password_hash", passwordHash).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update password sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ port.AccountRepository = (*AccountRepository)(nil)
