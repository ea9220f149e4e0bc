package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/core/port"
	"github.com/gutscas/santo-dashboard/internal/repository"
)

const resetCodesTable = "accounts.password_reset_codes"

var resetCodeColumns = []string{
	"id",
	"email",
	"code",
	"created_at",
	"is_used",
}

// ResetCodeRepository implements port.ResetCodeRepository using PostgreSQL.
type ResetCodeRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

func NewResetCodeRepository(exec pgExecutor) *ResetCodeRepository {
	return &ResetCodeRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ResetCodeRepository) Create(ctx context.Context, code domain.ResetCode) error {
	stmt, args, err := r.builder.Insert(resetCodesTable).
		Columns(resetCodeColumns...).
		Values(
			code.ID,
			code.Email,
			code.Code,
			code.CreatedAt,
			code.IsUsed,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert reset code sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert reset code: %w", err)
	}

	return nil
}

// GetByEmailAndCode returns the most recent matching code regardless of its
// validity; the caller decides what an expired or used row means.
func (r *ResetCodeRepository) GetByEmailAndCode(ctx context.Context, email string, code string) (*domain.ResetCode, error) {
	stmt, args, err := r.builder.
		Select(resetCodeColumns...).
		From(resetCodesTable).
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Eq{"code": code}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select reset code sql: %w", err)
	}

	var rc domain.ResetCode
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(
		&rc.ID,
		&rc.Email,
		&rc.Code,
		&rc.CreatedAt,
		&rc.IsUsed,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan reset code: %w", err)
	}

	return &rc, nil
}

// DeleteByEmail removes every code issued to the address and reports how many
// rows were removed.
func (r *ResetCodeRepository) DeleteByEmail(ctx context.Context, email string) (int, error) {
	stmt, args, err := r.builder.Delete(resetCodesTable).
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete reset codes sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("delete reset codes: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *ResetCodeRepository) MarkUsed(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Update(resetCodesTable).
		Set("is_used", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark reset code used sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("mark reset code used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ port.ResetCodeRepository = (*ResetCodeRepository)(nil)
