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

const profilesTable = "accounts.profiles"

var profileColumns = []string{
	"id",
	"account_id",
	"name",
	"age",
	"file_key",
	"created_at",
	"updated_at",
}

// ProfileRepository implements port.ProfileRepository using PostgreSQL.
type ProfileRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

func NewProfileRepository(exec pgExecutor) *ProfileRepository {
	return &ProfileRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new profile row. A unique violation on account_id is
// reported as repository.ErrDuplicate.
func (r *ProfileRepository) Create(ctx context.Context, profile domain.Profile) error {
	stmt, args, err := r.builder.Insert(profilesTable).
		Columns(profileColumns...).
		Values(
			profile.ID,
			profile.AccountID,
			profile.Name,
			profile.Age,
			profile.FileKey,
			profile.CreatedAt,
			profile.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert profile sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
		}
		return fmt.Errorf("insert profile: %w", err)
	}

	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *ProfileRepository) GetByAccount(ctx context.Context, accountID string) (*domain.Profile, error) {
	return r.getBy(ctx, squirrel.Eq{"account_id": accountID})
}

func (r *ProfileRepository) getBy(ctx context.Context, cond squirrel.Eq) (*domain.Profile, error) {
	stmt, args, err := r.builder.
		Select(profileColumns...).
		From(profilesTable).
		Where(cond).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select profile sql: %w", err)
	}

	var profile domain.Profile
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := scanProfile(row, &profile); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	return &profile, nil
}

// Update persists the full current state of the profile.
func (r *ProfileRepository) Update(ctx context.Context, profile domain.Profile) error {
	stmt, args, err := r.builder.Update(profilesTable).
		Set("name", profile.Name).
		Set("age", profile.Age).
		Set("file_key", profile.FileKey).
		Set("updated_at", profile.UpdatedAt).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update profile sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Delete(profilesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete profile sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListAll returns every profile ordered by creation time.
func (r *ProfileRepository) ListAll(ctx context.Context) ([]domain.Profile, error) {
	stmt, args, err := r.builder.
		Select(profileColumns...).
		From(profilesTable).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list profiles sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var profile domain.Profile
		if err := scanProfile(rows, &profile); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	return profiles, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner, profile *domain.Profile) error {
	return row.Scan(
		&profile.ID,
		&profile.AccountID,
		&profile.Name,
		&profile.Age,
		&profile.FileKey,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
}

var _ port.ProfileRepository = (*ProfileRepository)(nil)
