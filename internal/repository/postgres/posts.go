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

const postsTable = "accounts.posts"

var postColumns = []string{
	"id",
	"title",
	"content",
	"created_at",
}

// PostRepository implements port.PostRepository using PostgreSQL.
type PostRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

func NewPostRepository(exec pgExecutor) *PostRepository {
	return &PostRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PostRepository) Create(ctx context.Context, post domain.Post) error {
	stmt, args, err := r.builder.Insert(postsTable).
		Columns(postColumns...).
		Values(
			post.ID,
			post.Title,
			post.Content,
			post.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert post sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	stmt, args, err := r.builder.
		Select(postColumns...).
		From(postsTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select post sql: %w", err)
	}

	var post domain.Post
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}

	return &post, nil
}

func (r *PostRepository) Update(ctx context.Context, post domain.Post) error {
	stmt, args, err := r.builder.Update(postsTable).
		Set("title", post.Title).
		Set("content", post.Content).
		Where(squirrel.Eq{"id": post.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update post sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Delete(postsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete post sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListAll returns every post, newest first.
func (r *PostRepository) ListAll(ctx context.Context) ([]domain.Post, error) {
	stmt, args, err := r.builder.
		Select(postColumns...).
		From(postsTable).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list posts sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}

var _ port.PostRepository = (*PostRepository)(nil)
