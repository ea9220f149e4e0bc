package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgExecutor abstracts the pgx surface the repositories need, so they can run
// against a pool, a transaction, or a mock.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories groups concrete PostgreSQL repository implementations.
type Repositories struct {
	Accounts   *AccountRepository
	Profiles   *ProfileRepository
	ResetCodes *ResetCodeRepository
	Tokens     *TokenRepository
	Posts      *PostRepository
}

// NewRepositories wires all repositories backed by the provided pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Accounts:   NewAccountRepository(pool),
		Profiles:   NewProfileRepository(pool),
		ResetCodes: NewResetCodeRepository(pool),
		Tokens:     NewTokenRepository(pool),
		Posts:      NewPostRepository(pool),
	}
}
