package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/repository"
)

func TestAccountRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	account := domain.Account{
		ID:           "acc-1",
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: "argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO accounts\.accounts`).
		WithArgs(
			account.ID,
			account.Email,
			account.Username,
			account.PasswordHash,
			account.IsActive,
			account.CreatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_CreateDuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectExec(`INSERT INTO accounts\.accounts`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

	err = repo.Create(context.Background(), domain.Account{ID: "acc-1", Email: "dup@example.com"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	createdAt := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "email", "username", "password_hash", "is_active", "created_at"}).
		AddRow("acc-1", "alice@example.com", "alice", "hash", true, createdAt)

	mock.ExpectQuery(`SELECT .*FROM accounts\.accounts`).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	account, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if account.ID != "acc-1" || account.Username != "alice" || !account.IsActive {
		t.Fatalf("unexpected account: %+v", account)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_GetByEmailMiss(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectQuery(`SELECT .*FROM accounts\.accounts`).
		WithArgs("ghost@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "username", "password_hash", "is_active", "created_at"}))

	if _, err := repo.GetByEmail(context.Background(), "ghost@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountRepository_UpdatePassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectExec(`UPDATE accounts\.accounts SET password_hash`).
		WithArgs("new-hash", "acc-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.UpdatePassword(context.Background(), "acc-1", "new-hash"); err != nil {
		t.Fatalf("UpdatePassword returned error: %v", err)
	}

	mock.ExpectExec(`UPDATE accounts\.accounts SET password_hash`).
		WithArgs("new-hash", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.UpdatePassword(context.Background(), "missing", "new-hash"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing account, got %v", err)
	}
}
