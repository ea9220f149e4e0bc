package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/repository"
)

func TestResetCodeRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewResetCodeRepository(mock)

	code := domain.ResetCode{
		ID:        "code-1",
		Email:     "alice@example.com",
		Code:      "123456",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO accounts\.password_reset_codes`).
		WithArgs(code.ID, code.Email, code.Code, code.CreatedAt, code.IsUsed).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), code); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResetCodeRepository_GetByEmailAndCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewResetCodeRepository(mock)

	createdAt := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "email", "code", "created_at", "is_used"}).
		AddRow("code-1", "alice@example.com", "123456", createdAt, false)

	mock.ExpectQuery(`SELECT .*FROM accounts\.password_reset_codes`).
		WithArgs("alice@example.com", "123456").
		WillReturnRows(rows)

	record, err := repo.GetByEmailAndCode(context.Background(), "alice@example.com", "123456")
	if err != nil {
		t.Fatalf("GetByEmailAndCode returned error: %v", err)
	}
	if record.ID != "code-1" || record.IsUsed {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestResetCodeRepository_GetByEmailAndCodeMiss(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewResetCodeRepository(mock)

	mock.ExpectQuery(`SELECT .*FROM accounts\.password_reset_codes`).
		WithArgs("alice@example.com", "000000").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "code", "created_at", "is_used"}))

	if _, err := repo.GetByEmailAndCode(context.Background(), "alice@example.com", "000000"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResetCodeRepository_DeleteByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewResetCodeRepository(mock)

	mock.ExpectExec(`DELETE FROM accounts\.password_reset_codes`).
		WithArgs("alice@example.com").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	deleted, err := repo.DeleteByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("DeleteByEmail returned error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted rows, got %d", deleted)
	}
}

func TestResetCodeRepository_MarkUsed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewResetCodeRepository(mock)

	mock.ExpectExec(`UPDATE accounts\.password_reset_codes SET is_used`).
		WithArgs(true, "code-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.MarkUsed(context.Background(), "code-1"); err != nil {
		t.Fatalf("MarkUsed returned error: %v", err)
	}

	mock.ExpectExec(`UPDATE accounts\.password_reset_codes SET is_used`).
		WithArgs(true, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.MarkUsed(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
