package domain

import (
	"testing"
	"time"
)

func TestResetCodeIsValid(t *testing.T) {
	issued := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	code := ResetCode{ID: "code-1", Email: "a@example.com", Code: "123456", CreatedAt: issued}

	if !code.IsValid(issued) {
		t.Fatalf("expected code valid at issuance")
	}
	if !code.IsValid(issued.Add(ResetCodeTTL - time.Nanosecond)) {
		t.Fatalf("expected code valid just inside the window")
	}
	if code.IsValid(issued.Add(ResetCodeTTL)) {
		t.Fatalf("expected code expired exactly at the boundary")
	}
	if code.IsValid(issued.Add(time.Hour)) {
		t.Fatalf("expected code expired after the window")
	}
}

func TestResetCodeUsedIsNeverValid(t *testing.T) {
	issued := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	code := ResetCode{ID: "code-1", CreatedAt: issued, IsUsed: true}

	if code.IsValid(issued) {
		t.Fatalf("expected used code to be invalid even inside the window")
	}
}

func TestRefreshTokenLifecycle(t *testing.T) {
	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	token := RefreshToken{ID: "tok-1", ExpiresAt: now.Add(time.Hour)}

	if token.IsExpired(now) {
		t.Fatalf("expected token to be live before expiry")
	}
	if !token.IsExpired(now.Add(time.Hour)) {
		t.Fatalf("expected token expired exactly at expiry")
	}
	if token.IsRevoked() {
		t.Fatalf("expected token not revoked")
	}

	revokedAt := now.Add(time.Minute)
	token.RevokedAt = &revokedAt
	if !token.IsRevoked() {
		t.Fatalf("expected token revoked after RevokedAt is set")
	}
}
