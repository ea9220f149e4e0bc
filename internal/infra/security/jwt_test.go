package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTManager_SignAndParse(t *testing.T) {
	manager, err := NewJWTManager("unit-test-secret", "accounts-test")
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}

	issuedAt := time.Now().Add(-time.Second)
	token, err := manager.Sign("acc-42", issuedAt, time.Minute)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.AccountID != "acc-42" {
		t.Fatalf("expected account id acc-42, got %s", claims.AccountID)
	}
	if claims.Subject != "acc-42" {
		t.Fatalf("expected subject acc-42, got %s", claims.Subject)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti to be assigned")
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager, err := NewJWTManager("unit-test-secret", "accounts-test")
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}

	token, err := manager.Sign("acc-42", time.Now().Add(-2*time.Hour), time.Hour)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if _, err := manager.Parse(token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTManager_WrongIssuerRejected(t *testing.T) {
	signer, err := NewJWTManager("unit-test-secret", "someone-else")
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}
	verifier, err := NewJWTManager("unit-test-secret", "accounts-test")
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}

	token, err := signer.Sign("acc-42", time.Now(), time.Minute)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Fatalf("expected issuer mismatch to be rejected")
	}
}

func TestNewJWTManager_RequiresSecret(t *testing.T) {
	if _, err := NewJWTManager("", "issuer"); !errors.Is(err, ErrSigningSecretMissing) {
		t.Fatalf("expected ErrSigningSecretMissing, got %v", err)
	}
}
