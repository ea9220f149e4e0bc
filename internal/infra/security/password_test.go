package security

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-passphrase")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if !strings.HasPrefix(hash, "argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	match, err := VerifyPassword("s3cret-passphrase", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error: %v", err)
	}
	if !match {
		t.Fatalf("expected password to verify")
	}

	match, err = VerifyPassword("wrong-passphrase", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error: %v", err)
	}
	if match {
		t.Fatalf("expected mismatch for wrong password")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same password")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if _, err := VerifyPassword("x", "not-an-encoded-hash"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
	if match, err := VerifyPassword("", "whatever"); err != nil || match {
		t.Fatalf("expected empty password to fail closed, match=%v err=%v", match, err)
	}
}

func TestConfigureArgon2_RejectsWeakParams(t *testing.T) {
	original := CurrentArgon2Config()
	defer func() {
		if err := ConfigureArgon2(original); err != nil {
			t.Fatalf("restore config: %v", err)
		}
	}()

	bad := DefaultArgon2Config()
	bad.Memory = 1024
	if err := ConfigureArgon2(bad); err == nil {
		t.Fatalf("expected error for too little memory")
	}

	bad = DefaultArgon2Config()
	bad.Iterations = 0
	if err := ConfigureArgon2(bad); err == nil {
		t.Fatalf("expected error for zero iterations")
	}
}

func TestGenerateResetCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateResetCode()
		if err != nil {
			t.Fatalf("GenerateResetCode returned error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected numeric code, got %q", code)
			}
		}
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	if HashToken("abc") != HashToken("abc") {
		t.Fatalf("expected deterministic token hash")
	}
	if HashToken("abc") == HashToken("abd") {
		t.Fatalf("expected distinct hashes for distinct tokens")
	}
	if len(HashToken("abc")) != 64 {
		t.Fatalf("expected 64 hex characters")
	}
}
