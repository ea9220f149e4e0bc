package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
)

const resetCodeDigits = 6

var resetCodeSpace = big.NewInt(1_000_000)

// GenerateResetCode returns a uniformly distributed six digit numeric code.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, resetCodeSpace)
	if err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}

	return fmt.Sprintf("%0*d", resetCodeDigits, n), nil
}

// GenerateSecureToken returns a base64 URL-safe random string using the specified number of random bytes.
func GenerateSecureToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", fmt.Errorf("length must be positive")
	}

	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken calculates a SHA-256 hash of the provided value.
func HashToken(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
