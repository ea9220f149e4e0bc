package domain

import "time"

// RefreshToken represents a persisted refresh token. Only the SHA-256 hash of
// the raw token is stored; rotation inserts a replacement row and revokes the
// presented one.
type RefreshToken struct {
	ID        string
	AccountID string
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// IsExpired reports whether the token has elapsed its validity window.
func (t RefreshToken) IsExpired(at time.Time) bool {
	return !t.ExpiresAt.After(at)
}

// IsRevoked reports whether the token has been explicitly revoked.
func (t RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}
