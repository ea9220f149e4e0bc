package domain

import "time"

// ResetCodeTTL bounds the validity window of a password reset code.
const ResetCodeTTL = 10 * time.Minute

// ResetCode is a one-time password reset code tied to an email address.
// Issuing a new code for an email deletes any outstanding rows first, so at
// most one live code exists per email outside of racing issuance calls.
type ResetCode struct {
	ID        string
	Email     string
	Code      string
	CreatedAt time.Time
	IsUsed    bool
}

// IsValid reports whether the code can still be redeemed at the given instant.
func (c ResetCode) IsValid(at time.Time) bool {
	return !c.IsUsed && at.Before(c.CreatedAt.Add(ResetCodeTTL))
}
