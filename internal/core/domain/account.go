package domain

import "time"

// Account mirrors the persisted representation in the accounts table.
// Email is the unique login identifier; usernames intentionally carry no
// uniqueness constraint and may be derived from the email local part.
type Account struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
