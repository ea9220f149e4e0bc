package domain

import "time"

// AccountRegisteredEvent represents the payload for accounts.account.registered messages.
type AccountRegisteredEvent struct {
	EventID      string
	AccountID    string
	Username     string
	Email        string
	RegisteredAt time.Time
	Metadata     map[string]any
}

// PasswordResetRequestedEvent represents the payload for accounts.password.reset_requested messages.
type PasswordResetRequestedEvent struct {
	EventID     string
	AccountID   string
	Email       string
	MaskedEmail string
	RequestedAt time.Time
	ExpiresAt   time.Time
	Metadata    map[string]any
}

// PasswordChangedEvent represents the payload for accounts.password.changed messages.
type PasswordChangedEvent struct {
	EventID   string
	AccountID string
	ChangedAt time.Time
	Reason    string
	Metadata  map[string]any
}
