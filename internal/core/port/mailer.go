package port

import "context"

// Mailer delivers password reset codes to account holders. The service only
// formats the message; transport belongs to the implementation.
type Mailer interface {
	SendPasswordResetCode(ctx context.Context, to, code string) error
}
