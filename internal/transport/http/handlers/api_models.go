package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// AccountSummary describes the public view of an account returned by the API.
type AccountSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func newAccountSummary(account *domain.Account) AccountSummary {
	return AccountSummary{
		ID:       account.ID,
		Username: account.Username,
		Email:    account.Email,
	}
}

// RegistrationRequest defines the account registration payload.
type RegistrationRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegistrationResponse contains the created account.
type RegistrationResponse struct {
	User    AccountSummary `json:"user"`
	Message string         `json:"message"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse describes the response returned for a successful login.
type LoginResponse struct {
	Access  string         `json:"access"`
	Refresh string         `json:"refresh"`
	User    AccountSummary `json:"user"`
}

// TokenRefreshRequest represents the payload to rotate a refresh token.
type TokenRefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// TokenRefreshResponse contains tokens issued by the refresh endpoint.
type TokenRefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// ProfileResponse is the API view of a profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	FileKey   *string   `json:"file,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newProfileResponse(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        profile.ID,
		AccountID: profile.AccountID,
		Name:      profile.Name,
		Age:       profile.Age,
		FileKey:   profile.FileKey,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

// ForgotPasswordRequest starts the reset flow for an email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPRequest checks a reset code without consuming it.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// ResetPasswordRequest redeems a reset code and sets a new password.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// PostRequest defines the payload for creating or updating a post.
type PostRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content"`
}

// PostResponse is the API view of a post.
type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func newPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	}
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports per-dependency readiness.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
