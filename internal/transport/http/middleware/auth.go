package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gutscas/santo-dashboard/internal/usecase"
)

// ErrorResponse matches the handlers.ErrorResponse structure
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// newErrorResponse creates an error response with trace ID
func newErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:   errorMsg,
		TraceID: GetTraceID(c),
	}
}

// RequireAuth validates the Authorization header and resolves the account ID
// from the bearer token.
func RequireAuth(authService *usecase.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "missing authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "invalid authorization format: expected 'Bearer <token>'"))
			return
		}

		if !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "invalid authorization format: must start with 'Bearer'"))
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "missing access token"))
			return
		}

		accountID, err := authService.ParseAccessToken(token)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrExpiredAccessToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					newErrorResponse(c, "access token expired"))
			case errors.Is(err, usecase.ErrInvalidAccessToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					newErrorResponse(c, "invalid access token"))
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					newErrorResponse(c, "authentication failed"))
			}
			return
		}

		c.Set(AccountIDKey, accountID)

		if reqCtx := GetRequestContext(c); reqCtx != nil {
			reqCtx.AccountID = accountID
		}

		c.Next()
	}
}

// GetAuthenticatedAccountID retrieves the account ID from context (helper for handlers)
func GetAuthenticatedAccountID(c *gin.Context) (string, bool) {
	accountID, exists := c.Get(AccountIDKey)
	if !exists {
		return "", false
	}

	if id, ok := accountID.(string); ok {
		return id, true
	}

	return "", false
}
