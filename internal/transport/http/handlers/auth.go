package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gutscas/santo-dashboard/internal/usecase"
)

// AuthHandler exposes login and token refresh endpoints.
type AuthHandler struct {
	auth *usecase.AuthService
}

func NewAuthHandler(auth *usecase.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login verifies credentials and returns an access and refresh token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid login payload"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusBadRequest, Message: "invalid email or password"},
		}, http.StatusInternalServerError, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Access:  result.Tokens.AccessToken,
		Refresh: result.Tokens.RefreshToken,
		User:    newAccountSummary(result.Account),
	})
}

// Refresh rotates the presented refresh token and returns a new pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req TokenRefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "refresh token required"))
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidRefreshToken, Status: http.StatusUnauthorized, Message: "invalid refresh token"},
			{Err: usecase.ErrExpiredRefreshToken, Status: http.StatusUnauthorized, Message: "refresh token expired"},
		}, http.StatusInternalServerError, "failed to refresh tokens")
		return
	}

	c.JSON(http.StatusOK, TokenRefreshResponse{
		Access:  pair.AccessToken,
		Refresh: pair.RefreshToken,
	})
}
