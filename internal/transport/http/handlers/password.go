package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gutscas/santo-dashboard/internal/usecase"
)

// PasswordHandler exposes the email OTP password reset endpoints.
type PasswordHandler struct {
	reset *usecase.PasswordResetService
}

func NewPasswordHandler(reset *usecase.PasswordResetService) *PasswordHandler {
	return &PasswordHandler{reset: reset}
}

// ForgotPassword issues a reset code and mails it to the account holder.
func (h *PasswordHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid forgot password payload"))
		return
	}

	if err := h.reset.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "account not found"},
			{Err: usecase.ErrDeliveryFailed, Status: http.StatusInternalServerError, Message: "failed to send reset code"},
		}, http.StatusInternalServerError, "failed to start password reset")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "reset code sent"})
}

// VerifyOTP checks a reset code without consuming it.
func (h *PasswordHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid verify payload"))
		return
	}

	if err := h.reset.VerifyCode(c.Request.Context(), req.Email, req.OTP); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidResetCode, Status: http.StatusBadRequest, Message: "invalid reset code"},
			{Err: usecase.ErrResetCodeExpired, Status: http.StatusBadRequest, Message: "reset code expired"},
		}, http.StatusInternalServerError, "failed to verify reset code")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "reset code valid"})
}

// ResetPassword redeems the code and replaces the account password.
func (h *PasswordHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid reset payload"))
		return
	}

	if err := h.reset.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidResetCode, Status: http.StatusBadRequest, Message: "invalid reset code"},
			{Err: usecase.ErrResetCodeExpired, Status: http.StatusBadRequest, Message: "reset code expired"},
			{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "account not found"},
		}, http.StatusInternalServerError, "failed to reset password")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "password updated"})
}
