package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gutscas/santo-dashboard/internal/usecase"
)

// RegistrationHandler exposes the account registration endpoint.
type RegistrationHandler struct {
	registration *usecase.RegistrationService
}

func NewRegistrationHandler(registration *usecase.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration}
}

// Register creates a new account from an email and password. A duplicate
// email is a validation failure, not a conflict.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid registration payload"))
		return
	}

	account, err := h.registration.Register(c.Request.Context(), usecase.RegistrationInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrEmailAlreadyRegistered, Status: http.StatusBadRequest, Message: "email already registered"},
		}, http.StatusInternalServerError, "failed to register account")
		return
	}

	c.JSON(http.StatusOK, RegistrationResponse{
		User:    newAccountSummary(account),
		Message: "account created",
	})
}
