package handler

import (
	"log/slog"
	"net/http"

	"voyage/internal/delivery/http/response"
	"voyage/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PasswordHandler exposes the forgotten-password flow.
type PasswordHandler struct {
	uc     usecase.PasswordResetUsecase
	logger *slog.Logger
}

// NewPasswordHandler is the constructor for PasswordHandler, injected by Fx.
func NewPasswordHandler(uc usecase.PasswordResetUsecase, logger *slog.Logger) *PasswordHandler {
	return &PasswordHandler{uc: uc, logger: logger}
}

type resetRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetConfirmRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RequestReset mails a reset link. The response is the same whether or not
// the address has an account.
func (h *PasswordHandler) RequestReset(c echo.Context) error {
	var input resetRequestRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "A valid email address is required")
	}

	if err := h.uc.Request(c.Request().Context(), input.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK,
		map[string]string{"message": "If the address has an account, a reset link is on its way"},
		"Reset requested")
}

// ConfirmReset redeems a reset token and sets the new password.
func (h *PasswordHandler) ConfirmReset(c echo.Context) error {
	var input resetConfirmRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "A reset token and a new password are required")
	}

	if err := h.uc.Confirm(c.Request().Context(), input.Token, input.Password); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password updated"}, "Password updated")
}
