package handler

import (
	"log/slog"
	"net/http"

	"voyage/internal/delivery/http/response"
	"voyage/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VerificationHandler exposes the email ownership confirmation flow.
type VerificationHandler struct {
	uc     usecase.VerificationUsecase
	logger *slog.Logger
}

// NewVerificationHandler is the constructor for VerificationHandler, injected by Fx.
func NewVerificationHandler(uc usecase.VerificationUsecase, logger *slog.Logger) *VerificationHandler {
	return &VerificationHandler{uc: uc, logger: logger}
}

type sendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// SendCode mails a fresh 6-digit code to the address.
func (h *VerificationHandler) SendCode(c echo.Context) error {
	var input sendCodeRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "A valid email address is required")
	}

	if err := h.uc.SendCode(c.Request().Context(), input.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Verification code sent"}, "Verification code sent")
}

// VerifyCode redeems a pending code.
func (h *VerificationHandler) VerifyCode(c echo.Context) error {
	var input verifyCodeRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "A valid email and a 6-digit code are required")
	}

	if err := h.uc.VerifyCode(c.Request().Context(), input.Email, input.Code); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Email verified"}, "Email verified")
}
