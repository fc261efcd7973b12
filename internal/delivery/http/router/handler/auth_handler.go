// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"voyage/config"
	"voyage/internal/delivery/http/cookie"
	"voyage/internal/delivery/http/response"
	"voyage/internal/domain/entity"
	"voyage/internal/domain/service"
	"voyage/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for account and session handlers.
type AuthHandler struct {
	uc           usecase.AuthUsecase
	tokenSvc     service.SessionTokenService
	cookieSecure bool
	logger       *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, tokenSvc service.SessionTokenService, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	cookieSecure := false
	if cfg.Session != nil {
		cookieSecure = cfg.Session.CookieSecure
	}

	return &AuthHandler{
		uc:           uc,
		tokenSvc:     tokenSvc,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userPayload is the public view of a user.
type userPayload struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"emailVerified"`
}

func toUserPayload(user *entity.User) userPayload {
	return userPayload{
		ID:            user.ID.String(),
		Email:         user.Email,
		Name:          user.Name,
		EmailVerified: user.EmailVerified,
	}
}

// SignUp handles account registration and opens a session.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var input signUpRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "A valid email and a password are required")
	}

	output, err := h.uc.SignUp(c.Request().Context(), usecase.SignUpInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	cookie.SetSession(c, output.Token, h.cookieSecure)

	return response.Success(c, http.StatusCreated, toUserPayload(output.User), "Account created")
}

// Login handles password login and opens a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "A valid email and a password are required")
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	cookie.SetSession(c, output.Token, h.cookieSecure)

	return response.Success(c, http.StatusOK, toUserPayload(output.User), "Login successful")
}

// Logout clears the session cookie. Tokens are stateless, so there is no
// server-side session to revoke.
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie.ClearSession(c, h.cookieSecure)

	return response.Success(c, http.StatusOK, map[string]string{"message": "Logged out"}, "Logout successful")
}

// mePayload is the fixed wire shape of the identity query, consumed by the
// frontend's session hook.
type mePayload struct {
	Authenticated bool         `json:"authenticated"`
	User          *userPayload `json:"user"`
	Message       string       `json:"message,omitempty"`
}

// Me reports whether the request carries a valid session and, if so, the
// current account. Every failure mode answers the same 401.
func (h *AuthHandler) Me(c echo.Context) error {
	unauthenticated := func() error {
		return c.JSON(http.StatusUnauthorized, mePayload{
			Authenticated: false,
			Message:       "Not authenticated",
		})
	}

	raw := cookie.SessionToken(c)
	if raw == "" {
		return unauthenticated()
	}

	claims, err := h.tokenSvc.Verify(raw)
	if err != nil {
		return unauthenticated()
	}

	user, err := h.uc.CurrentUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return unauthenticated()
	}

	payload := toUserPayload(user)

	return c.JSON(http.StatusOK, mePayload{Authenticated: true, User: &payload})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
