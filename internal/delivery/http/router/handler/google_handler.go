package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"voyage/config"
	"voyage/internal/delivery/http/cookie"
	"voyage/internal/domain/service"
	"voyage/internal/usecase"
	"voyage/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Error codes appended to /login?error= when the Google flow fails. The
// login page matches on them verbatim.
const (
	googleConfigError   = "google_config_error"
	googleNoCode        = "google_no_code"
	googleStateMismatch = "google_state_mismatch"
	googleTokenError    = "google_token_error"
	googleNoAccessToken = "google_no_access_token"
	googleUserInfoError = "google_userinfo_error"
	googleNoID          = "google_no_id"
	googleNoEmail       = "google_no_email"
	googleUnknownError  = "google_unknown_error"
)

// GoogleHandler drives the server-side Google authorization-code flow.
type GoogleHandler struct {
	uc           usecase.AuthUsecase
	oauthSvc     service.OAuthService
	cookieSecure bool
	logger       *slog.Logger
}

// NewGoogleHandler is the constructor for GoogleHandler, injected by Fx.
func NewGoogleHandler(uc usecase.AuthUsecase, oauthSvc service.OAuthService, cfg *config.Config, logger *slog.Logger) *GoogleHandler {
	cookieSecure := false
	if cfg.Session != nil {
		cookieSecure = cfg.Session.CookieSecure
	}

	return &GoogleHandler{
		uc:           uc,
		oauthSvc:     oauthSvc,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

func loginErrorRedirect(c echo.Context, code string) error {
	return c.Redirect(http.StatusFound, "/login?error="+code)
}

// Login starts the flow: stash a fresh anti-forgery state (plus the
// caller's desired landing path) in short-lived cookies and bounce to
// Google's consent page.
func (h *GoogleHandler) Login(c echo.Context) error {
	if !h.oauthSvc.Configured() {
		h.logger.Error("Google login requested but OAuth is not configured")

		return loginErrorRedirect(c, googleConfigError)
	}

	state, err := util.RandomHex(16)
	if err != nil {
		return errors.Wrap(err, "failed to generate oauth state")
	}

	cookie.SetOAuthState(c, state, c.QueryParam("redirect"), h.cookieSecure)

	return c.Redirect(http.StatusFound, h.oauthSvc.AuthCodeURL(state))
}

// Callback finishes the flow. Both OAuth cookies are cleared on every exit
// path; failures land on the login page with a machine-readable error code
// and never leak provider details.
func (h *GoogleHandler) Callback(c echo.Context) error {
	var storedState, redirectTo string
	if ck, err := c.Cookie(cookie.OAuthState); err == nil && ck != nil {
		storedState = ck.Value
	}
	if ck, err := c.Cookie(cookie.OAuthRedirect); err == nil && ck != nil {
		redirectTo = ck.Value
	}
	cookie.ClearOAuthState(c, h.cookieSecure)

	if !h.oauthSvc.Configured() {
		return loginErrorRedirect(c, googleConfigError)
	}

	code := c.QueryParam("code")
	if code == "" {
		return loginErrorRedirect(c, googleNoCode)
	}

	// Exact, case-sensitive match; a missing cookie or query value counts
	// as a mismatch.
	state := c.QueryParam("state")
	if state == "" || storedState == "" || state != storedState {
		return loginErrorRedirect(c, googleStateMismatch)
	}

	profile, err := h.oauthSvc.ExchangeCode(c.Request().Context(), code)
	if err != nil {
		h.logger.Warn("Google code exchange failed", slog.Any("error", err))

		switch {
		case errors.Is(err, service.ErrOAuthNoAccessToken):
			return loginErrorRedirect(c, googleNoAccessToken)
		case errors.Is(err, service.ErrOAuthUserInfo):
			return loginErrorRedirect(c, googleUserInfoError)
		case errors.Is(err, service.ErrOAuthExchange):
			return loginErrorRedirect(c, googleTokenError)
		default:
			return loginErrorRedirect(c, googleUnknownError)
		}
	}

	if profile.ID == "" {
		return loginErrorRedirect(c, googleNoID)
	}
	if profile.Email == "" {
		return loginErrorRedirect(c, googleNoEmail)
	}

	output, err := h.uc.LoginWithGoogle(c.Request().Context(), profile)
	if err != nil {
		h.logger.Error("Failed to resolve google login to an account", slog.Any("error", err))

		return loginErrorRedirect(c, googleUnknownError)
	}

	cookie.SetSession(c, output.Token, h.cookieSecure)

	// Only same-origin relative paths may be used as the landing page.
	target := "/"
	if strings.HasPrefix(redirectTo, "/") && !strings.HasPrefix(redirectTo, "//") {
		target = redirectTo
	}

	return c.Redirect(http.StatusFound, target)
}
