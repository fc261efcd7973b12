package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"voyage/config"
	"voyage/internal/delivery/http/cookie"
	"voyage/internal/delivery/http/response"
	"voyage/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// ContextKeyUserID is the echo.Context key under which Authenticate stores
// the authenticated user's ID.
const ContextKeyUserID = "userID"

// ContextKeySessionClaims is the echo.Context key for the full session claims.
const ContextKeySessionClaims = "sessionClaims"

// AuthMiddleware gates requests on the signed session cookie.
type AuthMiddleware struct {
	tokenSvc          service.SessionTokenService
	protectedPrefixes []string
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.SessionTokenService, cfg *config.Config) *AuthMiddleware {
	prefixes := []string{"/bookmark"}
	if cfg.Session != nil && len(cfg.Session.ProtectedPrefixes) > 0 {
		prefixes = cfg.Session.ProtectedPrefixes
	}

	return &AuthMiddleware{tokenSvc: tokenSvc, protectedPrefixes: prefixes}
}

// verify resolves the session cookie to claims. Absent cookie and invalid
// token are indistinguishable to callers.
func (m *AuthMiddleware) verify(c echo.Context) (*service.SessionClaims, bool) {
	raw := cookie.SessionToken(c)
	if raw == "" {
		return nil, false
	}

	claims, err := m.tokenSvc.Verify(raw)
	if err != nil {
		return nil, false
	}

	return claims, true
}

// Authenticate protects API routes. Requests without a valid session get a
// uniform 401 regardless of why verification failed.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := m.verify(c)
		if !ok {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeySessionClaims, claims)

		return next(c)
	}
}

// GatePages protects browser-facing paths: unauthenticated visits to a
// protected prefix are bounced to the login page with the original
// destination preserved in the redirect query parameter.
func (m *AuthMiddleware) GatePages(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		if !m.protected(path) {
			return next(c)
		}

		if claims, ok := m.verify(c); ok {
			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeySessionClaims, claims)

			return next(c)
		}

		target := path
		if q := c.Request().URL.RawQuery; q != "" {
			target += "?" + q
		}

		loginURL := "/login"
		// Only a same-origin relative path may ride along; anything else
		// (absolute URL, scheme-relative //host) is dropped.
		if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") {
			loginURL += "?redirect=" + url.QueryEscape(target)
		}

		return c.Redirect(http.StatusFound, loginURL)
	}
}

func (m *AuthMiddleware) protected(path string) bool {
	for _, prefix := range m.protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}
