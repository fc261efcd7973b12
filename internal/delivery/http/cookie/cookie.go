// Package cookie centralizes the browser cookies the service issues: the
// session token and the short-lived Google OAuth state pair. Every cookie
// is HttpOnly, SameSite=Lax and scoped to the whole site; Secure comes
// from deployment configuration, decided once at startup.
package cookie

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// Session carries the signed session token.
	Session = "token"

	// OAuthState carries the anti-forgery state for the Google login flow.
	OAuthState = "google_oauth_state"

	// OAuthRedirect remembers where to land after a completed Google login.
	OAuthRedirect = "google_oauth_redirect_to"
)

const (
	sessionMaxAge = 7 * 24 * time.Hour
	oauthMaxAge   = 10 * time.Minute
)

func build(name, value string, maxAge time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetSession stores the session token for seven days.
func SetSession(c echo.Context, token string, secure bool) {
	c.SetCookie(build(Session, token, sessionMaxAge, secure))
}

// ClearSession expires the session cookie immediately.
func ClearSession(c echo.Context, secure bool) {
	c.SetCookie(build(Session, "", -time.Second, secure))
}

// SetOAuthState stores the state value and the post-login redirect path
// for the duration of one Google round trip.
func SetOAuthState(c echo.Context, state, redirectTo string, secure bool) {
	c.SetCookie(build(OAuthState, state, oauthMaxAge, secure))
	c.SetCookie(build(OAuthRedirect, redirectTo, oauthMaxAge, secure))
}

// ClearOAuthState removes both OAuth cookies. Called on every callback
// exit path, success or failure.
func ClearOAuthState(c echo.Context, secure bool) {
	c.SetCookie(build(OAuthState, "", -time.Second, secure))
	c.SetCookie(build(OAuthRedirect, "", -time.Second, secure))
}

// SessionToken reads the raw session token from the request, returning
// an empty string when the cookie is absent.
func SessionToken(c echo.Context) string {
	ck, err := c.Cookie(Session)
	if err != nil || ck == nil {
		return ""
	}

	return ck.Value
}
