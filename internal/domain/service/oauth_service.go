package service

import (
	"context"
	"errors"
)

// Failure modes of the authorization code exchange, kept distinct so the
// callback handler can report a precise error code to the login page.
var (
	// ErrOAuthExchange means the provider rejected the authorization code.
	ErrOAuthExchange = errors.New("oauth code exchange failed")
	// ErrOAuthNoAccessToken means the exchange succeeded but returned no usable token.
	ErrOAuthNoAccessToken = errors.New("oauth exchange returned no access token")
	// ErrOAuthUserInfo means the profile lookup with the fresh token failed.
	ErrOAuthUserInfo = errors.New("oauth user info request failed")
)

// OAuthProfile represents the user information returned by an OAuth provider
// after a successful authorization code exchange.
type OAuthProfile struct {
	ID            string // Provider-specific user ID (e.g., Google's 'sub' claim)
	Email         string // User's email address, may be empty for some providers
	Name          string // User's display name
	Picture       string // URL to the user's profile picture
	EmailVerified bool   // Whether the email is verified by the provider
}

// OAuthService drives the server-side authorization code flow with an
// external identity provider. Implementations own the provider endpoints
// and client credentials; the CSRF state value is managed by the caller.
type OAuthService interface {
	// Configured reports whether provider credentials are present. When
	// false the login flow must fail fast instead of redirecting.
	Configured() bool

	// AuthCodeURL builds the provider consent page URL carrying the given
	// anti-forgery state value.
	AuthCodeURL(state string) string

	// ExchangeCode swaps an authorization code for provider tokens and
	// fetches the authenticated user's profile.
	ExchangeCode(ctx context.Context, code string) (*OAuthProfile, error)
}
