// Package google implements the authorization code flow against Google's
// OAuth 2.0 endpoints.
package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"voyage/config"
	"voyage/internal/domain/service"
	"voyage/internal/errors"
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// defaultExchangeTimeout bounds the token exchange plus the userinfo
// fetch. A stalled provider must surface as an upstream failure instead
// of hanging the callback handler.
const defaultExchangeTimeout = 10 * time.Second

// Endpoints pinned rather than discovered; Google has kept these stable
// for years and discovery would add a boot-time network dependency.
var endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

var defaultScopes = []string{"openid", "email", "profile"}

// OAuthService drives the Google authorization code flow. CSRF state is
// owned by the HTTP layer (cookie round-trip), so this service is
// stateless and safe for concurrent use.
type OAuthService struct {
	oauth           *oauth2.Config
	configured      bool
	userInfoURL     string
	exchangeTimeout time.Duration
}

// NewOAuthService creates a new Google OAuth service from configuration.
// Missing credentials are tolerated at construction time; Configured lets
// the login flow fail fast instead.
func NewOAuthService(cfg *config.Config) service.OAuthService {
	var (
		clientID, clientSecret, redirectURI string
		scopes                              = defaultScopes
	)
	if g := cfg.GoogleOAuth; g != nil {
		clientID = g.ClientID
		clientSecret = g.ClientSecret
		redirectURI = g.RedirectURI
		if g.Scopes != "" {
			scopes = strings.Fields(g.Scopes)
		}
	}

	return &OAuthService{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		configured:      clientID != "" && clientSecret != "" && redirectURI != "",
		userInfoURL:     defaultUserInfoURL,
		exchangeTimeout: defaultExchangeTimeout,
	}
}

// Configured reports whether provider credentials are present.
func (s *OAuthService) Configured() bool {
	return s.configured
}

// AuthCodeURL builds the provider consent page URL carrying the given
// anti-forgery state value.
func (s *OAuthService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeCode swaps an authorization code for provider tokens and fetches
// the authenticated user's profile from the userinfo endpoint.
func (s *OAuthService) ExchangeCode(ctx context.Context, code string) (*service.OAuthProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.exchangeTimeout)
	defer cancel()

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(service.ErrOAuthExchange, err.Error())
	}
	if token.AccessToken == "" {
		return nil, service.ErrOAuthNoAccessToken
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, errors.Wrap(service.ErrOAuthUserInfo, err.Error())
	}

	return profile, nil
}

func (s *OAuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*service.OAuthProfile, error) {
	// The request must carry ctx so the exchange deadline covers this
	// call too; Client.Get would issue it without one.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, errors.Errorf("userinfo returned status %d: %s", resp.StatusCode, string(body))
	}

	var raw struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		GivenName     string `json:"given_name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode userinfo response")
	}

	name := raw.Name
	if name == "" {
		name = raw.GivenName
	}

	return &service.OAuthProfile{
		ID:            raw.Sub,
		Email:         strings.ToLower(strings.TrimSpace(raw.Email)),
		Name:          name,
		Picture:       raw.Picture,
		EmailVerified: raw.EmailVerified,
	}, nil
}
