package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"voyage/internal/domain/entity"
	"voyage/internal/domain/service"
	"voyage/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleHandler_Login_RedirectsWithStateCookies(t *testing.T) {
	e := newTestEcho()
	oauthSvc := &stubOAuthService{configured: true}
	h := NewGoogleHandler(&stubAuthUsecase{}, oauthSvc, newTestConfig(), newDiscardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google?redirect=/bookmark", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	assert.Len(t, state, 32)

	stateCookie := findCookie(rec.Result().Cookies(), "google_oauth_state")
	require.NotNil(t, stateCookie)
	assert.Equal(t, state, stateCookie.Value)
	assert.Equal(t, 600, stateCookie.MaxAge)

	redirectCookie := findCookie(rec.Result().Cookies(), "google_oauth_redirect_to")
	require.NotNil(t, redirectCookie)
	assert.Equal(t, "/bookmark", redirectCookie.Value)
}

func TestGoogleHandler_Login_Unconfigured(t *testing.T) {
	e := newTestEcho()
	h := NewGoogleHandler(&stubAuthUsecase{}, &stubOAuthService{configured: false}, newTestConfig(), newDiscardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?error=google_config_error", rec.Header().Get("Location"))
}

// A state mismatch must abort before any code exchange and still clear the
// OAuth cookies.
func TestGoogleHandler_Callback_StateMismatch(t *testing.T) {
	e := newTestEcho()
	oauthSvc := &stubOAuthService{configured: true}
	h := NewGoogleHandler(&stubAuthUsecase{}, oauthSvc, newTestConfig(), newDiscardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=attacker", nil)
	req.AddCookie(&http.Cookie{Name: "google_oauth_state", Value: "expected"})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Callback(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?error=google_state_mismatch", rec.Header().Get("Location"))
	assert.False(t, oauthSvc.exchangeCalled)

	stateCookie := findCookie(rec.Result().Cookies(), "google_oauth_state")
	require.NotNil(t, stateCookie)
	assert.Empty(t, stateCookie.Value)
	assert.Negative(t, stateCookie.MaxAge)
}

func TestGoogleHandler_Callback_MissingStateCookie(t *testing.T) {
	e := newTestEcho()
	oauthSvc := &stubOAuthService{configured: true}
	h := NewGoogleHandler(&stubAuthUsecase{}, oauthSvc, newTestConfig(), newDiscardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=expected", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Callback(e.NewContext(req, rec)))

	assert.Equal(t, "/login?error=google_state_mismatch", rec.Header().Get("Location"))
	assert.False(t, oauthSvc.exchangeCalled)
}

func TestGoogleHandler_Callback_NoCode(t *testing.T) {
	e := newTestEcho()
	h := NewGoogleHandler(&stubAuthUsecase{}, &stubOAuthService{configured: true}, newTestConfig(), newDiscardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Callback(e.NewContext(req, rec)))
	assert.Equal(t, "/login?error=google_no_code", rec.Header().Get("Location"))
}

func TestGoogleHandler_Callback_ExchangeFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"provider rejected code", service.ErrOAuthExchange, "/login?error=google_token_error"},
		{"no access token", service.ErrOAuthNoAccessToken, "/login?error=google_no_access_token"},
		{"userinfo failure", service.ErrOAuthUserInfo, "/login?error=google_userinfo_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			oauthSvc := &stubOAuthService{
				configured: true,
				exchangeCodeFn: func(context.Context, string) (*service.OAuthProfile, error) {
					return nil, tt.err
				},
			}
			h := NewGoogleHandler(&stubAuthUsecase{}, oauthSvc, newTestConfig(), newDiscardLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=expected", nil)
			req.AddCookie(&http.Cookie{Name: "google_oauth_state", Value: "expected"})
			rec := httptest.NewRecorder()

			require.NoError(t, h.Callback(e.NewContext(req, rec)))
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestGoogleHandler_Callback_Success(t *testing.T) {
	e := newTestEcho()
	userID := uuid.New()

	oauthSvc := &stubOAuthService{
		configured: true,
		exchangeCodeFn: func(_ context.Context, code string) (*service.OAuthProfile, error) {
			require.Equal(t, "abc", code)

			return &service.OAuthProfile{ID: "google-sub-1", Email: "test@example.com", Name: "Test User"}, nil
		},
	}
	uc := &stubAuthUsecase{
		loginWithGoogleFn: func(_ context.Context, profile *service.OAuthProfile) (*usecase.SessionOutput, error) {
			return &usecase.SessionOutput{
				Token: "issued_token",
				User:  &entity.User{ID: userID, Email: profile.Email},
			}, nil
		},
	}
	h := NewGoogleHandler(uc, oauthSvc, newTestConfig(), newDiscardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=expected", nil)
	req.AddCookie(&http.Cookie{Name: "google_oauth_state", Value: "expected"})
	req.AddCookie(&http.Cookie{Name: "google_oauth_redirect_to", Value: "/bookmark"})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Callback(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/bookmark", rec.Header().Get("Location"))

	sessionCookie := findCookie(rec.Result().Cookies(), "token")
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "issued_token", sessionCookie.Value)

	stateCookie := findCookie(rec.Result().Cookies(), "google_oauth_state")
	require.NotNil(t, stateCookie)
	assert.Negative(t, stateCookie.MaxAge)
}

// Stored redirect targets that are not same-origin relative paths fall
// back to the site root.
func TestGoogleHandler_Callback_UnsafeRedirectTarget(t *testing.T) {
	for _, target := range []string{"https://evil.example.com", "//evil.example.com", "bookmark"} {
		e := newTestEcho()
		oauthSvc := &stubOAuthService{
			configured: true,
			exchangeCodeFn: func(context.Context, string) (*service.OAuthProfile, error) {
				return &service.OAuthProfile{ID: "google-sub-1", Email: "test@example.com"}, nil
			},
		}
		uc := &stubAuthUsecase{
			loginWithGoogleFn: func(context.Context, *service.OAuthProfile) (*usecase.SessionOutput, error) {
				return &usecase.SessionOutput{Token: "issued_token", User: &entity.User{ID: uuid.New()}}, nil
			},
		}
		h := NewGoogleHandler(uc, oauthSvc, newTestConfig(), newDiscardLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=expected", nil)
		req.AddCookie(&http.Cookie{Name: "google_oauth_state", Value: "expected"})
		req.AddCookie(&http.Cookie{Name: "google_oauth_redirect_to", Value: target})
		rec := httptest.NewRecorder()

		require.NoError(t, h.Callback(e.NewContext(req, rec)))
		assert.Equal(t, "/", rec.Header().Get("Location"), "target %q must be dropped", target)
	}
}

func TestGoogleHandler_Callback_IncompleteProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *service.OAuthProfile
		want    string
	}{
		{"missing id", &service.OAuthProfile{Email: "test@example.com"}, "/login?error=google_no_id"},
		{"missing email", &service.OAuthProfile{ID: "google-sub-1"}, "/login?error=google_no_email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			oauthSvc := &stubOAuthService{
				configured: true,
				exchangeCodeFn: func(context.Context, string) (*service.OAuthProfile, error) {
					return tt.profile, nil
				},
			}
			h := NewGoogleHandler(&stubAuthUsecase{}, oauthSvc, newTestConfig(), newDiscardLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=expected", nil)
			req.AddCookie(&http.Cookie{Name: "google_oauth_state", Value: "expected"})
			rec := httptest.NewRecorder()

			require.NoError(t, h.Callback(e.NewContext(req, rec)))
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}
