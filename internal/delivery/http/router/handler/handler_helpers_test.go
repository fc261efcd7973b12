package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"voyage/config"
	"voyage/internal/delivery/http/validator"
	"voyage/internal/domain/entity"
	"voyage/internal/domain/service"
	"voyage/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{Session: &config.SessionConfig{Secret: "test-secret"}}
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, ck := range cookies {
		if ck.Name == name {
			return ck
		}
	}

	return nil
}

// stubAuthUsecase lets each test supply just the methods it exercises.
type stubAuthUsecase struct {
	signUpFn          func(ctx context.Context, input usecase.SignUpInput) (*usecase.SessionOutput, error)
	loginFn           func(ctx context.Context, input usecase.LoginInput) (*usecase.SessionOutput, error)
	loginWithGoogleFn func(ctx context.Context, profile *service.OAuthProfile) (*usecase.SessionOutput, error)
	currentUserFn     func(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

func (s *stubAuthUsecase) SignUp(ctx context.Context, input usecase.SignUpInput) (*usecase.SessionOutput, error) {
	return s.signUpFn(ctx, input)
}

func (s *stubAuthUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.SessionOutput, error) {
	return s.loginFn(ctx, input)
}

func (s *stubAuthUsecase) LoginWithGoogle(ctx context.Context, profile *service.OAuthProfile) (*usecase.SessionOutput, error) {
	return s.loginWithGoogleFn(ctx, profile)
}

func (s *stubAuthUsecase) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.currentUserFn(ctx, userID)
}

type stubTokenService struct {
	issueFn  func(identity service.Identity) (string, error)
	verifyFn func(raw string) (*service.SessionClaims, error)
}

func (s *stubTokenService) Issue(identity service.Identity) (string, error) {
	return s.issueFn(identity)
}

func (s *stubTokenService) Verify(raw string) (*service.SessionClaims, error) {
	return s.verifyFn(raw)
}

type stubOAuthService struct {
	configured     bool
	authCodeURLFn  func(state string) string
	exchangeCodeFn func(ctx context.Context, code string) (*service.OAuthProfile, error)
	exchangeCalled bool
}

func (s *stubOAuthService) Configured() bool { return s.configured }

func (s *stubOAuthService) AuthCodeURL(state string) string {
	if s.authCodeURLFn != nil {
		return s.authCodeURLFn(state)
	}

	return "https://accounts.google.com/o/oauth2/v2/auth?state=" + state
}

func (s *stubOAuthService) ExchangeCode(ctx context.Context, code string) (*service.OAuthProfile, error) {
	s.exchangeCalled = true
	if s.exchangeCodeFn != nil {
		return s.exchangeCodeFn(ctx, code)
	}

	return nil, service.ErrOAuthExchange
}
