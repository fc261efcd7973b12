// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "voyage/internal/delivery/context"
	"voyage/internal/domain/entity"
	domainerrors "voyage/internal/domain/errors"
	"voyage/internal/domain/repository"
	"voyage/internal/domain/service"
	"voyage/internal/usecase"
	"voyage/internal/util"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	authRepo       repository.AuthRepository
	hasher         service.PasswordHasher
	passwordPolicy service.PasswordPolicy
	tokenService   service.SessionTokenService
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	AuthRepo       repository.AuthRepository
	Hasher         service.PasswordHasher
	PasswordPolicy service.PasswordPolicy
	TokenService   service.SessionTokenService
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		authRepo:       params.AuthRepo,
		hasher:         params.Hasher,
		passwordPolicy: params.PasswordPolicy,
		tokenService:   params.TokenService,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates a user with an email/password credential and opens a session.
func (srv *authService) SignUp(ctx context.Context, input usecase.SignUpInput) (*usecase.SessionOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting signup", slog.String("email", util.MaskEmail(email)))

	if err := srv.passwordPolicy.Validate(input.Password); err != nil {
		srv.log(ctx).Warn("Password rejected during signup", slog.Any("error", err))

		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	var registered *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		authRepo := repoFactory.NewAuthRepository()

		// Any account holding this address blocks signup, including
		// Google-only accounts without a password credential.
		_, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing user")
		}

		user := &entity.User{
			Email: email,
			Name:  strings.TrimSpace(input.Name),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		auth := &entity.Authentication{
			UserID:         user.ID,
			Provider:       entity.ProviderEmail,
			ProviderUserID: email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, auth); err != nil {
			return err
		}

		registered = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", registered.ID))

	return srv.openSession(registered)
}

// Login verifies an email/password credential and opens a session.
// Unknown address, missing password credential and wrong password all
// collapse into the same error so responses cannot be used to probe
// accounts.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.SessionOutput, error) {
	email := normalizeEmail(input.Email)

	auth, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderEmail, email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			srv.log(ctx).Info("Login failed: no email credential", slog.String("email", util.MaskEmail(email)))

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to load credential")
	}

	if !auth.HasPassword() || !srv.hasher.Check(input.Password, auth.PasswordHash) {
		srv.log(ctx).Info("Login failed: password mismatch", slog.String("email", util.MaskEmail(email)))

		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := srv.userRepo.FindByID(ctx, auth.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	return srv.openSession(user)
}

// LoginWithGoogle resolves a verified Google profile to a local account.
// Resolution order: existing Google link, then attach to the account owning
// the same email, then create a fresh passwordless account.
func (srv *authService) LoginWithGoogle(ctx context.Context, profile *service.OAuthProfile) (*usecase.SessionOutput, error) {
	if profile == nil || profile.ID == "" || profile.Email == "" {
		return nil, domainerrors.ErrOAuthFailed.WrapMessage("incomplete google profile")
	}

	email := normalizeEmail(profile.Email)

	var resolved *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		authRepo := repoFactory.NewAuthRepository()

		auth, err := authRepo.FindAuthentication(ctx, entity.ProviderGoogle, profile.ID)
		if err == nil {
			return srv.resolveLinkedUser(ctx, userRepo, auth, profile, &resolved)
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to look up google credential")
		}

		existing, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			return srv.attachGoogleCredential(ctx, userRepo, authRepo, existing, profile, &resolved)
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up user by email")
		}

		return srv.createGoogleUser(ctx, userRepo, authRepo, email, profile, &resolved)
	})
	if err != nil {
		return nil, err
	}

	return srv.openSession(resolved)
}

// resolveLinkedUser handles a Google credential that is already linked.
func (srv *authService) resolveLinkedUser(
	ctx context.Context,
	userRepo repository.UserRepository,
	auth *entity.Authentication,
	profile *service.OAuthProfile,
	resolved **entity.User,
) error {
	user, err := userRepo.FindByID(ctx, auth.UserID)
	if err != nil {
		return errors.Wrap(err, "failed to load linked google user")
	}

	if !user.EmailVerified && profile.EmailVerified {
		user.EmailVerified = true
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to record verified email")
		}
	}

	*resolved = user

	return nil
}

// attachGoogleCredential links a Google identity to an existing account
// holding the same address. The account keeps its ID and any password
// credential it already has.
func (srv *authService) attachGoogleCredential(
	ctx context.Context,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	user *entity.User,
	profile *service.OAuthProfile,
	resolved **entity.User,
) error {
	srv.log(ctx).Info("Linking google credential to existing account", slog.Any("userID", user.ID))

	auth := &entity.Authentication{
		UserID:         user.ID,
		Provider:       entity.ProviderGoogle,
		ProviderUserID: profile.ID,
	}
	if err := authRepo.CreateAuthentication(ctx, auth); err != nil {
		return err
	}

	if !user.EmailVerified && profile.EmailVerified {
		user.EmailVerified = true
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to record verified email")
		}
	}

	*resolved = user

	return nil
}

// createGoogleUser provisions a passwordless account for a first-time
// Google login.
func (srv *authService) createGoogleUser(
	ctx context.Context,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	email string,
	profile *service.OAuthProfile,
	resolved **entity.User,
) error {
	name := profile.Name
	if name == "" {
		name = "Google user"
	}

	user := &entity.User{
		Email:         email,
		Name:          name,
		EmailVerified: profile.EmailVerified,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return err
	}

	auth := &entity.Authentication{
		UserID:         user.ID,
		Provider:       entity.ProviderGoogle,
		ProviderUserID: profile.ID,
	}
	if err := authRepo.CreateAuthentication(ctx, auth); err != nil {
		return err
	}

	srv.log(ctx).Info("Created account from google login", slog.Any("userID", user.ID))

	*resolved = user

	return nil
}

// CurrentUser loads the account behind verified session claims. A token
// surviving its account fails closed.
func (srv *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated
		}

		return nil, errors.Wrap(err, "failed to load current user")
	}

	return user, nil
}

func (srv *authService) openSession(user *entity.User) (*usecase.SessionOutput, error) {
	token, err := srv.tokenService.Issue(service.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &usecase.SessionOutput{Token: token, User: user}, nil
}
