package impl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"voyage/config"
	deliverycontext "voyage/internal/delivery/context"
	"voyage/internal/domain/entity"
	domainerrors "voyage/internal/domain/errors"
	"voyage/internal/domain/repository"
	"voyage/internal/domain/service"
	"voyage/internal/usecase"
	"voyage/internal/util"
)

const (
	resetTokenBytes = 32
	resetTokenTTL   = time.Hour
)

// passwordResetService implements the PasswordResetUsecase interface.
type passwordResetService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	authRepo       repository.AuthRepository
	hasher         service.PasswordHasher
	passwordPolicy service.PasswordPolicy
	mailer         service.Mailer
	baseURL        string
	logger         *slog.Logger
}

// PasswordResetServiceParams holds dependencies for passwordResetService, injected by Fx.
type PasswordResetServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	AuthRepo       repository.AuthRepository
	Hasher         service.PasswordHasher
	PasswordPolicy service.PasswordPolicy
	Mailer         service.Mailer
	Config         *config.Config
	Logger         *slog.Logger
}

// NewPasswordResetService is the constructor for passwordResetService.
func NewPasswordResetService(params PasswordResetServiceParams) usecase.PasswordResetUsecase {
	baseURL := ""
	if params.Config.Session != nil {
		baseURL = params.Config.Session.BaseURL
	}

	return &passwordResetService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		authRepo:       params.AuthRepo,
		hasher:         params.Hasher,
		passwordPolicy: params.PasswordPolicy,
		mailer:         params.Mailer,
		baseURL:        baseURL,
		logger:         params.Logger,
	}
}

func (srv *passwordResetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Request issues a reset token for the address when it has a password
// credential. The response is identical either way so callers cannot probe
// which addresses are registered.
func (srv *passwordResetService) Request(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	auth, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderEmail, email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			srv.log(ctx).Info("Password reset requested for unknown address",
				slog.String("email", util.MaskEmail(email)))

			return nil
		}

		return errors.Wrap(err, "failed to look up credential for reset")
	}

	user, err := srv.userRepo.FindByID(ctx, auth.UserID)
	if err != nil {
		return errors.Wrap(err, "failed to load user for reset")
	}

	token, err := util.RandomHex(resetTokenBytes)
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	expiresAt := time.Now().Add(resetTokenTTL)
	auth.ResetTokenHash = util.HashToken(token)
	auth.ResetExpiresAt = &expiresAt

	if err := srv.authRepo.UpdateAuthentication(ctx, auth); err != nil {
		return errors.Wrap(err, "failed to store reset token")
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", srv.baseURL, url.QueryEscape(token))
	if err := srv.mailer.SendPasswordReset(ctx, email, user.Name, resetURL); err != nil {
		srv.log(ctx).Error("Failed to send password reset mail",
			slog.String("email", util.MaskEmail(email)),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "failed to send reset mail")
	}

	return nil
}

// Confirm redeems a reset token and replaces the password credential. The
// token is single use: its hash is cleared in the same update that writes
// the new password hash.
func (srv *passwordResetService) Confirm(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domainerrors.ErrResetTokenInvalid
	}

	auth, err := srv.authRepo.FindByResetTokenHash(ctx, util.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			return domainerrors.ErrResetTokenInvalid
		}

		return errors.Wrap(err, "failed to look up reset token")
	}

	if auth.ResetExpiresAt == nil || time.Now().After(*auth.ResetExpiresAt) {
		return domainerrors.ErrResetTokenInvalid
	}

	if err := srv.passwordPolicy.Validate(newPassword); err != nil {
		return err
	}

	hashed, err := srv.hasher.Hash(newPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.NewAuthRepository()

		auth.PasswordHash = hashed
		auth.ResetTokenHash = ""
		auth.ResetExpiresAt = nil

		if err := authRepo.UpdateAuthentication(ctx, auth); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		return nil
	})
}
