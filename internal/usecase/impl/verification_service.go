package impl

import (
	"context"
	"log/slog"
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

const verificationCodeLength = 6

// verificationService implements the VerificationUsecase interface.
type verificationService struct {
	txManager        repository.TransactionManager
	verificationRepo repository.VerificationRepository
	userRepo         repository.UserRepository
	mailer           service.Mailer
	codeTTL          time.Duration
	resendCooldown   time.Duration
	logger           *slog.Logger
}

// VerificationServiceParams holds dependencies for verificationService, injected by Fx.
type VerificationServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	VerificationRepo repository.VerificationRepository
	UserRepo         repository.UserRepository
	Mailer           service.Mailer
	Config           *config.Config
	Logger           *slog.Logger
}

// NewVerificationService is the constructor for verificationService.
func NewVerificationService(params VerificationServiceParams) usecase.VerificationUsecase {
	codeTTL := 10 * time.Minute
	resendCooldown := time.Minute
	if v := params.Config.Verification; v != nil {
		if v.CodeTTL > 0 {
			codeTTL = v.CodeTTL
		}
		if v.ResendCooldown > 0 {
			resendCooldown = v.ResendCooldown
		}
	}

	return &verificationService{
		txManager:        params.TxManager,
		verificationRepo: params.VerificationRepo,
		userRepo:         params.UserRepo,
		mailer:           params.Mailer,
		codeTTL:          codeTTL,
		resendCooldown:   resendCooldown,
		logger:           params.Logger,
	}
}

func (srv *verificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SendCode issues a fresh code for the address and mails it. Earlier
// unconsumed codes stop working as soon as the new one is stored.
func (srv *verificationService) SendCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	latest, err := srv.verificationRepo.FindLatestByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrVerificationCodeNotFound) {
		return errors.Wrap(err, "failed to check verification code history")
	}
	if latest != nil && time.Since(latest.CreatedAt) < srv.resendCooldown {
		srv.log(ctx).Info("Verification code resend throttled",
			slog.String("email", util.MaskEmail(email)))

		return domainerrors.ErrVerificationCooldown
	}

	code, err := util.RandomDigits(verificationCodeLength)
	if err != nil {
		return errors.Wrap(err, "failed to generate verification code")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		verificationRepo := repoFactory.NewVerificationRepository()

		if err := verificationRepo.InvalidateForEmail(ctx, email); err != nil {
			return err
		}

		return verificationRepo.Create(ctx, &entity.EmailVerificationCode{
			Email:     email,
			Code:      code,
			ExpiresAt: time.Now().Add(srv.codeTTL),
		})
	})
	if err != nil {
		return err
	}

	// Mail delivery sits outside the transaction: a failed send should not
	// roll back the issued code, the user can simply request another.
	if err := srv.mailer.SendVerificationCode(ctx, email, "", code); err != nil {
		srv.log(ctx).Error("Failed to send verification code",
			slog.String("email", util.MaskEmail(email)),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "failed to send verification mail")
	}

	return nil
}

// VerifyCode redeems a pending code. When the address already belongs to an
// account, the account is marked email-verified in the same transaction.
func (srv *verificationService) VerifyCode(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)

	pending, err := srv.verificationRepo.FindUsable(ctx, email, code, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrVerificationCodeNotFound) {
			return domainerrors.ErrVerificationCodeInvalid
		}

		return errors.Wrap(err, "failed to look up verification code")
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		verificationRepo := repoFactory.NewVerificationRepository()
		userRepo := repoFactory.NewUserRepository()

		if err := verificationRepo.MarkConsumed(ctx, pending.ID, time.Now()); err != nil {
			if errors.Is(err, repository.ErrVerificationCodeNotFound) {
				// Consumed by a concurrent request between lookup and redeem.
				return domainerrors.ErrVerificationCodeInvalid
			}

			return err
		}

		user, err := userRepo.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrUserNotFound) {
			// Pre-signup verification: nothing to update yet.
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to load user for verification")
		}

		if !user.EmailVerified {
			user.EmailVerified = true
			if err := userRepo.Update(ctx, user); err != nil {
				return errors.Wrap(err, "failed to mark email verified")
			}
		}

		return nil
	})
}
