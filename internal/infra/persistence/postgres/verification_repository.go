package postgres

import (
	"context"
	"strings"
	"time"

	"voyage/internal/domain/entity"
	domainerrors "voyage/internal/domain/errors"
	"voyage/internal/domain/repository"
	"voyage/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// verificationRepository implements the domain.VerificationRepository interface using GORM.
type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository is the constructor for verificationRepository.
func NewVerificationRepository(db *gorm.DB) repository.VerificationRepository {
	return &verificationRepository{db: db}
}

// Create persists a freshly issued code.
func (repo *verificationRepository) Create(ctx context.Context, code *entity.EmailVerificationCode) error {
	codeM := fromVerificationDomain(code)

	if err := repo.db.WithContext(ctx).Create(codeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create verification code")
	}

	code.ID = codeM.ID
	code.CreatedAt = codeM.CreatedAt

	return nil
}

// FindLatestByEmail retrieves the most recently issued code for an address.
func (repo *verificationRepository) FindLatestByEmail(ctx context.Context, email string) (*entity.EmailVerificationCode, error) {
	var codeM model.EmailVerificationCodeModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		Order("created_at DESC").
		First(&codeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVerificationCodeNotFound
		}

		return nil, errors.Wrap(err, "failed to find latest verification code")
	}

	return toVerificationDomain(&codeM), nil
}

// FindUsable retrieves an unconsumed, unexpired code matching the given
// address and code value.
func (repo *verificationRepository) FindUsable(ctx context.Context, email, code string, now time.Time) (*entity.EmailVerificationCode, error) {
	var codeM model.EmailVerificationCodeModel
	err := repo.db.WithContext(ctx).
		Where("email = ? AND code = ? AND consumed_at IS NULL AND expires_at > ?", strings.ToLower(email), code, now).
		Order("created_at DESC").
		First(&codeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVerificationCodeNotFound
		}

		return nil, errors.Wrap(err, "failed to find usable verification code")
	}

	return toVerificationDomain(&codeM), nil
}

// MarkConsumed stamps the code as used so it cannot be redeemed again.
func (repo *verificationRepository) MarkConsumed(ctx context.Context, id uuid.UUID, consumedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.EmailVerificationCodeModel{}).
		Where("id = ? AND consumed_at IS NULL", id).
		Update("consumed_at", consumedAt)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume verification code")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVerificationCodeNotFound
	}

	return nil
}

// InvalidateForEmail expires every outstanding code for an address by
// marking it consumed, so only the newest issued code stays redeemable.
func (repo *verificationRepository) InvalidateForEmail(ctx context.Context, email string) error {
	err := repo.db.WithContext(ctx).
		Model(&model.EmailVerificationCodeModel{}).
		Where("email = ? AND consumed_at IS NULL", strings.ToLower(email)).
		Update("consumed_at", time.Now()).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to invalidate verification codes")
	}

	return nil
}

// --- Mapper Functions ---

// toVerificationDomain converts a GORM model to a domain entity.
func toVerificationDomain(data *model.EmailVerificationCodeModel) *entity.EmailVerificationCode {
	if data == nil {
		return nil
	}

	return &entity.EmailVerificationCode{
		ID:         data.ID,
		Email:      data.Email,
		Code:       data.Code,
		ExpiresAt:  data.ExpiresAt,
		ConsumedAt: data.ConsumedAt,
		CreatedAt:  data.CreatedAt,
	}
}

// fromVerificationDomain converts a domain entity to a GORM model.
func fromVerificationDomain(data *entity.EmailVerificationCode) *model.EmailVerificationCodeModel {
	if data == nil {
		return nil
	}

	return &model.EmailVerificationCodeModel{
		ID:         data.ID,
		Email:      strings.ToLower(data.Email),
		Code:       data.Code,
		ExpiresAt:  data.ExpiresAt,
		ConsumedAt: data.ConsumedAt,
	}
}
