package repository

import (
	"context"
	"errors"
	"time"

	"voyage/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrVerificationCodeNotFound is returned when no matching code exists.
var ErrVerificationCodeNotFound = errors.New("verification code not found")

// VerificationRepository defines the standard operations for email
// verification code persistence.
type VerificationRepository interface {
	// Create persists a freshly issued code.
	Create(ctx context.Context, code *entity.EmailVerificationCode) error

	// FindLatestByEmail retrieves the most recently issued code for an
	// address, consumed or not. Used to enforce the resend cooldown.
	FindLatestByEmail(ctx context.Context, email string) (*entity.EmailVerificationCode, error)

	// FindUsable retrieves an unconsumed, unexpired code matching the given
	// address and code value.
	FindUsable(ctx context.Context, email, code string, now time.Time) (*entity.EmailVerificationCode, error)

	// MarkConsumed stamps the code as used so it cannot be redeemed again.
	MarkConsumed(ctx context.Context, id uuid.UUID, consumedAt time.Time) error

	// InvalidateForEmail expires every outstanding code for an address,
	// typically right before a new one is issued.
	InvalidateForEmail(ctx context.Context, email string) error
}
