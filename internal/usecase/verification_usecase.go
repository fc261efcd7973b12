package usecase

import "context"

// VerificationUsecase drives the email ownership confirmation flow.
type VerificationUsecase interface {
	// SendCode issues a fresh 6-digit code for the address, invalidating
	// earlier ones, and mails it. A second request within the cooldown
	// window fails with a cooldown error.
	SendCode(ctx context.Context, email string) error

	// VerifyCode redeems a pending code and marks the owning account's
	// email as verified. Codes are single use.
	VerifyCode(ctx context.Context, email, code string) error
}
