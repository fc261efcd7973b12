package usecase

import "context"

// PasswordResetUsecase drives the forgotten-password flow.
type PasswordResetUsecase interface {
	// Request issues a single-use reset token and mails a reset link. It
	// reports success whether or not the address has an account, so the
	// endpoint cannot be used to enumerate users.
	Request(ctx context.Context, email string) error

	// Confirm redeems a reset token, validates the new password against the
	// policy and replaces the stored hash, clearing the token. For a
	// Google-only account this sets its first password.
	Confirm(ctx context.Context, token, newPassword string) error
}
