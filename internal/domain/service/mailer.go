package service

import "context"

// Mailer sends transactional email on behalf of the application. When no
// SMTP relay is configured, implementations log the message instead of
// failing so local development works without one.
type Mailer interface {
	// SendVerificationCode delivers a 6-digit email verification code.
	SendVerificationCode(ctx context.Context, to, name, code string) error

	// SendPasswordReset delivers a password reset link built from the
	// given single-use token.
	SendPasswordReset(ctx context.Context, to, name, resetURL string) error
}
