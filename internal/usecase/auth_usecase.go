// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"voyage/internal/domain/entity"
	"voyage/internal/domain/service"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// SessionOutput returns the signed session token together with the user it
// represents. The delivery layer turns the token into a cookie.
type SessionOutput struct {
	Token string
	User  *entity.User
}

// AuthUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// SignUp creates a user with an email/password credential and opens a session.
	SignUp(ctx context.Context, input SignUpInput) (*SessionOutput, error)

	// Login verifies an email/password credential and opens a session. Any
	// credential failure surfaces as the same invalid-credentials error.
	Login(ctx context.Context, input LoginInput) (*SessionOutput, error)

	// LoginWithGoogle resolves a verified Google profile to a local account,
	// linking or creating one as needed, and opens a session.
	LoginWithGoogle(ctx context.Context, profile *service.OAuthProfile) (*SessionOutput, error)

	// CurrentUser loads the account behind verified session claims. It fails
	// closed when the account no longer exists.
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
