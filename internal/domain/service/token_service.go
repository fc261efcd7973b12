package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims defines the custom claims carried by a session token.
// UserID mirrors the registered "sub" claim and is filled in during
// verification rather than serialized on its own.
type SessionClaims struct {
	UserID uuid.UUID `json:"-"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	jwt.RegisteredClaims
}

// Identity is the minimal user snapshot baked into an issued token.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// SessionTokenService defines the interface for issuing and verifying the
// signed session tokens stored in the browser cookie. This abstracts the
// details of token creation from the use cases.
type SessionTokenService interface {
	// Issue creates a new signed session token for a given identity.
	Issue(identity Identity) (string, error)

	// Verify checks the signature and expiry of a raw token string and
	// returns its claims.
	Verify(raw string) (*SessionClaims, error)
}
