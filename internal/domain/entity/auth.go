// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Authentication represents a single method of logging in (a credential).
// For example, a user's email/password is one record, while a linked Google
// account is another.
type Authentication struct {
	ID             uuid.UUID  // The unique ID for this specific authentication record itself.
	UserID         uuid.UUID  // Links this authentication method to the User it belongs to.
	Provider       string     // The authentication provider, e.g., "email", "google".
	ProviderUserID string     // The user's unique ID from the external provider (e.g., Google's 'sub' claim).
	PasswordHash   string     // Stores the bcrypt-hashed password, only used when the Provider is "email".
	ResetTokenHash string     // SHA-256 hash of an outstanding password reset token, empty when none.
	ResetExpiresAt *time.Time // When the outstanding reset token stops being accepted, nil when none.
	CreatedAt      time.Time  // Timestamp of when this authentication method was linked to the user account.
}

// HasPassword reports whether this record can be used for password login.
// A Google-only account has an "email"-less credential set and must go
// through OAuth or a password reset first.
func (a *Authentication) HasPassword() bool {
	return a.Provider == ProviderEmail && a.PasswordHash != ""
}
