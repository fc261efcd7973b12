package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailVerificationCode is a short-lived numeric code mailed to an address
// so a user can prove ownership of it. Issuing a new code invalidates any
// earlier unconsumed codes for the same address.
type EmailVerificationCode struct {
	ID         uuid.UUID  // The unique ID for this code record.
	Email      string     // The address the code was mailed to, lowercase.
	Code       string     // The 6-digit numeric code, stored as text to keep leading zeros.
	ExpiresAt  time.Time  // The exact time when the code stops being accepted.
	ConsumedAt *time.Time // When the code was successfully used, nil while still pending.
	CreatedAt  time.Time  // Timestamp of when the code was issued.
}

// Usable reports whether the code can still be redeemed at the given time.
func (c *EmailVerificationCode) Usable(now time.Time) bool {
	return c.ConsumedAt == nil && now.Before(c.ExpiresAt)
}
