package model

import (
	"time"

	"github.com/google/uuid"
)

// EmailVerificationCodeModel mirrors the 'email_verification_codes' table.
// The email index serves both the cooldown lookup and bulk invalidation.
type EmailVerificationCodeModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email      string    `gorm:"type:varchar(255);not null;index"`
	Code       string    `gorm:"type:varchar(6);not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (EmailVerificationCodeModel) TableName() string {
	return "email_verification_codes"
}
