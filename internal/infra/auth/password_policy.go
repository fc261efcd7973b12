package auth

import (
	"fmt"
	"unicode"

	"voyage/config"
	domainerrors "voyage/internal/domain/errors"
	"voyage/internal/domain/service"
)

// bcrypt refuses inputs above 72 bytes, so the ceiling is capped there
// regardless of configuration.
const bcryptInputLimit = 72

// passwordPolicy is a config-driven implementation of the PasswordPolicy
// interface.
type passwordPolicy struct {
	minLength      int
	maxLength      int
	requireLetter  bool
	requireNumber  bool
	requireSpecial bool
}

// NewPasswordPolicy builds the policy from configuration.
func NewPasswordPolicy(cfg *config.Config) service.PasswordPolicy {
	p := &passwordPolicy{
		minLength:     8,
		maxLength:     bcryptInputLimit,
		requireLetter: true,
		requireNumber: true,
	}
	if ps := cfg.PasswordStrength; ps != nil {
		if ps.MinLength > 0 {
			p.minLength = ps.MinLength
		}
		if ps.MaxLength > 0 && ps.MaxLength < bcryptInputLimit {
			p.maxLength = ps.MaxLength
		}
		// Absent keys keep the defaults; only an explicit false relaxes a check.
		if ps.RequireLetter != nil {
			p.requireLetter = *ps.RequireLetter
		}
		if ps.RequireNumber != nil {
			p.requireNumber = *ps.RequireNumber
		}
		if ps.RequireSpecial != nil {
			p.requireSpecial = *ps.RequireSpecial
		}
	}

	return p
}

// Validate returns nil when the password satisfies the policy.
func (p *passwordPolicy) Validate(password string) error {
	if len(password) < p.minLength {
		return domainerrors.ErrPasswordStrength.WithDetails(
			fmt.Sprintf("password must be at least %d characters long", p.minLength))
	}
	if len(password) > p.maxLength {
		return domainerrors.ErrPasswordStrength.WithDetails(
			fmt.Sprintf("password must be at most %d characters long", p.maxLength))
	}

	var hasLetter, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsNumber(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	if p.requireLetter && !hasLetter {
		return domainerrors.ErrPasswordStrength.WithDetails("password must contain at least one letter")
	}
	if p.requireNumber && !hasNumber {
		return domainerrors.ErrPasswordStrength.WithDetails("password must contain at least one number")
	}
	if p.requireSpecial && !hasSpecial {
		return domainerrors.ErrPasswordStrength.WithDetails("password must contain at least one special character")
	}

	return nil
}
