package service

// PasswordPolicy decides whether a plaintext password is acceptable before
// it is hashed. Violations come back as domain errors suitable for the
// HTTP layer.
type PasswordPolicy interface {
	// Validate returns nil when the password satisfies the policy.
	Validate(password string) error
}
