package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// RandomHex returns n random bytes encoded as a lowercase hex string, so
// the result is 2n characters long. Used for OAuth state values and
// password reset tokens.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return hex.EncodeToString(buf), nil
}

// HashToken returns the SHA-256 hex digest of a raw token. Single-use
// tokens are stored hashed so a database leak does not expose them.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}

// RandomDigits returns a string of n uniformly random decimal digits,
// preserving leading zeros. Used for email verification codes.
func RandomDigits(n int) (string, error) {
	const digits = "0123456789"

	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", errors.Wrap(err, "failed to draw random digit")
		}
		buf[i] = digits[idx.Int64()]
	}

	return string(buf), nil
}

// MaskEmail obscures the local part of an address for log output, keeping
// just the first character (e.g. "t***@example.com").
func MaskEmail(email string) string {
	for i, r := range email {
		if r == '@' {
			if i <= 1 {
				return "***" + email[i:]
			}

			return fmt.Sprintf("%c***%s", email[0], email[i:])
		}
	}

	return "***"
}
