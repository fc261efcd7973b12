package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomHex(t *testing.T) {
	first, err := RandomHex(32)
	require.NoError(t, err)
	assert.Len(t, first, 64)
	assert.Regexp(t, "^[0-9a-f]+$", first)

	second, err := RandomHex(32)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashToken(t *testing.T) {
	hash := HashToken("some-raw-token")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashToken("some-raw-token"))
	assert.NotEqual(t, hash, HashToken("other-token"))
}

func TestRandomDigits(t *testing.T) {
	code, err := RandomDigits(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Regexp(t, "^[0-9]{6}$", code)
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "t***@example.com", MaskEmail("traveler@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("a@example.com"))
	assert.Equal(t, "***", MaskEmail("not-an-email"))
}
