package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/config"
	"voyage/internal/domain/service"
)

func newTestService(t *testing.T, secret string) service.SessionTokenService {
	t.Helper()

	svc, err := NewJWTService(&config.Config{
		Session: &config.SessionConfig{Secret: secret},
	})
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_MissingSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{Session: &config.SessionConfig{}})
	assert.Error(t, err)

	_, err = NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTService_IssueVerifyRoundtrip(t *testing.T) {
	svc := newTestService(t, "test-secret")

	identity := service.Identity{
		UserID: uuid.New(),
		Email:  "traveler@example.com",
		Name:   "Traveler",
	}

	token, err := svc.Issue(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, claims.UserID)
	assert.Equal(t, identity.Email, claims.Email)
	assert.Equal(t, identity.Name, claims.Name)
	assert.Equal(t, identity.UserID.String(), claims.Subject)
}

func TestJWTService_TamperedTokenFails(t *testing.T) {
	svc := newTestService(t, "test-secret")

	token, err := svc.Issue(service.Identity{UserID: uuid.New(), Email: "a@b.c"})
	require.NoError(t, err)

	// Flip one byte in the signature segment.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = svc.Verify(string(tampered))
	assert.Error(t, err)
}

func TestJWTService_WrongSecretFails(t *testing.T) {
	issuer := newTestService(t, "secret-one")
	verifier := newTestService(t, "secret-two")

	token, err := issuer.Issue(service.Identity{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_ExpiredTokenFails(t *testing.T) {
	secret := []byte("test-secret")

	// Hand-craft a token that expired an hour ago with the same claim shape.
	claims := service.SessionClaims{
		Email: "old@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(secret)
	require.NoError(t, err)

	svc := newTestService(t, "test-secret")
	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsNonHMACAlg(t *testing.T) {
	svc := newTestService(t, "test-secret")

	// alg=none tokens must never pass.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.NewString(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(unsigned)
	assert.Error(t, err)
}

func TestJWTService_TwoTokensIndependentlyValid(t *testing.T) {
	svc := newTestService(t, "test-secret")

	first := service.Identity{UserID: uuid.New(), Email: "first@example.com", Name: "First"}
	second := service.Identity{UserID: uuid.New(), Email: "second@example.com", Name: "Second"}

	tokenA, err := svc.Issue(first)
	require.NoError(t, err)
	tokenB, err := svc.Issue(second)
	require.NoError(t, err)

	claimsA, err := svc.Verify(tokenA)
	require.NoError(t, err)
	claimsB, err := svc.Verify(tokenB)
	require.NoError(t, err)

	assert.Equal(t, first.UserID, claimsA.UserID)
	assert.Equal(t, second.UserID, claimsB.UserID)
	assert.NotEqual(t, claimsA.UserID, claimsB.UserID)
}

func TestJWTService_MissingSubjectFails(t *testing.T) {
	secret := []byte("test-secret")

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "nosub@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)

	svc := newTestService(t, "test-secret")
	_, err = svc.Verify(raw)
	assert.Error(t, err)
}
