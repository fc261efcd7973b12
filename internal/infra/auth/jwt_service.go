// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"voyage/config"
	"voyage/internal/domain/service"
)

// sessionTTL is how long an issued session token stays valid. There is no
// refresh flow; users re-authenticate when the token lapses.
const sessionTTL = time.Hour * 24 * 7

// jwtService is a concrete implementation of the SessionTokenService
// interface using the JWT standard with HMAC-SHA256 signatures.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
// It refuses to start without a signing secret so a misconfigured
// deployment fails at boot instead of issuing forgeable tokens.
func NewJWTService(cfg *config.Config) (service.SessionTokenService, error) {
	if cfg.Session == nil || cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.Session.Secret),
		ttl:    sessionTTL,
	}, nil
}

// Issue creates a new signed session token for a given identity.
func (s *jwtService) Issue(identity service.Identity) (string, error) {
	now := time.Now()
	claims := service.SessionClaims{
		UserID: identity.UserID,
		Email:  identity.Email,
		Name:   identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)

	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry of a raw token string and returns
// its claims.
func (s *jwtService) Verify(raw string) (*service.SessionClaims, error) {
	claims := &service.SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	// The subject carries the user ID; a token without one is useless.
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, jwt.ErrTokenInvalidSubject
	}
	claims.UserID = id

	return claims, nil
}
