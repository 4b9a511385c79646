package auth

import (
	"fmt"
	"time"

	"auction-marketplace-service/internal/domain/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager issues and verifies HS256-signed identity tokens
type TokenManager struct {
	secret []byte
}

// NewTokenManager creates a token manager. An empty secret is tolerated at
// construction and surfaces as ErrSecretMissing on first use, matching the
// misconfigured-server error class.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue creates a signed token carrying the user's identity
func (m *TokenManager) Issue(userID uuid.UUID) (string, error) {
	if len(m.secret) == 0 {
		return "", shared.ErrSecretMissing
	}

	claims := jwt.MapClaims{
		"id":  userID.String(),
		"iat": time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// Verify checks a token's signature and returns the identity it carries
func (m *TokenManager) Verify(token string) (uuid.UUID, error) {
	if len(m.secret) == 0 {
		return uuid.Nil, shared.ErrSecretMissing
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, shared.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, shared.ErrInvalidToken
	}

	raw, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, shared.ErrInvalidToken
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, shared.ErrInvalidToken
	}

	return userID, nil
}
