package utils

import (
	"errors"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs an HS256 token whose subject is the principal.
// The ledger only verifies tokens; this is used by tests and local tooling.
func GenerateJWT(principal domain.Principal, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	if principal.IsZero() {
		return "", errors.New("principal is required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   string(principal),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
