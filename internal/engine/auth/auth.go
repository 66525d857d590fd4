// Package auth issues and verifies the bearer tokens that identify an owner.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "jobtrail"

var ErrNoSecret = errors.New("jwt secret not configured")

// Claims carry the owner id as the JWT subject.
type Claims struct {
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for ownerID. ttl <= 0 yields a token
// without expiry.
func IssueToken(secret, ownerID string, ttl time.Duration, now time.Time) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrNoSecret
	}
	if strings.TrimSpace(ownerID) == "" {
		return "", errors.New("owner id required")
	}
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:  ownerID,
		Issuer:   issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies token and returns the owner id it was issued for.
func ParseToken(secret, token string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrNoSecret
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("subject claim required")
	}
	return claims.Subject, nil
}
