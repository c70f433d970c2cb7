// Package auth verifies the HS256 bearer tokens that guard the admin routes
// and identifies callers for per-subject rate limiting.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin may read provider configuration and run connection tests.
const RoleAdmin = "admin"

var (
	// ErrMissingToken is returned when the Authorization header has no bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken is returned for malformed, mis-signed or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// MinSecretLength is the shortest accepted signing secret (256 bits).
const MinSecretLength = 32

var weakSecrets = []string{"secret", "password", "test", "admin", "default"}

// ValidateSecret rejects empty, short and well-known signing secrets.
func ValidateSecret(secret []byte) error {
	if len(secret) == 0 {
		return errors.New("JWT_SECRET must be set")
	}
	if len(secret) < MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", MinSecretLength)
	}
	// "passwordpassword...123" is as guessable as "password123".
	s := strings.TrimRight(strings.ToLower(string(secret)), "0123456789")
	for _, weak := range weakSecrets {
		if strings.ReplaceAll(s, weak, "") == "" {
			return errors.New("JWT_SECRET must not be a common weak value")
		}
	}
	return nil
}

// Claims are the token claims the service reads.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for sub with role, valid for ttl.
func IssueToken(secret []byte, sub, role string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(secret)
}

// ParseBearer validates the token in an Authorization header value.
func ParseBearer(header string, secret []byte) (*Claims, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil, ErrMissingToken
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if raw == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}
	return claims, nil
}
