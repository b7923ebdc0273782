// Package auth issues and verifies the signed bearer tokens that prove
// a user's identity to the server.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bloglist/internal/common"
)

// Claims includes the registered JWT claims plus the user id the token
// was issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenAuthenticator mints and verifies HS256 tokens with a shared secret.
type TokenAuthenticator struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenAuthenticator constructs a TokenAuthenticator from the signing
// secret and the validity duration of issued tokens.
func NewTokenAuthenticator(secret []byte, ttl time.Duration) *TokenAuthenticator {
	return &TokenAuthenticator{secret: secret, ttl: ttl}
}

// Generate returns a signed token whose subject is userID, expiring
// after the configured TTL.
func (a *TokenAuthenticator) Generate(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(a.secret)
}

// Verify parses tokenString and returns the user id it was issued for.
// Malformed, mis-signed, and expired tokens all yield
// common.ErrInvalidToken.
func (a *TokenAuthenticator) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", common.ErrInvalidToken
	}
	return claims.UserID, nil
}
