// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type ctxKey string

const userKey ctxKey = "user"

// writeUnauthorized reports a 401 with the API's JSON error body, the
// same shape the handlers use.
func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// TokenVerifier checks a raw bearer token and returns the user id it
// was issued for.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// BearerAuth is a middleware that enforces bearer-token authentication.
//
// It expects an "Authorization: Bearer <token>" header on every request
// it guards. A missing header yields 401 with "token missing"; a token
// that fails verification yields 401 with "token invalid".
//
// On success it stores the token's user id in the request context, so
// it can be used downstream as the authenticated subject.
func BearerAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeUnauthorized(w, "token missing")
				return
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w, "token invalid")
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				writeUnauthorized(w, "token invalid")
				return
			}
			ctx := context.WithValue(r.Context(), userKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user id from the
// request context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
