// Package middleware provides the HTTP middleware chain: request logging,
// token validation and prometheus metrics.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/famshare/famshare/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// MemberIDKey is the context key for storing the authenticated member ID.
	MemberIDKey contextKey = "member_id"
	// FamilyIDKey is the context key for storing the authenticated member's family ID.
	FamilyIDKey contextKey = "family_id"
	// PlatformIDKey is the context key for storing the authenticated platform ID.
	PlatformIDKey contextKey = "platform_id"
)

// GetMemberID extracts the member ID from the context.
// Returns empty string if not found.
func GetMemberID(ctx context.Context) string {
	memberID, _ := ctx.Value(MemberIDKey).(string)
	return memberID
}

// GetFamilyID extracts the family ID from the context.
// Returns empty string if not found.
func GetFamilyID(ctx context.Context) string {
	familyID, _ := ctx.Value(FamilyIDKey).(string)
	return familyID
}

// GetPlatformID extracts the platform ID from the context.
// Returns empty string if not found.
func GetPlatformID(ctx context.Context) string {
	platformID, _ := ctx.Value(PlatformIDKey).(string)
	return platformID
}

// RequireAuth returns a middleware that validates bearer tokens. It
// extracts the token from the Authorization header, validates it, and adds
// the member, family and platform IDs to the request context.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, auth.ErrMissingToken)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), MemberIDKey, claims.MemberID)
			ctx = context.WithValue(ctx, FamilyIDKey, claims.FamilyID)
			ctx = context.WithValue(ctx, PlatformIDKey, claims.PlatformID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
