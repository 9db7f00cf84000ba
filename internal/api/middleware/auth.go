package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pixelquest/accounts/internal/api/apierr"
	"github.com/pixelquest/accounts/internal/identity"
)

type contextKey string

const claimContextKey contextKey = "claim"

// Auth creates authentication middleware that verifies the bearer token and
// attaches the decoded claim to the request context
func Auth(verifier identity.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewInvalidTokenError())
				return
			}

			claim, err := verifier.Verify(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimContextKey, claim)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetClaim returns the verified identity claim from the request context
func GetClaim(ctx context.Context) *identity.Claim {
	claim, _ := ctx.Value(claimContextKey).(*identity.Claim)
	return claim
}

// MustGetClaim returns the verified claim or panics
func MustGetClaim(ctx context.Context) *identity.Claim {
	claim := GetClaim(ctx)
	if claim == nil {
		panic("no claim in context - auth middleware not applied?")
	}
	return claim
}
