package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/yajna-funds/server/internal/infra/identity"
)

type identityContextKey struct{}

// IdentityKey carries the verified identity claims through the request
// context.
var IdentityKey = identityContextKey{}

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*identity.Claims, error)
}

// Identity requires a valid identity-provider bearer token when a verifier
// is configured. With a nil verifier the middleware is a no-op, matching
// deployments that run the API open behind their own gateway.
func Identity(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if verifier == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization", http.StatusUnauthorized)
				return
			}
			claims, err := verifier.Verify(r.Context(), parts[1])
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), IdentityKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the verified claims, or nil when the request
// was not authenticated.
func IdentityFromContext(ctx context.Context) *identity.Claims {
	if v, ok := ctx.Value(IdentityKey).(*identity.Claims); ok {
		return v
	}
	return nil
}
