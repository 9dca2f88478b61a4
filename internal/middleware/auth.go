package middleware

import (
	"context"
	"net/http"
	"strings"

	"shop-admin/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const principalKey contextKey = "principal"

// TokenVerifier verifies a bearer credential and returns the principal it
// encodes.
type TokenVerifier interface {
	ValidateToken(tokenString string) (*service.Principal, error)
}

// AuthMiddleware is the guard applied to protected route groups. Routes not
// wrapped by it are public and never consult it. Two rejection kinds are
// distinguished: a missing or malformed header is forbidden (403), while a
// presented-but-invalid credential is unauthorized (401).
func AuthMiddleware(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusForbidden, "authorization header is empty or does not contain a bearer token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Malformed authorization header")
				RespondWithError(w, http.StatusForbidden, "authorization header is empty or does not contain a bearer token")
				return
			}

			principal, err := verifier.ValidateToken(parts[1])
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "token is invalid, please login again")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)

			logger.Debug("Request authenticated",
				zap.String("user_id", principal.ID),
				zap.String("username", principal.Username),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal extracts the authenticated principal from the request context.
func GetPrincipal(ctx context.Context) (*service.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*service.Principal)
	return principal, ok
}
