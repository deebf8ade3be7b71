package auth

import (
	"context"
	"log/slog"
	"net/http"

	"student-records/internal/httputil"
)

// TokenHeader carries the access token. The API predates Authorization
// bearer handling on the frontend and keeps the custom header.
const TokenHeader = "x-access-token"

type contextKey string

const claimsKey contextKey = "auth_claims"

// Middleware validates the token header and adds the verified claims to the
// request context. No store lookup happens here.
func Middleware(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(TokenHeader)
			if tokenString == "" {
				logger.WarnContext(r.Context(), "missing auth token", "path", r.URL.Path)
				httputil.RespondWithMsg(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			claims, err := ParseAccessToken(secret, tokenString)
			if err != nil {
				logger.WarnContext(r.Context(), "invalid token", "error", err)
				httputil.RespondWithMsg(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on an exact role match. It must run after
// Middleware.
func RequireRole(role string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok || claims.Role != role {
				logger.WarnContext(r.Context(), "role check failed", "required", role, "path", r.URL.Path)
				httputil.RespondWithMsg(w, http.StatusForbidden, "Access denied: You do not have the required role.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaims extracts the verified claims from context
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
