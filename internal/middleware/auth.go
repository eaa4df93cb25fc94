package middleware

import (
	"context"
	"net/http"

	"authorize-gateway/internal/auth"
	"authorize-gateway/internal/logger"
	"authorize-gateway/internal/utils"

	"go.uber.org/zap"
)

// Context key for the authenticated caller
type contextKey string

const SubjectKey contextKey = "subject"

// SubjectFromContext returns the token subject set by AuthMiddleware.
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(SubjectKey).(string)
	return sub, ok
}

// AuthMiddleware requires a valid bearer token signed with secret. With an
// empty secret every request passes through (local development).
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			logger.L().Warn("JWT secret is empty, payment routes are unauthenticated")
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.ParseToken(secret, auth.ExtractAccessToken(r))
			if err != nil {
				logger.FromCtx(r.Context()).Warn("rejected request", zap.Error(err))
				utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
