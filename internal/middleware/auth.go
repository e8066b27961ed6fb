package middleware

import (
	"context"
	"net/http"
	"strings"

	"list-market/internal/session"

	"go.uber.org/zap"
)

type contextKey string

const (
	UserEmailKey contextKey = "user_email"
	UserNameKey  contextKey = "user_name"
)

// AuthMiddleware validates session tokens and puts the claims on the
// request context. Cart mutation routes sit behind it; an absent or bad
// token surfaces as the Unauthorized notice the storefront shows.
func AuthMiddleware(sessions session.Service, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "войдите в аккаунт для добавления товаров в корзину")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := sessions.ValidateToken(parts[1])
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserEmailKey, claims.Email)
			ctx = context.WithValue(ctx, UserNameKey, claims.Name)

			logger.Debug("Session validated", zap.String("email", claims.Email))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserEmail extracts the session email from the request context.
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetUserName extracts the session display name from the request context.
func GetUserName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UserNameKey).(string)
	return name, ok
}
