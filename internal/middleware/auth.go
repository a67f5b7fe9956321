package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/bryanwahyu/udyamsakhi/internal/auth"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
)

type contextKey string

const userKey contextKey = "user"

// TokenVerifier is satisfied by *auth.Tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// JWTAuth rejects requests without a valid bearer token before any handler
// runs, and stores the claims in the request context.
func JWTAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "missing Authorization header")
				return
			}
			scheme, token, ok := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				writeError(w, http.StatusUnauthorized, "invalid Authorization header format")
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				log.Debug("token rejected", zap.Error(err))
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := WithUser(r.Context(), claims)
			ctx = logger.WithContext(ctx, log.With(zap.String("user_id", claims.UserID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithUser(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, userKey, c)
}

// UserID returns the authenticated user id, or "" outside JWTAuth.
func UserID(ctx context.Context) string {
	if c, ok := ctx.Value(userKey).(*auth.Claims); ok {
		return c.UserID
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
