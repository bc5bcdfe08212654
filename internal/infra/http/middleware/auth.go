package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/digiwolf/leads/internal/infra/auth"
)

type ctxKey int

const adminClaimsKey ctxKey = iota

type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// RequireAdmin exige "Authorization: Bearer <jwt>" válido.
func RequireAdmin(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func AdminFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(adminClaimsKey).(*auth.Claims)
	return c, ok
}
