package middleware

import (
	"context"
	"net/http"

	"github.com/heartmarshall/twin-backend/internal/domain"
	"github.com/heartmarshall/twin-backend/pkg/ctxutil"
)

// RequireAdmin returns domain.ErrUnauthorized if the context carries no admin identity.
// Use in handlers that decide per request; wrap routes with AdminOnly otherwise.
func RequireAdmin(ctx context.Context) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrUnauthorized
	}
	return nil
}

// AdminOnly rejects anonymous requests with 401. It must run after Auth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := RequireAdmin(r.Context()); err != nil {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
