package http

import (
	"context"
	"net/http"
	"strings"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/security"
)

type contextKey string

const actorKey contextKey = "actor"

// AuthMiddleware resolves the calling actor from the bearer token and stores
// it on the request context. Role enforcement happens in the services.
func AuthMiddleware(tm security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := tm.ValidateToken(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}

			actor := domain.Actor{ID: claims.UserID, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
		})
	}
}

// ActorFromContext returns the authenticated actor stored by AuthMiddleware.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
