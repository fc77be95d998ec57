package middleware

import (
	"context"
	"net/http"

	"github.com/deskhive/deskhive/internal/api"
	"github.com/deskhive/deskhive/internal/domain"
)

type contextKey string

const ActorKey contextKey = "actor"

// ActorResolver turns a request identity into an actor with capabilities.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID string) (domain.Actor, *domain.User, error)
}

// ActorAuth authenticates requests by the X-User-ID header and stores the
// resolved actor in the request context. Unknown users get 401, disabled
// accounts 403.
func ActorAuth(resolver ActorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				api.Error(w, http.StatusUnauthorized, "missing X-User-ID header")
				return
			}

			actor, _, err := resolver.ResolveActor(r.Context(), userID)
			if err != nil {
				if err == domain.ErrAccountDisabled {
					api.Error(w, http.StatusForbidden, "account is disabled")
					return
				}
				api.Error(w, http.StatusUnauthorized, "unknown user")
				return
			}

			ctx := context.WithValue(r.Context(), ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetActor returns the authenticated actor from context. The second return
// is false when the request did not pass ActorAuth.
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(domain.Actor)
	return actor, ok
}
