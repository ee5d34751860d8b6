package middleware

import (
	"context"
	"net/http"

	"workday-web/internal/session"
)

type sessionResolver interface {
	FromRequest(r *http.Request) (*session.Session, error)
}

type contextKey string

const sessionContextKey contextKey = "session"

// AuthMiddleware is the session gate: pages behind it receive the
// resolved session through the request context instead of reading
// ambient global state.
type AuthMiddleware struct {
	store sessionResolver
}

func NewAuthMiddleware(store sessionResolver) *AuthMiddleware {
	return &AuthMiddleware{store: store}
}

func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.store.FromRequest(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*session.Session)
	return sess, ok
}
