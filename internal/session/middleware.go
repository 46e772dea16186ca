package session

import (
	"context"
	"net/http"
)

const CookieName = "session_id"

type ctxKey struct{}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// Middleware находит сессию по cookie или заводит новую, id кладёт в контекст.
func (s *Store) Middleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(CookieName); err == nil {
				if _, ok := s.Get(c.Value); ok {
					id = c.Value
				}
			}
			if id == "" {
				id = s.Create()
			}
			s.setCookie(w, id, secure)

			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}

func (s *Store) setCookie(w http.ResponseWriter, id string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
