package session

import (
	"context"
	"net/http"
)

type contextKey int

const sessionKey contextKey = 0

// LoadSession reads the session cookie once per request and stashes the
// result in the request context for the guards and handlers downstream.
func (m *Manager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := m.Read(r); s != nil {
			r = r.WithContext(NewContext(r.Context(), s))
		}

		next.ServeHTTP(w, r)
	})
}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the request's session, nil when anonymous.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}

// The guards below are the redirect policy: each is a pure predicate over
// the session in the request context. The first failing guard in a chain
// redirects and short-circuits.

// RequireLoggedOut sends logged-in users to the petition page.
func RequireLoggedOut(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) != nil {
			http.Redirect(w, r, "/petition", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireLoggedIn sends anonymous users to registration.
func RequireLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) == nil {
			http.Redirect(w, r, "/register", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSigned sends users without a signature back to the petition form.
func RequireSigned(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := FromContext(r.Context())
		if s == nil || s.SigID == nil {
			http.Redirect(w, r, "/petition", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NotSigned sends users who already signed to the thank-you page.
func NotSigned(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := FromContext(r.Context()); s != nil && s.SigID != nil {
			http.Redirect(w, r, "/thankyou", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}
