package session

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"
)

const CSRFCookieName = "csrf_token"

// CSRFField is the form field every state-changing POST must carry.
const CSRFField = "_csrf"

const csrfKey contextKey = 1

// CSRF issues a per-client token cookie and rejects mutating requests whose
// form token does not match it. The token is exposed through the context so
// views can embed it in every form.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(CSRFCookieName); err == nil {
			token = c.Value
		}

		if token == "" {
			token = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     CSRFCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			sent := r.FormValue(CSRFField)
			if subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
				w.WriteHeader(http.StatusForbidden)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfKey, token)))
	})
}

// Token returns the request's CSRF token for embedding in rendered forms.
func Token(ctx context.Context) string {
	t, _ := ctx.Value(csrfKey).(string)
	return t
}
