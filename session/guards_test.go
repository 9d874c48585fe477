package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestGuards(t *testing.T) {
	anonymous := (*Session)(nil)
	registered := &Session{UserID: 1, FirstName: "A", LastName: "B"}
	signed := &Session{UserID: 1, FirstName: "A", LastName: "B", SigID: uintPtr(9)}

	tests := []struct {
		name         string
		guard        func(http.Handler) http.Handler
		session      *Session
		wantRedirect string
	}{
		{"logged out, anonymous passes", RequireLoggedOut, anonymous, ""},
		{"logged out, registered redirected", RequireLoggedOut, registered, "/petition"},
		{"logged out, signed redirected", RequireLoggedOut, signed, "/petition"},

		{"logged in, anonymous redirected", RequireLoggedIn, anonymous, "/register"},
		{"logged in, registered passes", RequireLoggedIn, registered, ""},
		{"logged in, signed passes", RequireLoggedIn, signed, ""},

		{"signed, anonymous redirected", RequireSigned, anonymous, "/petition"},
		{"signed, unsigned redirected", RequireSigned, registered, "/petition"},
		{"signed, signed passes", RequireSigned, signed, ""},

		{"not signed, anonymous passes", NotSigned, anonymous, ""},
		{"not signed, unsigned passes", NotSigned, registered, ""},
		{"not signed, signed redirected", NotSigned, signed, "/thankyou"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodGet, "/anywhere", nil)
			if tt.session != nil {
				req = req.WithContext(NewContext(req.Context(), tt.session))
			}

			rec := httptest.NewRecorder()
			tt.guard(next).ServeHTTP(rec, req)

			if tt.wantRedirect == "" {
				assert.True(t, called, "request should reach the handler")
				return
			}

			assert.False(t, called, "request should not reach the handler")
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.wantRedirect, rec.Header().Get("Location"))
		})
	}
}

func TestLoadSession(t *testing.T) {
	m := NewManager("test-secret")

	var got *Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	})

	req := issueToRequest(t, m, Session{UserID: 5, FirstName: "A", LastName: "B"})
	m.LoadSession(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.NotNil(t, got)
	assert.Equal(t, uint(5), got.UserID)

	got = nil
	m.LoadSession(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, got)
}
