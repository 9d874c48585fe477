package session

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFIssuesToken(t *testing.T) {
	var token string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = Token(r.Context())
	})

	rec := httptest.NewRecorder()
	CSRF(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/register", nil))

	require.NotEmpty(t, token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CSRFCookieName, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
}

func TestCSRFReusesExistingToken(t *testing.T) {
	var token string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = Token(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/register", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "existing-token"})

	rec := httptest.NewRecorder()
	CSRF(next).ServeHTTP(rec, req)

	assert.Equal(t, "existing-token", token)
	assert.Empty(t, rec.Result().Cookies())
}

func postForm(token string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	}

	return req
}

func TestCSRFPost(t *testing.T) {
	tests := []struct {
		name       string
		cookie     string
		field      string
		wantStatus int
	}{
		{"matching token passes", "tok", "tok", http.StatusOK},
		{"missing field rejected", "tok", "", http.StatusForbidden},
		{"mismatched field rejected", "tok", "other", http.StatusForbidden},
		{"no cookie rejected", "", "tok", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			form := url.Values{}
			if tt.field != "" {
				form.Set(CSRFField, tt.field)
			}

			rec := httptest.NewRecorder()
			CSRF(next).ServeHTTP(rec, postForm(tt.cookie, form))

			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	SecurityHeaders(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
