package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueToRequest(t *testing.T, m *Manager, s Session) *http.Request {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Issue(rec, s))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	return req
}

func TestSessionRoundTrip(t *testing.T) {
	m := NewManager("test-secret")
	sigID := uint(7)

	req := issueToRequest(t, m, Session{
		UserID:    42,
		FirstName: "Ada",
		LastName:  "Lovelace",
		SigID:     &sigID,
	})

	got := m.Read(req)
	require.NotNil(t, got)
	assert.Equal(t, uint(42), got.UserID)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
	require.NotNil(t, got.SigID)
	assert.Equal(t, uint(7), *got.SigID)
}

func TestSessionUnsigned(t *testing.T) {
	m := NewManager("test-secret")

	req := issueToRequest(t, m, Session{UserID: 1, FirstName: "A", LastName: "B"})

	got := m.Read(req)
	require.NotNil(t, got)
	assert.Nil(t, got.SigID)
}

func TestReadMissingCookie(t *testing.T) {
	m := NewManager("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, m.Read(req))
}

func TestReadTamperedToken(t *testing.T) {
	m := NewManager("test-secret")

	rec := httptest.NewRecorder()
	require.NoError(t, m.Issue(rec, Session{UserID: 1, FirstName: "A", LastName: "B"}))

	c := rec.Result().Cookies()[0]
	c.Value = c.Value + "x"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)

	assert.Nil(t, m.Read(req))
}

func TestReadWrongSecret(t *testing.T) {
	req := issueToRequest(t, NewManager("secret-one"), Session{UserID: 1, FirstName: "A", LastName: "B"})

	assert.Nil(t, NewManager("secret-two").Read(req))
}

func TestReadExpiredToken(t *testing.T) {
	secret := "test-secret"

	claims := sessionClaims{
		UserID:    1,
		FirstName: "A",
		LastName:  "B",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-15 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: signed})

	assert.Nil(t, NewManager(secret).Read(req))
}

func TestClear(t *testing.T) {
	m := NewManager("test-secret")

	rec := httptest.NewRecorder()
	m.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
