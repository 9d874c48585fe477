package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "session"

// TTL is the absolute session lifetime.
const TTL = 14 * 24 * time.Hour

// Session is the client-held state: who the user is and, once they have
// signed, which signature row is theirs. It is carried as signed claims in
// the session cookie and never persisted server-side. Values are immutable;
// handlers that change state issue a fresh cookie.
type Session struct {
	UserID    uint
	FirstName string
	LastName  string
	SigID     *uint
}

type sessionClaims struct {
	UserID    uint   `json:"uid"`
	FirstName string `json:"fn"`
	LastName  string `json:"ln"`
	SigID     *uint  `json:"sig,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session cookies with the process secret.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue signs s and sets it as the session cookie.
func (m *Manager) Issue(w http.ResponseWriter, s Session) error {
	now := time.Now()
	claims := sessionClaims{
		UserID:    s.UserID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		SigID:     s.SigID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Read returns the session carried by r, or nil when the cookie is absent,
// expired, or fails signature verification.
func (m *Manager) Read(r *http.Request) *Session {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	return &Session{
		UserID:    claims.UserID,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		SigID:     claims.SigID,
	}
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Path:   "/",
		MaxAge: -1,
	})
}
