// Package session holds the server-side session state for logged-in
// users. A session wraps the upstream bearer token; the browser carries
// only a signed cookie referencing it. Lifecycle is absent → valid →
// expired: a missing or tampered cookie reads as absent, an expired
// entry is evicted on access.
package session

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"workday-web/internal/model"
)

const CookieName = "workday_session"

type Session struct {
	ID        string
	Token     string
	User      model.Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Store struct {
	secret   []byte
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
	onRemove func(sessionID string)
}

func NewStore(secret string, ttl time.Duration) (*Store, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &Store{
		secret:   []byte(secret),
		ttl:      ttl,
		sessions: map[string]*Session{},
		now:      time.Now,
	}, nil
}

// OnRemove registers a callback invoked with the session id whenever a
// session leaves the store, whether by logout or TTL eviction. Components
// holding per-session state hook this to release it.
func (s *Store) OnRemove(fn func(sessionID string)) {
	s.onRemove = fn
}

func (s *Store) notifyRemove(sessionID string) {
	if s.onRemove != nil {
		s.onRemove(sessionID)
	}
}

// Create registers a session for the upstream token and sets the signed
// cookie on the response.
func (s *Store) Create(w http.ResponseWriter, token string, user model.Identity) (*Session, error) {
	now := s.now().UTC()
	created := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	cookieValue, err := s.signCookie(created)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[created.ID] = created
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    cookieValue,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	return created, nil
}

// FromRequest resolves the session referenced by the request cookie.
// Any failure (no cookie, bad signature, unknown or expired session)
// reads as an absent session.
func (s *Store) FromRequest(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, model.ErrSessionNotFound
	}

	sessionID, err := s.verifyCookie(cookie.Value)
	if err != nil {
		return nil, model.ErrSessionNotFound
	}

	s.mu.RLock()
	found, exists := s.sessions[sessionID]
	s.mu.RUnlock()
	if !exists {
		return nil, model.ErrSessionNotFound
	}

	if s.now().UTC().After(found.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		s.notifyRemove(sessionID)
		return nil, model.ErrSessionExpired
	}

	return found, nil
}

// Destroy removes the session and expires the cookie.
func (s *Store) Destroy(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if sessionID, verifyErr := s.verifyCookie(cookie.Value); verifyErr == nil {
			s.mu.Lock()
			delete(s.sessions, sessionID)
			s.mu.Unlock()
			s.notifyRemove(sessionID)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// signCookie embeds only the session id; expiry is enforced by the
// store so an expired session is distinguishable from an absent one.
func (s *Store) signCookie(sess *Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": sess.ID,
		"iat": sess.CreatedAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Store) verifyCookie(value string) (string, error) {
	parsed, err := jwt.Parse(value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return "", model.ErrSessionNotFound
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", model.ErrSessionNotFound
	}

	sessionID, _ := claims["sid"].(string)
	if sessionID == "" {
		return "", model.ErrSessionNotFound
	}

	return sessionID, nil
}
