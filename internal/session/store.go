// Package session keeps per-browser page state in process memory. Sessions
// are identified by a signed random cookie and lost on restart.
//
// Issuing a cookie stores nothing. A state is created on the first Update, so
// requests that only read (a crawler walking every page) never allocate or
// evict sessions.
package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CookieName is the session cookie.
const CookieName = "formgrid_session"

// DefaultMaxSessions bounds the number of live sessions; the least recently
// used one is evicted beyond it.
const DefaultMaxSessions = 1024

// Store maps session ids to page state of type T. All access to a state goes
// through View or Update so concurrent requests of one browser serialise.
type Store[T any] struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, *T]
	newState func() *T
	secret   []byte
}

// Option configures a Store.
type Option func(*storeConfig)

type storeConfig struct {
	max    int
	secret []byte
}

// WithMaxSessions overrides DefaultMaxSessions.
func WithMaxSessions(n int) Option {
	return func(c *storeConfig) {
		if n > 0 {
			c.max = n
		}
	}
}

// WithSecret sets the key that signs cookies and derives form tokens. A random
// key is generated otherwise.
func WithSecret(secret []byte) Option {
	return func(c *storeConfig) {
		if len(secret) > 0 {
			c.secret = append([]byte(nil), secret...)
		}
	}
}

// New creates a store whose sessions start from newState.
func New[T any](newState func() *T, opts ...Option) *Store[T] {
	cfg := storeConfig{max: DefaultMaxSessions}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.secret) == 0 {
		cfg.secret = make([]byte, 32)
		// crypto/rand.Read never returns an error.
		_, _ = rand.Read(cfg.secret)
	}
	// lru.New only fails for a non-positive size, which the options rule out.
	cache, _ := lru.New[string, *T](cfg.max)
	return &Store[T]{
		sessions: cache,
		newState: newState,
		secret:   cfg.secret,
	}
}

// ID returns the session id of the request, issuing a new cookie when the
// request carries none or one this store did not sign.
func (s *Store[T]) ID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if id, ok := s.verify(cookie.Value); ok {
			return id
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id + "." + s.sign("id", id),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Token returns the form token of session id.
func (s *Store[T]) Token(id string) string {
	return s.sign("csrf", id)
}

// ValidToken reports whether token belongs to session id.
func (s *Store[T]) ValidToken(id, token string) bool {
	return hmac.Equal([]byte(token), []byte(s.Token(id)))
}

// View runs fn with exclusive access to the state of session id. An unknown id
// sees a fresh state that is discarded afterwards.
func (s *Store[T]) View(id string, fn func(state *T)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions.Get(id)
	if !ok {
		state = s.newState()
	}
	fn(state)
}

// Update runs fn with exclusive access to the state of session id, creating
// the state when id is unknown.
func (s *Store[T]) Update(id string, fn func(state *T)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions.Get(id)
	if !ok {
		state = s.newState()
		s.sessions.Add(id, state)
	}
	fn(state)
}

// Len reports the number of live sessions.
func (s *Store[T]) Len() int {
	return s.sessions.Len()
}

func (s *Store[T]) sign(purpose, id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(purpose))
	mac.Write([]byte{0})
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *Store[T]) verify(value string) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign("id", id))) {
		return "", false
	}
	return id, true
}
