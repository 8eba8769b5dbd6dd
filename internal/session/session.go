// Package session holds the client-side auth context: the current user (or
// none), a loading flag while the initial probe is outstanding, and a
// subscription stream of session changes.
package session

import (
	"context"
	"log"
	"sync"
)

// User is the authenticated identity the rest of the client consumes.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Backend is the auth service the session talks to.
type Backend interface {
	CurrentSession(ctx context.Context) (*User, error)
	SignUp(ctx context.Context, email, password string) (*User, error)
	SignIn(ctx context.Context, email, password string) (*User, error)
	SignOut(ctx context.Context) error
}

// Session is the process-wide auth context. Constructed once at startup
// with a defined init (Start) and teardown (Close) lifecycle, and injected
// into consumers rather than reached as an ambient global.
//
// IsLoading reports true until the initial probe resolves; consumers must
// treat that as "unknown" and defer user-dependent work.
type Session struct {
	mu      sync.RWMutex
	backend Backend
	user    *User
	loading bool
	subs    map[int]chan *User
	nextSub int
	closed  bool
}

// New creates a Session over the given backend. It panics when backend is
// nil: that is a wiring mistake, not a runtime condition.
func New(backend Backend) *Session {
	if backend == nil {
		panic("session: backend is required")
	}
	return &Session{
		backend: backend,
		loading: true,
		subs:    make(map[int]chan *User),
	}
}

// Start probes the backend once for an existing session. The loading flag
// clears regardless of outcome; a probe failure just means signed out.
func (s *Session) Start(ctx context.Context) {
	user, err := s.backend.CurrentSession(ctx)
	if err != nil {
		log.Printf("[session] probe failed: %v", err)
		user = nil
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()

	s.publish(user)
}

// Close releases every subscription. Further updates are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

// CurrentUser returns the signed-in user, or nil.
func (s *Session) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// CurrentUserID returns the signed-in user id and whether one exists.
func (s *Session) CurrentUserID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return "", false
	}
	return s.user.ID, true
}

// IsLoading reports whether the initial session probe is still outstanding.
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe returns a channel of session changes (the new user, nil on sign
// out) and a cancel function releasing the subscription.
func (s *Session) Subscribe() (<-chan *User, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan *User, 4)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			close(sub)
			delete(s.subs, id)
		}
	}
	return ch, cancel
}

// SignUp registers a new account and signs the session in on success.
func (s *Session) SignUp(ctx context.Context, email, password string) (*User, error) {
	user, err := s.backend.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

// SignIn authenticates and updates the session on success.
func (s *Session) SignIn(ctx context.Context, email, password string) (*User, error) {
	user, err := s.backend.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

// SignOut clears the session. The local user is cleared even when the
// backend call fails.
func (s *Session) SignOut(ctx context.Context) error {
	err := s.backend.SignOut(ctx)
	s.setUser(nil)
	return err
}

func (s *Session) setUser(user *User) {
	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()
	s.publish(user)
}

func (s *Session) publish(user *User) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	for _, ch := range s.subs {
		select {
		case ch <- user:
		default:
			// Slow subscriber: drop rather than block the auth path
		}
	}
}
