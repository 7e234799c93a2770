// Package session holds the client-side identity state. It mirrors the
// external identity provider's session: the provider owns authentication
// entirely, the store just reflects the current session and surfaces
// provider failures as state instead of panics.
package session

import (
	"context"
	"sync"
)

// Session is the identity the external provider vouches for.
type Session struct {
	ExternalRef string
	Email       string
	Name        string
	Picture     string
}

// Provider is the external identity provider boundary.
//
// Changes delivers the provider's session-change notifications: a value on
// sign-in, nil on sign-out or expiry. The store consumes it for the whole of
// its lifetime, which also covers sessions that change out of band (token
// expiry, sign-out from another tab).
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	Changes() <-chan *Session
}

// Snapshot is the observable state of the store at one instant.
type Snapshot struct {
	CurrentUser *Session
	IsLoading   bool
	LastError   error
}

// Store is an explicit state holder, created at startup and injected into
// whatever renders it. It is not an ambient singleton; tests create and
// close their own.
type Store struct {
	provider Provider

	mu        sync.Mutex
	current   *Session
	isLoading bool
	lastError error
	subs      []func(Snapshot)

	done     chan struct{}
	stopOnce sync.Once
}

// NewStore builds the store and subscribes once to the provider's
// session-change feed.
func NewStore(provider Provider) *Store {
	s := &Store{provider: provider, done: make(chan struct{})}
	go s.watch()
	return s
}

// Close tears down the provider subscription. Only tests call this.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *Store) watch() {
	changes := s.provider.Changes()
	for {
		select {
		case <-s.done:
			return
		case session, ok := <-changes:
			if !ok {
				return
			}
			s.update(func() {
				s.current = session
				s.isLoading = false
			})
		}
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	var user *Session
	if s.current != nil {
		u := *s.current
		user = &u
	}
	return Snapshot{CurrentUser: user, IsLoading: s.isLoading, LastError: s.lastError}
}

// Subscribe registers fn to run after every state change.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) update(mutate func()) {
	s.mu.Lock()
	mutate()
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// SignIn authenticates through the provider. Failure lands in LastError and
// leaves any previous session untouched.
func (s *Store) SignIn(ctx context.Context, email, password string) {
	s.update(func() {
		s.isLoading = true
		s.lastError = nil
	})
	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.update(func() {
			s.isLoading = false
			s.lastError = err
		})
		return
	}
	s.update(func() {
		s.current = session
		s.isLoading = false
		s.lastError = nil
	})
}

// SignUp registers a new account through the provider.
func (s *Store) SignUp(ctx context.Context, email, password string) {
	s.update(func() {
		s.isLoading = true
		s.lastError = nil
	})
	session, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		s.update(func() {
			s.isLoading = false
			s.lastError = err
		})
		return
	}
	s.update(func() {
		s.current = session
		s.isLoading = false
		s.lastError = nil
	})
}

// SignOut clears the session. The wallet connection is a separate store and
// is deliberately not touched.
func (s *Store) SignOut(ctx context.Context) {
	s.update(func() {
		s.isLoading = true
		s.lastError = nil
	})
	if err := s.provider.SignOut(ctx); err != nil {
		s.update(func() {
			s.isLoading = false
			s.lastError = err
		})
		return
	}
	s.update(func() {
		s.current = nil
		s.isLoading = false
		s.lastError = nil
	})
}
