// Package wallet holds the client-side wallet connection state. The
// browser-injected provider owns keys, balances and transaction signing;
// the store mirrors the connection and reports provider failures as state.
package wallet

import (
	"context"
	"errors"
	"sync"
)

// ErrNoProvider is reported when no wallet provider is injected at all.
var ErrNoProvider = errors.New("wallet provider unavailable")

// ErrNotConnected is returned by Contribute before a connection exists.
var ErrNotConnected = errors.New("wallet not connected")

// Provider is the injected wallet boundary. Balances and amounts are wei
// decimal strings; SendTransaction returns the transaction hash, which is
// recorded verbatim and never verified.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	Balance(ctx context.Context, address string) (string, error)
	SendTransaction(ctx context.Context, from, to, amountWei string) (string, error)
}

// Connection is an established wallet link.
type Connection struct {
	Address string
	Balance string
}

// Snapshot is the observable state of the store at one instant.
type Snapshot struct {
	Connection *Connection
	IsLoading  bool
	LastError  error
}

// Store tracks the wallet connection. Like the session store it is an
// explicit state holder injected into its consumers, never a package-level
// singleton.
type Store struct {
	provider Provider

	mu         sync.Mutex
	connection *Connection
	isLoading  bool
	lastError  error
	subs       []func(Snapshot)
}

func NewStore(provider Provider) *Store {
	return &Store{provider: provider}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	var conn *Connection
	if s.connection != nil {
		c := *s.connection
		conn = &c
	}
	return Snapshot{Connection: conn, IsLoading: s.isLoading, LastError: s.lastError}
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

// Connect runs the multi-step connection sequence: request account access,
// take the first account as the signer address, read its balance. A failure
// at any step leaves the store fully disconnected with LastError set,
// never half-connected.
func (s *Store) Connect(ctx context.Context) {
	if s.provider == nil {
		s.update(func() {
			s.connection = nil
			s.lastError = ErrNoProvider
		})
		return
	}
	s.update(func() {
		s.isLoading = true
		s.lastError = nil
	})

	fail := func(err error) {
		s.update(func() {
			s.connection = nil
			s.isLoading = false
			s.lastError = err
		})
	}

	accounts, err := s.provider.RequestAccounts(ctx)
	if err != nil {
		fail(err)
		return
	}
	if len(accounts) == 0 {
		fail(errors.New("wallet returned no accounts"))
		return
	}
	address := accounts[0]

	balance, err := s.provider.Balance(ctx, address)
	if err != nil {
		fail(err)
		return
	}

	s.update(func() {
		s.connection = &Connection{Address: address, Balance: balance}
		s.isLoading = false
		s.lastError = nil
	})
}

// Disconnect drops the connection. The identity session is a separate store
// and is deliberately not touched.
func (s *Store) Disconnect() {
	s.update(func() {
		s.connection = nil
		s.isLoading = false
		s.lastError = nil
	})
}

// Contribute signs and broadcasts a value transfer to the campaign address
// and returns the transaction hash. The balance is refreshed best-effort
// afterwards.
func (s *Store) Contribute(ctx context.Context, to, amountWei string) (string, error) {
	s.mu.Lock()
	conn := s.connection
	s.mu.Unlock()
	if conn == nil {
		return "", ErrNotConnected
	}

	hash, err := s.provider.SendTransaction(ctx, conn.Address, to, amountWei)
	if err != nil {
		s.update(func() { s.lastError = err })
		return "", err
	}

	if balance, err := s.provider.Balance(ctx, conn.Address); err == nil {
		s.update(func() {
			if s.connection != nil {
				s.connection.Balance = balance
			}
		})
	}
	return hash, nil
}
