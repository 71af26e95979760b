package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNotPersisted marks a Save whose token is held in memory only. It stays
// usable until the process exits.
var ErrNotPersisted = errors.New("token kept for this session only")

// CachedStore holds the current token in memory in front of a persistent
// Store. Load answers from memory once a token has been loaded or saved.
type CachedStore struct {
	backing Store

	mu     sync.RWMutex
	token  string
	cached bool
}

var _ Store = (*CachedStore)(nil)

// NewCachedStore wraps backing.
func NewCachedStore(backing Store) *CachedStore {
	return &CachedStore{backing: backing}
}

// Load returns the in-memory token, reading through to the backing store the
// first time.
func (s *CachedStore) Load() (string, error) {
	s.mu.RLock()
	if s.cached {
		token := s.token
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	token, err := s.backing.Load()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cached {
		s.token = token
		s.cached = true
	}
	return s.token, nil
}

// Save keeps token in memory, then persists it. A persistence failure is
// reported wrapped in ErrNotPersisted; the in-memory token is kept.
func (s *CachedStore) Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token is empty")
	}

	s.mu.Lock()
	s.token = token
	s.cached = true
	s.mu.Unlock()

	if err := s.backing.Save(token); err != nil {
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}

// Clear forgets the in-memory token and clears the backing store.
func (s *CachedStore) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.cached = true
	s.mu.Unlock()

	return s.backing.Clear()
}
