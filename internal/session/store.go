// Package session keeps the access token obtained at login between launcher
// runs.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// ServiceName for keyring entries
	ServiceName = "idklol-launcher"
	tokenKey    = "auth.token"
)

// Store persists the current access token.
type Store interface {
	// Load returns the stored token, or "" when none is stored.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// KeyringStore keeps the token in the OS keyring (Keychain, Secret Service,
// WinCred).
type KeyringStore struct {
	service string
	key     string
}

// Ensure KeyringStore implements Store at compile time.
var _ Store = (*KeyringStore)(nil)

// NewKeyringStore creates a store under the launcher's service name.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: ServiceName, key: tokenKey}
}

// Load returns the stored token. A missing entry is not an error.
func (s *KeyringStore) Load() (string, error) {
	token, err := keyring.Get(s.service, s.key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read token from keyring: %w", err)
	}
	return token, nil
}

// Save replaces the stored token.
func (s *KeyringStore) Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token is empty")
	}
	if err := keyring.Set(s.service, s.key, token); err != nil {
		return fmt.Errorf("store token in keyring: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty store succeeds.
func (s *KeyringStore) Clear() error {
	if err := keyring.Delete(s.service, s.key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete token from keyring: %w", err)
	}
	return nil
}
