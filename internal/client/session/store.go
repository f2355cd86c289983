// Package session persists the client's login between runs in the OS keyring.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/devlog/internal/client/client"
	"github.com/zalando/go-keyring"
)

// ServiceName is the keyring service entries are stored under.
const ServiceName = "devlog"

var (
	// ErrNoSession is returned by Load when nothing has been saved.
	ErrNoSession = errors.New("no saved session")
	// ErrKeyringUnavailable wraps failures of the OS keyring itself.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Store loads, saves and clears a client session.
type Store interface {
	Load() (*client.Session, error)
	Save(s *client.Session) error
	Clear() error
}

// KeyringStore keeps one session per server in the OS keyring. The server
// URL is the keyring user, so switching servers does not reuse a token.
type KeyringStore struct {
	account string
}

func NewKeyringStore(serverURL string) *KeyringStore {
	return &KeyringStore{account: serverURL}
}

func (k *KeyringStore) Load() (*client.Session, error) {
	raw, err := keyring.Get(ServiceName, k.account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	var s client.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		// a corrupt entry is as good as none
		_ = keyring.Delete(ServiceName, k.account)
		return nil, ErrNoSession
	}
	if !s.LoggedIn() {
		return nil, ErrNoSession
	}
	return &s, nil
}

func (k *KeyringStore) Save(s *client.Session) error {
	if !s.LoggedIn() {
		return errors.New("refusing to save an empty session")
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := keyring.Set(ServiceName, k.account, string(raw)); err != nil {
		return fmt.Errorf("failed to store session in keyring: %w", err)
	}
	return nil
}

// Clear removes the saved session. Clearing when nothing is saved is not an
// error.
func (k *KeyringStore) Clear() error {
	err := keyring.Delete(ServiceName, k.account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete session from keyring: %w", err)
	}
	return nil
}
