// Package session owns the bearer token for the current identity: one
// durable value on disk, one authoritative in-memory copy, and change
// notification for everything that keys off authentication status.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store holds the session token. The on-disk file is read once at Load;
// afterwards the in-memory value is authoritative and every mutation is
// written through before subscribers are notified, so a cleared token is
// never observable as still set.
type Store struct {
	mu    sync.Mutex
	path  string
	token string
	subs  []func()
}

// Load opens the store backed by the token file at path. A missing file
// means no session; a present one restores the previous session.
func Load(path string) (*Store, error) {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}
	s.token = strings.TrimSpace(string(raw))
	return s, nil
}

// Token returns the current token, empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Login persists the token and makes it the in-memory value. Overwrites
// any prior token.
func (s *Store) Login(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}

	s.mu.Lock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("write token file: %w", err)
	}
	s.token = token
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()

	notify(subs)
	return nil
}

// Logout clears the persisted and in-memory token. Downstream state keyed
// to the session (conversation directory, message buffers, local cache) is
// the caller's responsibility to wipe; subscribers fire after the token is
// gone so no request issued from a notification can still see it.
func (s *Store) Logout() error {
	s.mu.Lock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.mu.Unlock()
		return fmt.Errorf("remove token file: %w", err)
	}
	s.token = ""
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()

	notify(subs)
	return nil
}

// Subscribe registers fn to run after every login or logout. Callbacks run
// after the mutex is released, so they may call Token or Authenticated.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) snapshotSubsLocked() []func() {
	return append(([]func())(nil), s.subs...)
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
