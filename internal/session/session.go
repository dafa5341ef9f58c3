// Package session owns the persisted authentication state: the bearer and
// refresh tokens plus the signed-in user's profile. The session survives
// across runs until logout or a failed token refresh clears it.
//
// A single Session value is shared between the API gateway (which reads and
// rotates tokens) and the auth store (which sets and clears them), so all
// access goes through a mutex.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"invoicectl/pkg/models"
)

// file is the on-disk shape of a session.
type file struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user,omitempty"`
}

// Session holds the live authentication state and mirrors every change to
// its backing file.
type Session struct {
	mu   sync.RWMutex
	path string
	data file
}

// DefaultPath returns the session file location used when none is
// configured: ~/.invoicectl/session.json.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".invoicectl-session.json"
	}
	return filepath.Join(home, ".invoicectl", "session.json")
}

// Load reads the session file at path. A missing file is not an error; it
// simply yields a logged-out session bound to that path.
func Load(path string) (*Session, error) {
	s := &Session{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt session file is equivalent to being logged out.
		return &Session{path: path}, nil
	}
	return s, nil
}

// AccessToken returns the current bearer token, empty when logged out.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.AccessToken
}

// RefreshToken returns the current refresh token, empty when logged out.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.RefreshToken
}

// User returns the persisted profile, or nil when logged out.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.User
}

// LoggedIn reports whether a bearer token is present.
func (s *Session) LoggedIn() bool {
	return s.AccessToken() != ""
}

// SetTokens stores a new token pair and persists the session.
func (s *Session) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AccessToken = access
	s.data.RefreshToken = refresh
	return s.write()
}

// SetUser stores the profile and persists the session.
func (s *Session) SetUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.User = &u
	return s.write()
}

// Clear discards all session state and removes the backing file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = file{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// write persists the current state. Caller holds the lock.
func (s *Session) write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	// Tokens are credentials; keep the file owner-only.
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}
