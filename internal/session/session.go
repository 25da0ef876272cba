// Package session persists the signed-in user's bearer token and id.
// The session file lives at ~/.config/asana/session.toml by default.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultSessionPath = "~/.config/asana/session.toml"

// Session is a point-in-time copy of the stored credentials.
type Session struct {
	Token  string
	UserID string
}

// LoggedIn reports whether the session carries a token.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// Store is the one shared handle on the current session. Every mutation goes
// through Set or Clear so that a clear is visible to all callers at once.
type Store struct {
	mu      sync.RWMutex
	path    string // empty keeps the session in memory only
	current Session
}

// record is the on-disk layout. Key names match the storage keys the web
// client used so existing exports stay readable.
type record struct {
	Token  string `toml:"yoga_auth_token"`
	UserID string `toml:"userId"`
}

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

// NewMemory returns a Store that never touches disk.
func NewMemory() *Store {
	return &Store{}
}

// Open loads the session file at path, falling back to a logged-out session
// when the file is missing or unreadable.
func Open(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session path: %w", err)
	}
	s := &Store{path: resolved}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, nil // Graceful degradation
	}

	var rec record
	if err := toml.Unmarshal(bytes, &rec); err != nil {
		return s, nil // Graceful degradation
	}
	s.current = Session{
		Token:  strings.TrimSpace(rec.Token),
		UserID: strings.TrimSpace(rec.UserID),
	}
	if s.current.Token == "" {
		s.current = Session{}
	}
	return s, nil
}

// Path returns the resolved session file path, or "" for memory stores.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	return s.Snapshot().Token
}

// UserID returns the current user id, or "" when logged out.
func (s *Store) UserID() string {
	return s.Snapshot().UserID
}

// LoggedIn reports whether a token is present.
func (s *Store) LoggedIn() bool {
	return s.Snapshot().LoggedIn()
}

// Set stores a new token and user id and persists them.
func (s *Store) Set(token, userID string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{Token: token, UserID: strings.TrimSpace(userID)}
	return s.persistLocked()
}

// Clear drops the token and user id together and removes the session file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	bytes, err := toml.Marshal(record{Token: s.current.Token, UserID: s.current.UserID})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
