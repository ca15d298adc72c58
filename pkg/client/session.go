package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSession is returned by Load when no session has been saved.
var ErrNoSession = errors.New("no saved session")

// Session holds the authenticated identity carried between commands.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}

// SessionStore persists the session between client invocations. The store
// is injected into Client so session state is never ambient/global.
type SessionStore interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// FileSessionStore keeps the session as a JSON document on disk.
type FileSessionStore struct {
	path string
}

// NewFileSessionStore creates a file-backed store at path.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

// DefaultSessionPath returns the conventional session location under the
// user config dir.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "adminctl", "session.json"), nil
}

// Load reads the saved session, or ErrNoSession when none exists.
func (s *FileSessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.AccessToken == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Save writes the session, creating parent directories as needed. The file
// is user-readable only since it holds a bearer token.
func (s *FileSessionStore) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the saved session. Clearing an absent session is not an
// error.
func (s *FileSessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// MemorySessionStore holds the session in memory; used in tests and for
// one-shot scripted use.
type MemorySessionStore struct {
	sess *Session
}

// Load returns the held session, or ErrNoSession.
func (s *MemorySessionStore) Load() (*Session, error) {
	if s.sess == nil {
		return nil, ErrNoSession
	}
	return s.sess, nil
}

// Save replaces the held session.
func (s *MemorySessionStore) Save(sess *Session) error {
	s.sess = sess
	return nil
}

// Clear drops the held session.
func (s *MemorySessionStore) Clear() error {
	s.sess = nil
	return nil
}
