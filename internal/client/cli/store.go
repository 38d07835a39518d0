package cli

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// persistedSession is what survives between CLI invocations: who was
// signed in and the token pair to act as them.
type persistedSession struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (p persistedSession) hasTokens() bool {
	return p.AccessToken != "" || p.RefreshToken != ""
}

// sessionStore reads and writes the session file. Safe for concurrent use;
// the token-rotation hook may fire from a request goroutine.
type sessionStore struct {
	path string

	mu      sync.Mutex
	current persistedSession
}

func newSessionStore(path string) *sessionStore {
	return &sessionStore{path: path}
}

// load reads the session file. A missing file is a clean anonymous start,
// not an error.
func (s *sessionStore) load() (persistedSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return persistedSession{}, nil
		}
		return persistedSession{}, err
	}
	if err := json.Unmarshal(data, &s.current); err != nil {
		return persistedSession{}, err
	}
	return s.current, nil
}

// setIdentity records who is signed in and writes the file.
func (s *sessionStore) setIdentity(userID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.UserID = userID
	s.current.Email = email
	return s.writeLocked()
}

// setTokens records a rotated token pair and writes the file. Clearing both
// tokens also clears the identity.
func (s *sessionStore) setTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.AccessToken = access
	s.current.RefreshToken = refresh
	if access == "" && refresh == "" {
		s.current.UserID = ""
		s.current.Email = ""
	}
	return s.writeLocked()
}

func (s *sessionStore) writeLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(s.current)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
