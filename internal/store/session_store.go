package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"meteradmin/internal/domain"
)

const sessionFilename = "session.json"

// SessionFileStore keeps the CLI's admin session in a 0600 file.
type SessionFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir string) *SessionFileStore {
	return &SessionFileStore{dir: dir}
}

// SaveSession writes the session, replacing any previous one.
func (s *SessionFileStore) SaveSession(session domain.AdminSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(filepath.Join(s.dir, sessionFilename), session, 0o600)
}

// LoadSession returns the saved session, if any.
func (s *SessionFileStore) LoadSession() (domain.AdminSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session domain.AdminSession
	path := filepath.Join(s.dir, sessionFilename)
	b, err := readFile(path)
	if err != nil || b == nil {
		return session, false, err
	}
	if err := readJSON(path, &session); err != nil {
		return domain.AdminSession{}, false, err
	}
	return session, session.Token != "", nil
}

// ClearSession removes the saved session.
func (s *SessionFileStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, sessionFilename))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
