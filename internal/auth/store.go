package auth

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/pkg/errors"
)

// TokenStore keeps the one client-local value: the session id.
type TokenStore interface {
	apiclient.TokenSource
	Save(token string) error
	Clear() error
}

// FileStore persists the session id in a 0600 file.
type FileStore struct {
	path string

	mu    sync.RWMutex
	token string
}

// NewFileStore reads an existing session from path; a missing file means logged out.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		s.token = strings.TrimSpace(string(raw))
	case os.IsNotExist(err):
	default:
		return nil, errors.Wrapf(err, "read session file %s", path)
	}
	return s, nil
}

func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create session dir")
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return errors.Wrap(err, "write session file")
	}
	s.token = token
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove session file")
	}
	return nil
}

// MemoryStore is a process-local TokenStore.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.Save("")
}
