// Package identity keeps the anonymous local user id. The id is generated
// once, persisted to a file and reused by every later run.
package identity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store reads or creates the local user id
type Store struct {
	path  string
	newID func() string

	once sync.Once
	id   string
	err  error
}

// NewStore creates a store persisting to path
func NewStore(path string) *Store {
	return &Store{
		path:  path,
		newID: uuid.NewString,
	}
}

// DefaultPath returns <user config dir>/drevlegrad/user_id
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "drevlegrad", "user_id"), nil
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// UserID returns the persisted id, generating and saving one on first use.
// The file is touched at most once per Store.
func (s *Store) UserID() (string, error) {
	s.once.Do(func() {
		s.id, s.err = s.readOrCreate()
	})
	return s.id, s.err
}

func (s *Store) readOrCreate() (string, error) {
	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("read identity: %w", err)
	}

	id := s.newID()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return "", fmt.Errorf("create identity dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write identity: %w", err)
	}
	return id, nil
}
