package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

// Identity is the authenticated user's claims and tokens held for the
// session. All fields are saved and replaced together; a reader never
// observes a token paired with a stale role.
type Identity struct {
	Username     string      `json:"username"`
	Role         domain.Role `json:"role"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// TokenStore persists at most one Identity. Save replaces any previous
// Identity atomically; Load reports absence with ok=false rather than an
// error so callers can branch without unwrapping.
type TokenStore interface {
	Save(identity Identity) error
	Load() (Identity, bool, error)
	Clear() error
}

// identityFileName is the single canonical storage key. Earlier clients
// probed several legacy key names on read; this store does not.
const identityFileName = "identity.json"

// FileTokenStore keeps the Identity in one JSON file, written with a
// temp-file rename so a crash mid-write never leaves a partial Identity.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStore stores the Identity under dir, creating it if needed.
func NewFileTokenStore(dir string) (*FileTokenStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("token store dir: %w", err)
	}
	return &FileTokenStore{path: filepath.Join(dir, identityFileName)}, nil
}

func (s *FileTokenStore) Save(identity Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), identityFileName+".*")
	if err != nil {
		return fmt.Errorf("token store write: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("token store write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("token store write: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("token store write: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Load() (Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Identity{}, false, nil
	}
	if err != nil {
		return Identity{}, false, fmt.Errorf("token store read: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return Identity{}, false, fmt.Errorf("token store decode: %w", err)
	}
	if identity.AccessToken == "" {
		return Identity{}, false, nil
	}
	return identity, true, nil
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("token store clear: %w", err)
	}
	return nil
}

// MemoryTokenStore holds the Identity in memory. Suited to tests and to
// short-lived processes that should not leave tokens on disk.
type MemoryTokenStore struct {
	mu       sync.RWMutex
	identity Identity
	present  bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Save(identity Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
	s.present = true
	return nil
}

func (s *MemoryTokenStore) Load() (Identity, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.present, nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = Identity{}
	s.present = false
	return nil
}
