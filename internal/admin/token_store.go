package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/thebar-catering/thebar-site/pkg/logging"
)

// TokenKey is the storage key the admin token is kept under.
const TokenKey = "thebar_admin_token"

// ErrCorruptTokenFile is returned by Load when the token file cannot be decoded.
// Save and Clear replace such a file instead of failing.
var ErrCorruptTokenFile = errors.New("admin: corrupt token file")

// TokenStore persists the admin bearer token between runs.
type TokenStore interface {
	// Load returns "" when no token is stored.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a small JSON file.
type FileTokenStore struct {
	path   string
	logger *logging.Logger
	mu     sync.Mutex
}

// NewFileTokenStore stores the token at path.
func NewFileTokenStore(path string, logger *logging.Logger) *FileTokenStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &FileTokenStore{path: path, logger: logger}
}

// DefaultTokenPath is the token file under the user's config directory.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("admin: resolve config dir: %w", err)
	}
	return filepath.Join(dir, "thebar", "admin.json"), nil
}

// Path returns the file location.
func (s *FileTokenStore) Path() string {
	return s.path
}

func (s *FileTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return "", err
	}
	return entries[TokenKey], nil
}

func (s *FileTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if errors.Is(err, ErrCorruptTokenFile) {
		s.logger.Warn("overwriting corrupt admin token file", "path", s.path, "error", err)
		entries, err = map[string]string{}, nil
	}
	if err != nil {
		return err
	}
	entries[TokenKey] = token
	return s.write(entries)
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if errors.Is(err, ErrCorruptTokenFile) {
		s.logger.Warn("removing corrupt admin token file", "path", s.path, "error", err)
		if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return fmt.Errorf("admin: remove token file: %w", rmErr)
		}
		return nil
	}
	if err != nil {
		return err
	}
	if _, ok := entries[TokenKey]; !ok {
		return nil
	}
	delete(entries, TokenKey)
	return s.write(entries)
}

func (s *FileTokenStore) read() (map[string]string, error) {
	entries := map[string]string{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("admin: read token file: %w", err)
	}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTokenFile, err)
	}
	return entries, nil
}

func (s *FileTokenStore) write(entries map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("admin: create token dir: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("admin: encode token file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("admin: write token file: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps the token for the life of the process.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
