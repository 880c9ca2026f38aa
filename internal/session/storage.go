package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Storage keys used for the persisted session.
const (
	keyToken = "token"
	keyUser  = "user"
)

// Storage is the durable key-value surface the store persists through.
// Implementations must survive process restarts.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// FileStorage keeps each key as a small file under Root. This mirrors the
// on-device key-value store the mobile platforms provide.
type FileStorage struct {
	Root string
}

// DefaultStorageRoot resolves the per-user data dir. Prefers XDG, then the
// home directory, then a temp dir as a last resort.
func DefaultStorageRoot() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, "eduproject")
	}
	if base, err := os.UserHomeDir(); err == nil && base != "" {
		return filepath.Join(base, ".local", "share", "eduproject")
	}
	return filepath.Join(os.TempDir(), "eduproject")
}

func NewFileStorage(root string) *FileStorage {
	if strings.TrimSpace(root) == "" {
		root = DefaultStorageRoot()
	}
	return &FileStorage{Root: root}
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.Root, key)
}

func (s *FileStorage) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

func (s *FileStorage) Set(key, value string) error {
	if err := os.MkdirAll(s.Root, 0o700); err != nil {
		return err
	}
	// Write-then-rename so a crash never leaves a half-written key.
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

func (s *FileStorage) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
