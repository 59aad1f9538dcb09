// Package persist bridges a subset of UI state and the raw session token
// to a durable key-value slot, with version and max-age invalidation.
package persist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Storage is the durable key-value slot. Implementations return ok=false
// for a missing key, an error only for real I/O failure.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryStorage keeps records in a map. Used in tests and as the fallback
// when no data directory is configured.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: map[string]string{}}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FileStorage writes one file per key under Dir.
type FileStorage struct {
	Dir string
}

func NewFileStorage(dir string) (FileStorage, error) {
	if strings.TrimSpace(dir) == "" {
		return FileStorage{}, errors.New("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return FileStorage{}, err
	}
	return FileStorage{Dir: dir}, nil
}

func (f FileStorage) path(key string) string {
	// keys are internal constants, not user input
	return filepath.Join(f.Dir, key+".json")
}

func (f FileStorage) Get(key string) (string, bool, error) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(raw), true, nil
}

func (f FileStorage) Set(key, value string) error {
	return os.WriteFile(f.path(key), []byte(value), 0o600)
}

func (f FileStorage) Delete(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
