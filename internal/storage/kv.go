// Package storage persists the engine's state through a small string-keyed
// key/value store, the Go stand-in for the browser's localStorage. Everything
// above it (template store, registries, autosave slot, forward log) talks to
// the KV interface only, so tests can substitute the in-memory
// implementation.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Keys used in the backing store. The 3c- prefix matches the original
// browser storage layout.
const (
	KeyTemplates = "3c-templates"
	KeyLabels    = "3c-labels"
	KeyAudiences = "3c-audiences"
	KeyAutosave  = "3c-autosave"
	KeyForwards  = "3c-forwards"
)

// KV is a synchronous, fallible string key/value store. Get reports absence
// through its second return value rather than an error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileKV stores each key as a JSON file inside a root directory.
type FileKV struct {
	rootPath string
}

// NewFileKV creates a file-backed store rooted at rootPath. An empty
// rootPath defaults to ~/.content-forge, overridable with CONTENT_FORGE_DIR.
func NewFileKV(rootPath string) (*FileKV, error) {
	if rootPath == "" {
		rootPath = os.Getenv("CONTENT_FORGE_DIR")
	}
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".content-forge")
	}

	if err := os.MkdirAll(rootPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", rootPath, err)
	}

	return &FileKV{rootPath: rootPath}, nil
}

// BaseDir returns the root path of the store.
func (f *FileKV) BaseDir() string {
	return f.rootPath
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.rootPath, key+".json")
}

// Get reads the value stored under key.
func (f *FileKV) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes value under key, replacing any previous value.
func (f *FileKV) Set(key, value string) error {
	if err := os.WriteFile(f.path(key), []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is a
// no-op.
func (f *FileKV) Delete(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// MemoryKV is an in-memory KV used in tests. FailWrites makes every Set and
// Delete fail, simulating a full or unavailable backing store.
type MemoryKV struct {
	mu         sync.Mutex
	values     map[string]string
	FailWrites bool
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get reads the value stored under key.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set writes value under key.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return fmt.Errorf("simulated write failure for %s", key)
	}
	m.values[key] = value
	return nil
}

// Delete removes the value stored under key.
func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return fmt.Errorf("simulated delete failure for %s", key)
	}
	delete(m.values, key)
	return nil
}
