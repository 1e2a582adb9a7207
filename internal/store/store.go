// internal/store/store.go
//
// The fallback key-value store the exercise texts are read from when they are
// not passed on the command line. Two backends exist: a YAML file that is easy
// to edit by hand, and a SQLite database for when lens runs next to other
// tooling that already writes there.

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Input keys understood by Resolve.
const (
	KeyOriginal = "original"
	KeyUser     = "user"
	KeyAI       = "ai"
	KeyFeedback = "feedback"
)

// Backend names.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var (
	// ErrUnknownBackend is returned by Open for unsupported backend names.
	ErrUnknownBackend = errors.New("store: unknown backend")
	// ErrInvalidKey is returned when a key is not one of the input keys.
	ErrInvalidKey = errors.New("store: invalid key")
)

// InputKeys returns the four keys in panel order.
func InputKeys() []string {
	return []string{KeyOriginal, KeyUser, KeyAI, KeyFeedback}
}

// ValidKey reports whether key is one of the input keys.
func ValidKey(key string) bool {
	for _, k := range InputKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// Store reads and writes exercise texts by key.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open returns the store for backend rooted at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendYAML:
		return OpenYAML(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemory(nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Memory is an in-process store, used by tests and one-shot commands.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory copies values into a new in-memory store.
func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: map[string]string{}}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
