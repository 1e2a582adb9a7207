package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLFile keeps the inputs in a single YAML mapping. The file is re-read on
// every Get so edits made outside lens are picked up by the next reload.
type YAMLFile struct {
	path string
	mu   sync.Mutex
}

// OpenYAML returns a store backed by the YAML file at path. The file does not
// need to exist yet.
func OpenYAML(path string) (*YAMLFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store: yaml path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure dir for %s: %w", path, err)
	}
	return &YAMLFile{path: path}, nil
}

// Path returns the file backing the store.
func (y *YAMLFile) Path() string {
	return y.path
}

// Get returns the value stored under key.
func (y *YAMLFile) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	y.mu.Lock()
	defer y.mu.Unlock()
	values, err := y.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key, rewriting the file atomically.
func (y *YAMLFile) Set(ctx context.Context, key, value string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	y.mu.Lock()
	defer y.mu.Unlock()
	values, err := y.load()
	if err != nil {
		return err
	}
	values[key] = value
	return y.save(values)
}

// Close is a no-op; the file is not held open.
func (y *YAMLFile) Close() error { return nil }

func (y *YAMLFile) load() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(y.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", y.path, err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", y.path, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

func (y *YAMLFile) save(values map[string]string) error {
	doc := yaml.Node{Kind: yaml.MappingNode}
	for _, key := range InputKeys() {
		value, ok := values[key]
		if !ok {
			continue
		}
		valueNode := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
		if strings.Contains(value, "\n") {
			valueNode.Style = yaml.LiteralStyle
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			valueNode,
		)
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", y.path, err)
	}
	tmp := y.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, y.path); err != nil {
		return fmt.Errorf("store: replace %s: %w", y.path, err)
	}
	return nil
}
