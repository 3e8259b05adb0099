package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rafaelleal24/rocketshoes/internal/core/port"
)

// Storage keeps every key in a single JSON object on disk. Writes go to a
// temporary file that is renamed over the original.
type Storage struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

var _ port.StoragePort = (*Storage)(nil)

func NewStorage(path string) (*Storage, error) {
	values, err := readValues(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage file %s: %w", path, err)
	}
	return &Storage{path: path, values: values}, nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[key] = value

	if err := writeValues(s.path, next); err != nil {
		return fmt.Errorf("failed to write storage file %s: %w", s.path, err)
	}
	s.values = next
	return nil
}

func readValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func writeValues(path string, values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	temp := path + ".tmp"
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(temp, path)
}
