package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/rocketshoes/internal/core/port"
)

// Storage is the durable key-value driver. Values never expire.
type Storage struct {
	client *Client
}

func NewStorage(client *Client) port.StoragePort {
	return &Storage{client: client}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key)
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}
