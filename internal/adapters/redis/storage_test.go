package redis_test

import (
	"context"
	"testing"

	adaptredis "github.com/rafaelleal24/rocketshoes/internal/adapters/redis"
)

func TestStorage_GetSet(t *testing.T) {
	storage := adaptredis.NewStorage(testClient)
	ctx := context.Background()

	t.Run("missing key is not found", func(t *testing.T) {
		value, found, err := storage.Get(ctx, "storage-test:missing")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found || value != "" {
			t.Fatalf("expected not found, got %q", value)
		}
	})

	t.Run("stored value is returned", func(t *testing.T) {
		if err := storage.Set(ctx, "@RocketShoes:cart", `[]`); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := storage.Set(ctx, "@RocketShoes:cart", `[{"id":1,"amount":2}]`); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		value, found, err := storage.Get(ctx, "@RocketShoes:cart")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !found || value != `[{"id":1,"amount":2}]` {
			t.Fatalf("unexpected value %q (found=%v)", value, found)
		}
	})
}
