package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rafaelleal24/rocketshoes/internal/core/port/mock"
	"github.com/rafaelleal24/rocketshoes/internal/core/serviceerrors"
	"github.com/rafaelleal24/rocketshoes/internal/core/utils"
	"go.uber.org/mock/gomock"
)

const testScope = "cart-add"

type testPayload struct {
	Value string `json:"value"`
}

func setupIdempotencyService(t *testing.T) (*IdempotencyService[testPayload], *mock.MockCachePort[IdempotencyEntry[testPayload]]) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCachePort[IdempotencyEntry[testPayload]](ctrl)
	svc := NewIdempotencyService[testPayload](cache, testScope, 15*time.Minute, 50*time.Millisecond, 500*time.Millisecond)
	return svc, cache
}

func TestIdempotencyService_Claim(t *testing.T) {
	t.Run("first request - claims successfully", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)
		key := "idem-key-1"
		hash := "hash123"

		cache.EXPECT().
			SetNX(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			Return(true, nil)

		result, err := svc.Claim(context.Background(), key, hash)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result != nil {
			t.Fatal("expected nil result for first claim")
		}
	})

	t.Run("duplicate request - completed - returns result", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)
		key := "idem-key-1"
		hash := "hash123"
		expectedResult := &testPayload{Value: "cart-result"}

		cache.EXPECT().
			SetNX(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			Return(false, nil)

		cache.EXPECT().
			Get(gomock.Any(), testScope+":"+key).
			Return(&IdempotencyEntry[testPayload]{
				Status:      IdempotencyCompleted,
				PayloadHash: hash,
				Result:      expectedResult,
			}, nil)

		result, err := svc.Claim(context.Background(), key, hash)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result == nil {
			t.Fatal("expected result, got nil")
		}
		if result.Value != expectedResult.Value {
			t.Fatalf("expected %q, got %q", expectedResult.Value, result.Value)
		}
	})

	t.Run("duplicate request - different payload hash", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)
		key := "idem-key-1"

		cache.EXPECT().
			SetNX(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			Return(false, nil)

		cache.EXPECT().
			Get(gomock.Any(), testScope+":"+key).
			Return(&IdempotencyEntry[testPayload]{
				Status:      IdempotencyCompleted,
				PayloadHash: "different-hash",
				Result:      &testPayload{Value: "old"},
			}, nil)

		_, err := svc.Claim(context.Background(), key, "new-hash")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !serviceerrors.IsOfKind(err, serviceerrors.KindUnprocessableEntity) {
			t.Fatalf("expected KindUnprocessableEntity, got %v", err)
		}
	})

	t.Run("duplicate request - entry disappeared (previous failed)", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)
		key := "idem-key-1"
		hash := "hash123"

		cache.EXPECT().
			SetNX(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			Return(false, nil)

		cache.EXPECT().
			Get(gomock.Any(), testScope+":"+key).
			Return(nil, nil)

		_, err := svc.Claim(context.Background(), key, hash)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !serviceerrors.IsOfKind(err, serviceerrors.KindConflict) {
			t.Fatalf("expected KindConflict, got %v", err)
		}
	})

	t.Run("SetNX cache error", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)
		key := "idem-key-1"
		hash := "hash123"

		cache.EXPECT().
			SetNX(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			Return(false, errors.New("redis down"))

		_, err := svc.Claim(context.Background(), key, hash)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("duplicate request - still processing - polls and completes", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)
		key := "idem-key-1"
		hash := "hash123"
		expectedResult := &testPayload{Value: "cart-result"}

		cache.EXPECT().
			SetNX(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			Return(false, nil)

		firstCall := cache.EXPECT().
			Get(gomock.Any(), testScope+":"+key).
			Return(&IdempotencyEntry[testPayload]{
				Status:      IdempotencyProcessing,
				PayloadHash: hash,
			}, nil)

		secondCall := cache.EXPECT().
			Get(gomock.Any(), testScope+":"+key).
			Return(&IdempotencyEntry[testPayload]{
				Status:      IdempotencyProcessing,
				PayloadHash: hash,
			}, nil).
			After(firstCall)

		cache.EXPECT().
			Get(gomock.Any(), testScope+":"+key).
			Return(&IdempotencyEntry[testPayload]{
				Status:      IdempotencyCompleted,
				PayloadHash: hash,
				Result:      expectedResult,
			}, nil).
			After(secondCall)

		result, err := svc.Claim(context.Background(), key, hash)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result == nil {
			t.Fatal("expected result, got nil")
		}
		if result.Value != expectedResult.Value {
			t.Fatalf("expected %q, got %q", expectedResult.Value, result.Value)
		}
	})

	t.Run("duplicate request - still processing - times out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mock.NewMockCachePort[IdempotencyEntry[testPayload]](ctrl)
		svc := NewIdempotencyService[testPayload](cache, testScope, 15*time.Minute, 20*time.Millisecond, 80*time.Millisecond)

		key := "idem-key-1"
		hash := "hash123"

		cache.EXPECT().
			SetNX(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			Return(false, nil)

		cache.EXPECT().
			Get(gomock.Any(), testScope+":"+key).
			Return(&IdempotencyEntry[testPayload]{
				Status:      IdempotencyProcessing,
				PayloadHash: hash,
			}, nil).
			AnyTimes()

		_, err := svc.Claim(context.Background(), key, hash)
		if err == nil {
			t.Fatal("expected timeout error, got nil")
		}
		if !serviceerrors.IsOfKind(err, serviceerrors.KindConflict) {
			t.Fatalf("expected KindConflict, got %v", err)
		}
	})

	t.Run("duplicate request - context cancelled while polling", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mock.NewMockCachePort[IdempotencyEntry[testPayload]](ctrl)
		svc := NewIdempotencyService[testPayload](cache, testScope, 15*time.Minute, 50*time.Millisecond, 5*time.Second)

		key := "idem-key-1"
		hash := "hash123"

		cache.EXPECT().
			SetNX(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			Return(false, nil)

		cache.EXPECT().
			Get(gomock.Any(), testScope+":"+key).
			Return(&IdempotencyEntry[testPayload]{
				Status:      IdempotencyProcessing,
				PayloadHash: hash,
			}, nil).
			AnyTimes()

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(30 * time.Millisecond)
			cancel()
		}()

		_, err := svc.Claim(ctx, key, hash)
		if err == nil {
			t.Fatal("expected context error, got nil")
		}
	})
}

func TestIdempotencyService_Complete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)
		key := "idem-key-1"
		hash := "hash123"
		result := &testPayload{Value: "cart-result"}

		cache.EXPECT().
			Set(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			DoAndReturn(func(_ context.Context, _ string, entry *IdempotencyEntry[testPayload], _ time.Duration) error {
				if entry.Status != IdempotencyCompleted {
					t.Fatalf("expected status %q, got %q", IdempotencyCompleted, entry.Status)
				}
				if entry.PayloadHash != hash {
					t.Fatalf("expected hash %q, got %q", hash, entry.PayloadHash)
				}
				if entry.Result.Value != result.Value {
					t.Fatalf("expected result %q, got %q", result.Value, entry.Result.Value)
				}
				return nil
			})

		svc.Complete(context.Background(), key, hash, result)
	})

	t.Run("cache error is logged but does not panic", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)

		cache.EXPECT().
			Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("redis error"))

		svc.Complete(context.Background(), "key", "hash", &testPayload{})
	})
}

func TestIdempotencyService_Release(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)
		key := "idem-key-1"

		cache.EXPECT().
			Del(gomock.Any(), testScope+":"+key).
			Return(nil)

		svc.Release(context.Background(), key)
	})

	t.Run("cache error is logged but does not panic", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)

		cache.EXPECT().
			Del(gomock.Any(), gomock.Any()).
			Return(errors.New("redis error"))

		svc.Release(context.Background(), "key")
	})
}

func TestIdempotencyService_Do(t *testing.T) {
	t.Run("empty key runs fn directly", func(t *testing.T) {
		svc, _ := setupIdempotencyService(t)
		calls := 0

		result, err := svc.Do(context.Background(), "", 1, func(context.Context) (*testPayload, error) {
			calls++
			return &testPayload{Value: "direct"}, nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls != 1 || result.Value != "direct" {
			t.Fatalf("expected one direct call, got %d calls and %+v", calls, result)
		}
	})

	t.Run("first call completes the entry", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)
		key := "idem-key-2"

		cache.EXPECT().
			SetNX(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			Return(true, nil)
		cache.EXPECT().
			Set(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			Return(nil)

		result, err := svc.Do(context.Background(), key, 1, func(context.Context) (*testPayload, error) {
			return &testPayload{Value: "fresh"}, nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Value != "fresh" {
			t.Fatalf("expected fresh result, got %q", result.Value)
		}
	})

	t.Run("replay skips fn", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)
		key := "idem-key-3"
		hash := utils.HashJSON(1)

		cache.EXPECT().
			SetNX(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			Return(false, nil)
		cache.EXPECT().
			Get(gomock.Any(), testScope+":"+key).
			Return(&IdempotencyEntry[testPayload]{
				Status:      IdempotencyCompleted,
				PayloadHash: hash,
				Result:      &testPayload{Value: "stored"},
			}, nil)

		result, err := svc.Do(context.Background(), key, 1, func(context.Context) (*testPayload, error) {
			t.Fatal("fn must not run on replay")
			return nil, nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Value != "stored" {
			t.Fatalf("expected stored result, got %q", result.Value)
		}
	})

	t.Run("failed fn releases the key", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t)
		key := "idem-key-4"

		cache.EXPECT().
			SetNX(gomock.Any(), testScope+":"+key, gomock.Any(), 15*time.Minute).
			Return(true, nil)
		cache.EXPECT().
			Del(gomock.Any(), testScope+":"+key).
			Return(nil)

		_, err := svc.Do(context.Background(), key, 1, func(context.Context) (*testPayload, error) {
			return nil, serviceerrors.NewOutOfStockError("out of stock quantity requested")
		})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindOutOfStock) {
			t.Fatalf("expected KindOutOfStock, got %v", err)
		}
	})
}
