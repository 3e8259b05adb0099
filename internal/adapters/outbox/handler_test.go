package outbox_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rafaelleal24/rocketshoes/internal/adapters/config"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/outbox"
	outboxmock "github.com/rafaelleal24/rocketshoes/internal/adapters/outbox/mock"
	portmock "github.com/rafaelleal24/rocketshoes/internal/core/port/mock"
	"go.uber.org/mock/gomock"
)

func setupHandler(t *testing.T, batch int, interval time.Duration) (*outbox.Handler, *outboxmock.MockRepository, *portmock.MockBrokerPort) {
	t.Helper()
	ctrl := gomock.NewController(t)
	broker := portmock.NewMockBrokerPort(ctrl)
	repo := outboxmock.NewMockRepository(ctrl)

	handler := outbox.NewHandler(repo, broker, config.OutboxConfig{
		Interval:  interval,
		BatchSize: batch,
	})
	return handler, repo, broker
}

func TestHandler_Relay(t *testing.T) {
	t.Run("publishes and deletes events", func(t *testing.T) {
		handler, repo, broker := setupHandler(t, 10, time.Hour)

		entries := []outbox.Entry{
			{ID: "1", EventName: "cart.product_added", EntityName: "cart", EventData: []byte(`{"product_id":1}`)},
			{ID: "2", EventName: "cart.product_removed", EntityName: "cart", EventData: []byte(`{"product_id":2}`)},
		}

		gomock.InOrder(
			repo.EXPECT().FetchPending(gomock.Any(), 10).Return(entries, nil),
			broker.EXPECT().PublishRaw(gomock.Any(), "cart.product_added", "cart", []byte(`{"product_id":1}`)).Return(nil),
			repo.EXPECT().Delete(gomock.Any(), "1").Return(nil),
			broker.EXPECT().PublishRaw(gomock.Any(), "cart.product_removed", "cart", []byte(`{"product_id":2}`)).Return(nil),
			repo.EXPECT().Delete(gomock.Any(), "2").Return(nil),
		)

		if published := handler.Relay(context.Background()); published != 2 {
			t.Fatalf("expected 2 published, got %d", published)
		}
	})

	t.Run("failed publish holds back later events", func(t *testing.T) {
		handler, repo, broker := setupHandler(t, 10, time.Hour)

		entries := []outbox.Entry{
			{ID: "1", EventName: "cart.product_added", EntityName: "cart", EventData: []byte(`{"product_id":1}`)},
			{ID: "2", EventName: "cart.product_amount_updated", EntityName: "cart", EventData: []byte(`{"product_id":1}`)},
		}

		gomock.InOrder(
			repo.EXPECT().FetchPending(gomock.Any(), 10).Return(entries, nil),
			broker.EXPECT().PublishRaw(gomock.Any(), "cart.product_added", "cart", gomock.Any()).Return(errors.New("publish failed")),
			repo.EXPECT().MarkFailed(gomock.Any(), "1", "publish failed").Return(nil),
		)

		if published := handler.Relay(context.Background()); published != 0 {
			t.Fatalf("expected 0 published, got %d", published)
		}
	})

	t.Run("mark failed error is only logged", func(t *testing.T) {
		handler, repo, broker := setupHandler(t, 10, time.Hour)

		repo.EXPECT().FetchPending(gomock.Any(), 10).Return([]outbox.Entry{
			{ID: "1", EventName: "cart.product_removed", EntityName: "cart", EventData: []byte(`{}`), Attempts: 3},
		}, nil)
		broker.EXPECT().PublishRaw(gomock.Any(), "cart.product_removed", "cart", gomock.Any()).Return(errors.New("publish failed"))
		repo.EXPECT().MarkFailed(gomock.Any(), "1", "publish failed").Return(errors.New("db down"))

		if published := handler.Relay(context.Background()); published != 0 {
			t.Fatalf("expected 0 published, got %d", published)
		}
	})

	t.Run("fetch error publishes nothing", func(t *testing.T) {
		handler, repo, _ := setupHandler(t, 10, time.Hour)

		repo.EXPECT().FetchPending(gomock.Any(), 10).Return(nil, errors.New("db down"))

		if published := handler.Relay(context.Background()); published != 0 {
			t.Fatalf("expected 0 published, got %d", published)
		}
	})

	t.Run("delete failure still counts as published", func(t *testing.T) {
		handler, repo, broker := setupHandler(t, 5, time.Hour)

		repo.EXPECT().FetchPending(gomock.Any(), 5).Return([]outbox.Entry{
			{ID: "1", EventName: "notification.success", EntityName: "notification", EventData: []byte(`{}`)},
		}, nil)
		broker.EXPECT().PublishRaw(gomock.Any(), "notification.success", "notification", []byte(`{}`)).Return(nil)
		repo.EXPECT().Delete(gomock.Any(), "1").Return(errors.New("delete failed"))

		if published := handler.Relay(context.Background()); published != 1 {
			t.Fatalf("expected 1 published, got %d", published)
		}
	})
}

func TestHandler_StartPollsOnInterval(t *testing.T) {
	handler, repo, _ := setupHandler(t, 10, 20*time.Millisecond)

	polled := make(chan struct{}, 1)
	repo.EXPECT().FetchPending(gomock.Any(), 10).DoAndReturn(func(context.Context, int) ([]outbox.Entry, error) {
		select {
		case polled <- struct{}{}:
		default:
		}
		return nil, nil
	}).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		handler.Start(ctx)
		close(done)
	}()

	select {
	case <-polled:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never polled the outbox")
	}
	cancel()
	<-done
}

func TestHandler_StopsOnContextCancel(t *testing.T) {
	handler, _, _ := setupHandler(t, 10, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		handler.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not stop after context cancellation")
	}
}
