package outbox

import (
	"context"
	"time"

	"github.com/rafaelleal24/rocketshoes/internal/adapters/config"
	"github.com/rafaelleal24/rocketshoes/internal/core/logger"
	"github.com/rafaelleal24/rocketshoes/internal/core/port"
)

// Handler relays stored events to the broker in the order they were stored.
// An entry is deleted only after it was published, so delivery is at least
// once, and a failed publish holds back every later entry until it succeeds.
type Handler struct {
	outbox   Repository
	broker   port.BrokerPort
	interval time.Duration
	batch    int
}

func NewHandler(outbox Repository, broker port.BrokerPort, config config.OutboxConfig) *Handler {
	return &Handler{
		outbox:   outbox,
		broker:   broker,
		interval: config.Interval,
		batch:    config.BatchSize,
	}
}

func (h *Handler) Start(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Relay(ctx)
		}
	}
}

// Relay publishes one batch of pending events and returns how many were sent.
func (h *Handler) Relay(ctx context.Context) int {
	entries, err := h.outbox.FetchPending(ctx, h.batch)
	if err != nil {
		logger.Error(ctx, "outbox: failed to fetch pending events", err, map[string]any{
			"batch": h.batch,
		})
		return 0
	}

	published := 0
	for _, entry := range entries {
		eventLogAttributes := map[string]any{
			"event_id":    entry.ID,
			"event_name":  entry.EventName,
			"entity_name": entry.EntityName,
			"attempts":    entry.Attempts,
		}
		if err := h.broker.PublishRaw(ctx, entry.EventName, entry.EntityName, entry.EventData); err != nil {
			logger.Error(ctx, "outbox: failed to publish event", err, eventLogAttributes)
			if err := h.outbox.MarkFailed(ctx, entry.ID, err.Error()); err != nil {
				logger.Error(ctx, "outbox: failed to record publish failure", err, eventLogAttributes)
			}
			break
		}
		published++

		logger.Debug(ctx, "outbox: event published", eventLogAttributes)

		if err := h.outbox.Delete(ctx, entry.ID); err != nil {
			logger.Error(ctx, "outbox: failed to delete event after publish", err, eventLogAttributes)
		}
	}
	return published
}
