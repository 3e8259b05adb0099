package events

import (
	"context"

	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
	"github.com/rafaelleal24/rocketshoes/internal/core/logger"
	"github.com/rafaelleal24/rocketshoes/internal/core/port"
)

// LogPublisher is the EventPort used when no broker is configured: events are
// only written to the debug log.
type LogPublisher struct{}

func NewLogPublisher() port.EventPort {
	return LogPublisher{}
}

func (LogPublisher) Publish(ctx context.Context, event domain.Event) error {
	logger.Debug(ctx, "event", map[string]any{
		"event_name":  event.GetName(),
		"entity_name": event.GetEntityName(),
	})
	return nil
}
