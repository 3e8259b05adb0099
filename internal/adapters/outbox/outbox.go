package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
	"github.com/rafaelleal24/rocketshoes/internal/core/port"
)

type Entry struct {
	ID         string
	EventName  string
	EntityName string
	EventData  []byte
	Attempts   int
}

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	FetchPending(ctx context.Context, limit int) ([]Entry, error)
	Delete(ctx context.Context, id string) error
	// MarkFailed records a failed relay attempt; the entry stays pending.
	MarkFailed(ctx context.Context, id string, reason string) error
}

// Publisher records events in the outbox instead of sending them; the
// Handler relays them to the broker.
type Publisher struct {
	outbox Repository
}

var _ port.EventPort = (*Publisher)(nil)

func NewPublisher(outbox Repository) *Publisher {
	return &Publisher{outbox: outbox}
}

func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	err = p.outbox.Insert(ctx, Entry{
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  data,
	})
	if err != nil {
		return fmt.Errorf("failed to store event in outbox: %w", err)
	}
	return nil
}
