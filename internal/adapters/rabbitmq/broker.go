package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rafaelleal24/rocketshoes/internal/adapters/config"
	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
	"github.com/rafaelleal24/rocketshoes/internal/core/logger"
	"github.com/rafaelleal24/rocketshoes/internal/core/port"
)

var ErrBrokerClosed = errors.New("broker connection is closed")

// Broker publishes events to the exchange named after their entity
// (cart events to exchange.cart, notifications to exchange.notification),
// routed by event name.
type Broker struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	config  config.RabbitMQConfig
	closed  bool
}

var _ port.BrokerPort = (*Broker)(nil)

func NewBroker(cfg config.RabbitMQConfig) (*Broker, error) {
	broker := &Broker{config: cfg}

	if err := broker.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	return broker, nil
}

func ExchangeFor(entityName string) string {
	return "exchange." + entityName
}

func (b *Broker) connect() error {
	conn, err := amqp.Dial(b.config.URL)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	for _, ec := range b.config.ExchangeConfigs {
		if err := ch.ExchangeDeclare(ec.Name, ec.Type, ec.Durable, ec.AutoDelete, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return fmt.Errorf("failed to declare exchange %s: %w", ec.Name, err)
		}
	}

	b.conn = conn
	b.channel = ch
	return nil
}

func (b *Broker) reconnect() error {
	if b.channel != nil {
		b.channel.Close()
		b.channel = nil
	}
	if b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	return b.connect()
}

func (b *Broker) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		logger.Error(ctx, "broker: failed to marshal event", err, map[string]any{
			"event_name":  event.GetName(),
			"entity_name": event.GetEntityName(),
		})
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return b.publish(ctx, event.GetName(), event.GetEntityName(), body)
}

func (b *Broker) PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error {
	return b.publish(ctx, eventName, entityName, data)
}

func (b *Broker) publish(ctx context.Context, eventName, entityName string, body []byte) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		Type:         eventName,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}
	exchange := ExchangeFor(entityName)

	var lastErr error
	for attempt := 0; attempt <= b.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(b.config.RetryDelay):
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := b.tryPublish(ctx, exchange, eventName, msg)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrBrokerClosed) {
			return err
		}
		lastErr = err
		logger.Warn(ctx, "broker: publish attempt failed", map[string]any{
			"attempt":    attempt + 1,
			"exchange":   exchange,
			"event_name": eventName,
			"reason":     err.Error(),
		})
	}

	return fmt.Errorf("failed to publish after %d attempts: %w", b.config.MaxRetries+1, lastErr)
}

func (b *Broker) tryPublish(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBrokerClosed
	}
	if b.channel == nil {
		if err := b.reconnect(); err != nil {
			return fmt.Errorf("reconnect failed: %w", err)
		}
	}

	if err := b.channel.PublishWithContext(ctx, exchange, routingKey, false, false, msg); err != nil {
		b.channel = nil
		return err
	}
	return nil
}

func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true

	var errs []error
	if b.channel != nil {
		if err := b.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing channel: %w", err))
		}
		b.channel = nil
	}
	if b.conn != nil {
		if err := b.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing connection: %w", err))
		}
		b.conn = nil
	}
	return errors.Join(errs...)
}

func (b *Broker) HealthCheck() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil || b.conn.IsClosed() {
		return ErrBrokerClosed
	}
	if b.channel == nil {
		return fmt.Errorf("channel is nil")
	}
	return nil
}
