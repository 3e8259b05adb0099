package notifier

import (
	"context"

	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
	"github.com/rafaelleal24/rocketshoes/internal/core/logger"
	"github.com/rafaelleal24/rocketshoes/internal/core/port"
)

// LogNotifier writes notifications to the application log.
type LogNotifier struct{}

func NewLogNotifier() port.NotifierPort {
	return LogNotifier{}
}

func (LogNotifier) Notify(ctx context.Context, notification domain.Notification) {
	attrs := map[string]any{
		"notification.level":   string(notification.Level),
		"notification.message": notification.Message,
	}
	if notification.ProductID != 0 {
		attrs["product_id"] = notification.ProductID
	}

	if notification.Level == domain.NotificationError {
		logger.Warn(ctx, "notification", attrs)
		return
	}
	logger.Info(ctx, "notification", attrs)
}

// BrokerNotifier publishes notifications as events so a front end can
// subscribe to them. Publish failures are logged and otherwise ignored.
type BrokerNotifier struct {
	events port.EventPort
}

func NewBrokerNotifier(events port.EventPort) port.NotifierPort {
	return &BrokerNotifier{events: events}
}

func (n *BrokerNotifier) Notify(ctx context.Context, notification domain.Notification) {
	if err := n.events.Publish(ctx, &notification); err != nil {
		logger.Error(ctx, "notifier: publish failed", err, map[string]any{
			"notification.level":   string(notification.Level),
			"notification.message": notification.Message,
		})
	}
}

// Multi delivers each notification to every notifier in order.
type Multi []port.NotifierPort

func (m Multi) Notify(ctx context.Context, notification domain.Notification) {
	for _, n := range m {
		n.Notify(ctx, notification)
	}
}
