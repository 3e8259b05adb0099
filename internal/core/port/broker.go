package port

import "context"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// BrokerPort is an EventPort that can also relay pre-encoded payloads.
type BrokerPort interface {
	EventPort
	PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error
	Close() error
}
