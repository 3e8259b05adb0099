package port

import (
	"context"

	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type EventPort interface {
	Publish(ctx context.Context, event domain.Event) error
}
