package port

import (
	"context"

	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// CatalogPort fetches product records. Returned products have a zero Amount.
type CatalogPort interface {
	GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error)
}

// StockPort reports upstream availability. It is authoritative and must not be cached.
type StockPort interface {
	GetStock(ctx context.Context, id domain.ProductID) (*domain.Stock, error)
}
