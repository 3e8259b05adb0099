package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
	"github.com/rafaelleal24/rocketshoes/internal/core/logger"
	"github.com/rafaelleal24/rocketshoes/internal/core/port"
)

const productCacheTTL = 15 * time.Minute

type CatalogService struct {
	catalog      port.CatalogPort
	productCache port.CachePort[domain.Product]
}

func NewCatalogService(catalog port.CatalogPort, productCache port.CachePort[domain.Product]) *CatalogService {
	return &CatalogService{catalog: catalog, productCache: productCache}
}

func (s *CatalogService) getCacheKey(id domain.ProductID) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *CatalogService) GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	cached, err := s.productCache.Get(ctx, s.getCacheKey(id))
	if err != nil {
		logger.Error(ctx, "cache: get product failed", err, map[string]any{
			"product_id": id,
		})
	}
	if cached != nil {
		logger.Debug(ctx, "product found in cache", map[string]any{
			"product_id": id,
		})
		return cached, nil
	}

	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Amount = 0

	if err := s.productCache.Set(ctx, s.getCacheKey(id), product, productCacheTTL); err != nil {
		logger.Error(ctx, "cache: set product failed", err, map[string]any{
			"product_id": id,
		})
	}

	return product, nil
}
