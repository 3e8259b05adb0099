package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
	"github.com/rafaelleal24/rocketshoes/internal/core/port/mock"
	"go.uber.org/mock/gomock"
)

func setupCatalogService(t *testing.T) (*CatalogService, *mock.MockCatalogPort, *mock.MockCachePort[domain.Product]) {
	ctrl := gomock.NewController(t)
	catalog := mock.NewMockCatalogPort(ctrl)
	cache := mock.NewMockCachePort[domain.Product](ctrl)
	return NewCatalogService(catalog, cache), catalog, cache
}

func TestCatalogService_GetProduct(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		svc, _, cache := setupCatalogService(t)
		cached := &domain.Product{ID: 1, Title: "Tênis", Price: 17990}

		cache.EXPECT().
			Get(gomock.Any(), "product:1").
			Return(cached, nil)

		product, err := svc.GetProduct(context.Background(), 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if product.Title != "Tênis" {
			t.Fatalf("expected cached product, got %+v", product)
		}
	})

	t.Run("cache miss - fetches from catalog and caches", func(t *testing.T) {
		svc, catalog, cache := setupCatalogService(t)
		fetched := &domain.Product{ID: 2, Title: "Tênis VR", Price: 13990}

		cache.EXPECT().
			Get(gomock.Any(), "product:2").
			Return(nil, nil)
		catalog.EXPECT().
			GetProduct(gomock.Any(), domain.ProductID(2)).
			Return(fetched, nil)
		cache.EXPECT().
			Set(gomock.Any(), "product:2", fetched, productCacheTTL).
			Return(nil)

		product, err := svc.GetProduct(context.Background(), 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if product.ID != 2 {
			t.Fatalf("expected product 2, got %d", product.ID)
		}
	})

	t.Run("cache errors do not fail the lookup", func(t *testing.T) {
		svc, catalog, cache := setupCatalogService(t)

		cache.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("redis error"))
		catalog.EXPECT().
			GetProduct(gomock.Any(), domain.ProductID(3)).
			Return(&domain.Product{ID: 3}, nil)
		cache.EXPECT().
			Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("redis error"))

		product, err := svc.GetProduct(context.Background(), 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if product.ID != 3 {
			t.Fatalf("expected product 3, got %d", product.ID)
		}
	})

	t.Run("catalog error", func(t *testing.T) {
		svc, catalog, cache := setupCatalogService(t)

		cache.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(nil, nil)
		catalog.EXPECT().
			GetProduct(gomock.Any(), domain.ProductID(4)).
			Return(nil, errors.New("503 service unavailable"))

		product, err := svc.GetProduct(context.Background(), 4)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if product != nil {
			t.Fatal("expected nil product on error")
		}
	})
}
