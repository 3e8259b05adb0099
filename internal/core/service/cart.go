package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
	"github.com/rafaelleal24/rocketshoes/internal/core/dto"
	"github.com/rafaelleal24/rocketshoes/internal/core/logger"
	"github.com/rafaelleal24/rocketshoes/internal/core/messages"
	"github.com/rafaelleal24/rocketshoes/internal/core/port"
	"github.com/rafaelleal24/rocketshoes/internal/core/serviceerrors"
)

const CartStorageKey = "@RocketShoes:cart"

type UpdateProductAmount struct {
	ProductID domain.ProductID
	Amount    int
}

// CartService owns the cart. Network calls run without holding mu; every
// mutation re-reads the committed cart under mu, persists the new snapshot and
// only then commits it, so storage writes happen in commit order.
type CartService struct {
	mu   sync.Mutex
	cart domain.Cart

	stock       port.StockPort
	catalog     *CatalogService
	storage     port.StoragePort
	notifier    port.NotifierPort
	events      port.EventPort
	idempotency *IdempotencyService[domain.Cart]
	messages    *messages.Catalog
}

func NewCartService(
	ctx context.Context,
	stock port.StockPort,
	catalog *CatalogService,
	storage port.StoragePort,
	notifier port.NotifierPort,
	events port.EventPort,
	idempotency *IdempotencyService[domain.Cart],
	catalogMessages *messages.Catalog,
) (*CartService, error) {
	cart, err := recoverCart(ctx, storage)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Cart recovered", map[string]any{
		"cart_size": cart.Size(),
	})

	return &CartService{
		cart:        cart,
		stock:       stock,
		catalog:     catalog,
		storage:     storage,
		notifier:    notifier,
		events:      events,
		idempotency: idempotency,
		messages:    catalogMessages,
	}, nil
}

func recoverCart(ctx context.Context, storage port.StoragePort) (domain.Cart, error) {
	raw, found, err := storage.Get(ctx, CartStorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to recover cart: %w", err)
	}
	if !found {
		return domain.Cart{}, nil
	}

	cart, err := dto.DecodeCart(raw)
	if err != nil {
		logger.Error(ctx, "cart: stored snapshot is unreadable, starting empty", err, map[string]any{
			"key": CartStorageKey,
		})
		return domain.Cart{}, nil
	}

	cart, dropped := cart.Normalize()
	if dropped > 0 {
		logger.Warn(ctx, "cart: dropped invalid entries from stored snapshot", map[string]any{
			"dropped": dropped,
		})
	}
	return cart, nil
}

// Cart returns a copy of the committed cart.
func (s *CartService) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *CartService) AddProduct(ctx context.Context, productID domain.ProductID) error {
	failMessage := s.messages.Get(messages.AddFailed)

	stock, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		return s.fail(ctx, productID, serviceerrors.NewCollaboratorFailureError(failMessage, err))
	}

	seen, inCart := s.Cart().Find(productID)

	var record *domain.Product
	if !inCart {
		if stock.Amount <= 0 {
			return s.fail(ctx, productID, s.outOfStock())
		}
		record, err = s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return s.fail(ctx, productID, serviceerrors.NewCollaboratorFailureError(failMessage, err))
		}
	} else {
		record = &seen
	}

	cart, err := s.commit(ctx, domain.CartProductAdded, productID, func(cart domain.Cart) (domain.Cart, error) {
		if existing, ok := cart.Find(productID); ok {
			return s.withCheckedAmount(cart, productID, existing.Amount+1, stock)
		}
		if stock.Amount <= 0 {
			return nil, s.outOfStock()
		}
		product := *record
		product.ID = productID
		return cart.WithProduct(product, 1), nil
	})
	if err != nil {
		return s.fail(ctx, productID, err)
	}

	s.succeed(ctx, productID, messages.ProductAdded, domain.CartProductAdded, cart)
	return nil
}

// AddProductWithKey is AddProduct for clients that retry: requests sharing an
// idempotency key are applied once and later ones get the resulting cart back.
func (s *CartService) AddProductWithKey(ctx context.Context, idempotencyKey string, productID domain.ProductID) (domain.Cart, error) {
	cart, err := s.idempotency.Do(ctx, idempotencyKey, productID, func(ctx context.Context) (*domain.Cart, error) {
		if err := s.AddProduct(ctx, productID); err != nil {
			return nil, err
		}
		cart := s.Cart()
		return &cart, nil
	})
	if err != nil {
		return nil, err
	}
	return *cart, nil
}

func (s *CartService) RemoveProduct(ctx context.Context, productID domain.ProductID) error {
	failMessage := s.messages.Get(messages.RemoveFailed)

	cart, err := s.commit(ctx, domain.CartProductRemoved, productID, func(cart domain.Cart) (domain.Cart, error) {
		if _, ok := cart.Find(productID); !ok {
			return nil, serviceerrors.NewNotFoundError(failMessage)
		}
		return cart.WithoutProduct(productID), nil
	})
	if err != nil {
		return s.fail(ctx, productID, err)
	}

	s.succeed(ctx, productID, messages.ProductRemoved, domain.CartProductRemoved, cart)
	return nil
}

// UpdateProductAmount sets the quantity of a product already in the cart.
// Amounts below one are ignored without error or notification.
func (s *CartService) UpdateProductAmount(ctx context.Context, request UpdateProductAmount) error {
	if request.Amount <= 0 {
		return nil
	}

	failMessage := s.messages.Get(messages.UpdateFailed)

	stock, err := s.stock.GetStock(ctx, request.ProductID)
	if err != nil {
		return s.fail(ctx, request.ProductID, serviceerrors.NewCollaboratorFailureError(failMessage, err))
	}
	if !stock.Covers(request.Amount) {
		return s.fail(ctx, request.ProductID, s.outOfStock())
	}

	cart, err := s.commit(ctx, domain.CartProductAmountUpdated, request.ProductID, func(cart domain.Cart) (domain.Cart, error) {
		next, ok := cart.WithAmount(request.ProductID, request.Amount)
		if !ok {
			return nil, serviceerrors.NewNotFoundError(failMessage)
		}
		return next, nil
	})
	if err != nil {
		return s.fail(ctx, request.ProductID, err)
	}

	s.succeed(ctx, request.ProductID, messages.ProductAmountUpdated, domain.CartProductAmountUpdated, cart)
	return nil
}

func (s *CartService) withCheckedAmount(cart domain.Cart, productID domain.ProductID, amount int, stock *domain.Stock) (domain.Cart, error) {
	if !stock.Covers(amount) {
		return nil, s.outOfStock()
	}
	next, _ := cart.WithAmount(productID, amount)
	return next, nil
}

func (s *CartService) outOfStock() error {
	return serviceerrors.NewOutOfStockError(s.messages.Get(messages.OutOfStock))
}

// commit applies mutate to the current cart and makes the result the new
// committed cart once it has been written to storage. The cart event is
// published before the lock is released so events leave in commit order.
func (s *CartService) commit(ctx context.Context, eventType domain.CartEventType, productID domain.ProductID, mutate func(domain.Cart) (domain.Cart, error)) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := mutate(s.cart)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, next); err != nil {
		return nil, serviceerrors.NewStorageFailureError(s.messages.Get(messages.PersistFailed), err)
	}

	s.cart = next
	s.publish(ctx, eventType, productID, next)
	return next.Clone(), nil
}

// publish reports the change to the event port. A removed product is
// reported with amount zero.
func (s *CartService) publish(ctx context.Context, eventType domain.CartEventType, productID domain.ProductID, cart domain.Cart) {
	product, _ := cart.Find(productID)
	if err := s.events.Publish(ctx, domain.NewCartChangedEvent(eventType, productID, product.Amount, cart)); err != nil {
		logger.Error(ctx, "cart: publish event failed", err, map[string]any{
			"event":      string(eventType),
			"product_id": productID,
		})
	}
}

func (s *CartService) persist(ctx context.Context, cart domain.Cart) error {
	raw, err := dto.EncodeCart(cart)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, CartStorageKey, raw); err != nil {
		logger.Error(ctx, "cart: persist failed", err, map[string]any{
			"key":       CartStorageKey,
			"cart_size": cart.Size(),
		})
		return err
	}
	return nil
}

func (s *CartService) fail(ctx context.Context, productID domain.ProductID, err error) error {
	message := s.messages.Get(messages.UpdateFailed)
	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}

	logger.Warn(ctx, "cart: operation rejected", map[string]any{
		"product_id": productID,
		"reason":     err.Error(),
	})
	s.notifier.Notify(ctx, domain.NewErrorNotification(productID, message))
	return err
}

func (s *CartService) succeed(ctx context.Context, productID domain.ProductID, key messages.Key, eventType domain.CartEventType, cart domain.Cart) {
	product, _ := cart.Find(productID)
	logger.Info(ctx, "Cart updated", map[string]any{
		"event":      string(eventType),
		"product_id": productID,
		"amount":     product.Amount,
		"cart_size":  cart.Size(),
	})
	s.notifier.Notify(ctx, domain.NewSuccessNotification(productID, s.messages.Get(key)))
}
