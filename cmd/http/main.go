package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rafaelleal24/rocketshoes/docs"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/api"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/config"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/events"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/file"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/http"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/http/controllers"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/http/middleware"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/memory"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/mongo"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/notifier"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/outbox"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/redis"
	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
	"github.com/rafaelleal24/rocketshoes/internal/core/logger"
	"github.com/rafaelleal24/rocketshoes/internal/core/messages"
	"github.com/rafaelleal24/rocketshoes/internal/core/port"
	"github.com/rafaelleal24/rocketshoes/internal/core/service"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// @title       RocketShoes Cart API
// @version     1.0
// @description Shopping cart with stock checks against the catalog API

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	err := logger.Initialize(logger.Options{
		Endpoint:     cfg.Logger.Endpoint,
		ServiceName:  cfg.Logger.ServiceName,
		IsProduction: cfg.Logger.IsProduction,
		Level:        logger.ParseLevel(cfg.Logger.Level),
		JSON:         cfg.Logger.JSON,
	})
	if err != nil {
		// logger not available yet, fall back to stderr
		fmt.Fprintln(os.Stderr, "failed to initialize logger: "+err.Error())
		os.Exit(1)
	}

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalogAPI := api.NewClient(cfg.CatalogAPI)
	checkers := []controllers.HealthChecker{
		{Name: "catalog_api", Check: catalogAPI.Ping},
	}

	// optional infrastructure, connected only when a component needs it
	var redisClient *redis.Client
	if cfg.NeedsRedis() {
		redisClient, err = redis.NewConnection(cfg.Redis)
		if err != nil {
			logger.Fatal(ctx, "Failed to connect to Redis", err, nil)
		}
		defer redisClient.Close()
		checkers = append(checkers, controllers.HealthChecker{Name: "redis", Check: redisClient.Ping})
		logger.Info(ctx, "Connected to Redis", nil)
	}

	var mongoDatabase *mongodriver.Database
	if cfg.NeedsMongo() {
		mongoClient, err := mongo.NewConnection(cfg.Mongo)
		if err != nil {
			logger.Fatal(ctx, "Failed to connect to MongoDB", err, nil)
		}
		defer mongo.Disconnect(mongoClient)
		mongoDatabase = mongoClient.Database(cfg.Mongo.Database)
		if err := mongo.EnsureIndexes(ctx, mongoDatabase); err != nil {
			logger.Fatal(ctx, "Failed to create MongoDB indexes", err, nil)
		}
		checkers = append(checkers, controllers.HealthChecker{
			Name:  "mongodb",
			Check: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
		})
		logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})
	}

	var broker *rabbitmq.Broker
	if cfg.NeedsRabbitMQ() {
		broker, err = rabbitmq.NewBroker(cfg.RabbitMQ)
		if err != nil {
			logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
		}
		defer broker.Close()
		checkers = append(checkers, controllers.HealthChecker{
			Name:  "rabbitmq",
			Check: func(context.Context) error { return broker.HealthCheck() },
		})
		logger.Info(ctx, "Connected to RabbitMQ", nil)
	}

	// cart storage
	var storage port.StoragePort
	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		storage = redis.NewStorage(redisClient)
	case config.StorageDriverMongo:
		storage = repository.NewKVRepository(mongoDatabase)
	case config.StorageDriverFile:
		fileStorage, err := file.NewStorage(cfg.Storage.FilePath)
		if err != nil {
			logger.Fatal(ctx, "Failed to open storage file", err, map[string]any{"path": cfg.Storage.FilePath})
		}
		storage = fileStorage
	default:
		logger.Fatal(ctx, "Unknown storage driver", nil, map[string]any{"driver": cfg.Storage.Driver})
	}
	logger.Info(ctx, "Cart storage ready", map[string]any{"driver": cfg.Storage.Driver})

	// caches and rate limiter
	var (
		productCache     port.CachePort[domain.Product]
		idempotencyCache port.CachePort[service.IdempotencyEntry[domain.Cart]]
		rateLimiter      middleware.RateLimiter
	)
	if redisClient != nil {
		productCache = redis.NewCache[domain.Product](redisClient, "product-cache")
		idempotencyCache = redis.NewCache[service.IdempotencyEntry[domain.Cart]](redisClient, "idempotency-cache")
		rateLimiter = redis.NewRateLimiter(redisClient)
	} else {
		productCache = memory.NewCache[domain.Product]()
		idempotencyCache = memory.NewCache[service.IdempotencyEntry[domain.Cart]]()
	}

	// cart events
	var eventPublisher port.EventPort
	switch cfg.Events.Mode {
	case config.EventsModeDirect:
		eventPublisher = broker
	case config.EventsModeOutbox:
		outboxRepository := repository.NewOutboxRepository(mongoDatabase)
		eventPublisher = outbox.NewPublisher(outboxRepository)

		// outbox handler (uses cancellable context)
		outboxHandler := outbox.NewHandler(outboxRepository, broker, cfg.Outbox)
		go outboxHandler.Start(ctx)
		logger.Info(ctx, "Outbox handler started", map[string]any{"interval": cfg.Outbox.Interval.String(), "batch_size": cfg.Outbox.BatchSize})
	default:
		eventPublisher = events.NewLogPublisher()
	}

	// notifications
	notifiers := notifier.Multi{notifier.NewLogNotifier()}
	if cfg.Notify.Broker {
		notifiers = append(notifiers, notifier.NewBrokerNotifier(broker))
	}
	catalogMessages := messages.NewCatalog(cfg.Notify.Locale)
	logger.Info(ctx, "Notification locale selected", map[string]any{"locale": catalogMessages.Language().String()})

	// services
	catalogService := service.NewCatalogService(catalogAPI, productCache)
	idempotencyService := service.NewIdempotencyService(idempotencyCache, "cart-add", 15*time.Minute, 100*time.Millisecond, 5*time.Second)
	cartService, err := service.NewCartService(ctx, catalogAPI, catalogService, storage, notifiers, eventPublisher, idempotencyService, catalogMessages)
	if err != nil {
		logger.Fatal(ctx, "Failed to recover cart", err, nil)
	}

	// controllers
	cartController := controllers.NewCartController(cartService, catalogMessages)
	healthController := controllers.NewHealthController(checkers)

	// router
	router := http.NewRouter(healthController, cartController, rateLimiter, cfg.RateLimit)

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]any{"signal": sig.String()})
		cancel()
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	if err := router.ListenAndServe(ctx, cfg.HTTP); err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := logger.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintln(os.Stderr, "logger shutdown error: "+err.Error())
	}
}
