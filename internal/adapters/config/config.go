package config

import (
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverFile  = "file"
	StorageDriverRedis = "redis"
	StorageDriverMongo = "mongo"

	EventsModeNone   = "none"
	EventsModeDirect = "direct"
	EventsModeOutbox = "outbox"
)

type CatalogAPIConfig struct {
	URL     string
	Timeout time.Duration
}

type StorageConfig struct {
	Driver   string
	FilePath string
}

type MongoConfig struct {
	URI                    string
	Database               string
	Timeout                time.Duration
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	AppName                string
}

type RabbitMQConfig struct {
	URL             string
	MaxRetries      int
	RetryDelay      time.Duration
	ExchangeConfigs []ExchangeConfig
}

type ExchangeConfig struct {
	Name       string
	Type       string // direct, topic, fanout, headers
	Durable    bool
	AutoDelete bool
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type OutboxConfig struct {
	BatchSize int
	Interval  time.Duration
}

type EventsConfig struct {
	Mode string
}

type NotifyConfig struct {
	Locale string
	Broker bool
}

type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

type HTTPConfig struct {
	Port          string
	BindInterface string
}

type Config struct {
	CatalogAPI CatalogAPIConfig
	Storage    StorageConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	RabbitMQ   RabbitMQConfig
	Outbox     OutboxConfig
	Events     EventsConfig
	Notify     NotifyConfig
	RateLimit  RateLimitConfig
	HTTP       HTTPConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Endpoint     string
	ServiceName  string
	IsProduction bool
	Level        string
	JSON         bool
}

// NeedsRedis reports whether any configured component talks to Redis.
func (c *Config) NeedsRedis() bool {
	return c.Storage.Driver == StorageDriverRedis || c.RateLimit.Enabled
}

func (c *Config) NeedsMongo() bool {
	return c.Storage.Driver == StorageDriverMongo || c.Events.Mode == EventsModeOutbox
}

func (c *Config) NeedsRabbitMQ() bool {
	return c.Events.Mode == EventsModeDirect || c.Events.Mode == EventsModeOutbox || c.Notify.Broker
}

func NewConfig() *Config {
	_ = godotenv.Load()
	return &Config{
		CatalogAPI: CatalogAPIConfig{
			URL:     getStringEnv("CATALOG_API_URL", "http://localhost:3333"),
			Timeout: getDurationEnv("CATALOG_API_TIMEOUT", 5*time.Second),
		},
		Storage: StorageConfig{
			Driver:   getStringEnv("STORAGE_DRIVER", StorageDriverFile),
			FilePath: getStringEnv("STORAGE_FILE_PATH", "data/storage.json"),
		},
		Mongo: MongoConfig{
			URI:                    getStringEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:               getStringEnv("MONGO_DATABASE", "rocketshoes"),
			Timeout:                time.Duration(getIntEnv("MONGO_TIMEOUT", 10)) * time.Second,
			MaxPoolSize:            uint64(getIntEnv("MONGO_MAX_POOL_SIZE", 100)),
			MinPoolSize:            uint64(getIntEnv("MONGO_MIN_POOL_SIZE", 10)),
			ConnectTimeout:         time.Duration(getIntEnv("MONGO_CONNECT_TIMEOUT", 10)) * time.Second,
			ServerSelectionTimeout: time.Duration(getIntEnv("MONGO_SERVER_SELECTION_TIMEOUT", 5)) * time.Second,
			AppName:                getStringEnv("MONGO_APP_NAME", "rocketshoes"),
		},
		Redis: RedisConfig{
			URL:      getStringEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getStringEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Outbox: OutboxConfig{
			BatchSize: getIntEnv("OUTBOX_BATCH_SIZE", 100),
			Interval:  time.Duration(getIntEnv("OUTBOX_INTERVAL", 500)) * time.Millisecond,
		},
		Events: EventsConfig{
			Mode: getStringEnv("EVENTS_MODE", EventsModeNone),
		},
		Notify: NotifyConfig{
			Locale: getStringEnv("NOTIFY_LOCALE", "en"),
			Broker: getBoolEnv("NOTIFY_BROKER", false),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolEnv("RATE_LIMIT_ENABLED", false),
			Limit:   getIntEnv("RATE_LIMIT_REQUESTS", 30),
			Window:  getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
		HTTP: HTTPConfig{
			Port:          getStringEnv("HTTP_PORT", "8080"),
			BindInterface: getStringEnv("HTTP_BIND_INTERFACE", "0.0.0.0"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getStringEnv("RABBITMQ_URL", "amqp://localhost:5672"),
			MaxRetries: getIntEnv("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay: time.Duration(getIntEnv("RABBITMQ_RETRY_DELAY", 1)) * time.Second,
			ExchangeConfigs: []ExchangeConfig{
				{
					Name:       getStringEnv("RABBITMQ_CART_EXCHANGE", "exchange.cart"),
					Type:       getStringEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
					Durable:    getBoolEnv("RABBITMQ_EXCHANGE_DURABLE", true),
					AutoDelete: getBoolEnv("RABBITMQ_EXCHANGE_AUTO_DELETE", false),
				},
				{
					Name:       getStringEnv("RABBITMQ_NOTIFICATION_EXCHANGE", "exchange.notification"),
					Type:       getStringEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
					Durable:    getBoolEnv("RABBITMQ_EXCHANGE_DURABLE", true),
					AutoDelete: getBoolEnv("RABBITMQ_EXCHANGE_AUTO_DELETE", false),
				},
			},
		},
		Logger: LoggerConfig{
			Endpoint:     getStringEnv("OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:  getStringEnv("OTEL_SERVICE_NAME", "rocketshoes"),
			IsProduction: getBoolEnv("IS_PRODUCTION", false),
			Level:        getStringEnv("LOG_LEVEL", "info"),
			JSON:         getBoolEnv("LOG_JSON", false),
		},
	}
}
