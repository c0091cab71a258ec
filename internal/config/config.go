package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Cache configuration
	Cache CacheConfig

	// Redis configuration
	Redis RedisConfig

	// Events configuration
	Events EventsConfig

	// NATS configuration
	NATS NATSConfig

	// Kafka configuration
	Kafka KafkaConfig

	// Storage configuration
	Storage StorageConfig

	// Payment configuration
	Payment PaymentConfig

	// Metrics configuration
	Metrics MetricsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            int
	Environment     string
	InstanceID      string
	LogLevel        string
	ShutdownTime    time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ProductsPerPage int
	MaxUploadSize   int64
	AllowedOrigins  []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver       string // postgres or sqlite
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	LogLevel     string
}

// CacheConfig selects the cache backend
type CacheConfig struct {
	Backend   string // memory or redis
	Broadcast bool   // fan invalidations out to peer instances over NATS
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
}

// EventsConfig selects where domain events are published
type EventsConfig struct {
	Broker string // local, nats or kafka
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL                 string
	ClientID            string
	MaxReconnect        int
	ReconnectWait       time.Duration
	InvalidationSubject string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Type      string // local or s3
	LocalPath string
	S3Config  S3Config
}

// S3Config holds S3 configuration
type S3Config struct {
	Bucket string
	Region string
	Prefix string
}

// PaymentConfig holds payment gateway configuration
type PaymentConfig struct {
	StripeSecretKey   string
	RazorpayKeyID     string
	RazorpayKeySecret string
	Currency          string
	BreakerTimeout    time.Duration
	BreakerMaxFailure uint32
}

// MetricsConfig holds Prometheus configuration
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	hostname, _ := os.Hostname()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvAsInt("PORT", 4000),
			Environment:     getEnv("ENVIRONMENT", "development"),
			InstanceID:      getEnv("INSTANCE_ID", hostname),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			ShutdownTime:    getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			ProductsPerPage: getEnvAsInt("PRODUCT_PER_PAGE", 8),
			MaxUploadSize:   int64(getEnvAsInt("MAX_UPLOAD_SIZE_MB", 10)) << 20,
			AllowedOrigins:  getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "postgres"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "storefront"),
			Password:     getEnv("DB_PASSWORD", "storefront"),
			Database:     getEnv("DB_NAME", "storefront"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			SQLitePath:   getEnv("DB_SQLITE_PATH", "storefront.db"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		Cache: CacheConfig{
			Backend:   getEnv("CACHE_BACKEND", "memory"),
			Broadcast: getEnvAsBool("CACHE_BROADCAST", false),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
			MaxRetries:   getEnvAsInt("REDIS_MAX_RETRIES", 3),
		},
		Events: EventsConfig{
			Broker: getEnv("EVENTS_BROKER", "local"),
		},
		NATS: NATSConfig{
			URL:                 getEnv("NATS_URL", "nats://localhost:4222"),
			ClientID:            fmt.Sprintf("storefront-%s", getEnv("HOSTNAME", "local")),
			MaxReconnect:        getEnvAsInt("NATS_MAX_RECONNECT", 60),
			ReconnectWait:       getEnvAsDuration("NATS_RECONNECT_WAIT", 2*time.Second),
			InvalidationSubject: getEnv("NATS_INVALIDATION_SUBJECT", "storefront.cache.invalidate"),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvAsSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC", "storefront-events"),
		},
		Storage: StorageConfig{
			Type:      getEnv("STORAGE_TYPE", "local"),
			LocalPath: getEnv("STORAGE_LOCAL_PATH", "uploads"),
			S3Config: S3Config{
				Bucket: getEnv("S3_BUCKET", "storefront-uploads"),
				Region: getEnv("S3_REGION", "us-east-1"),
				Prefix: getEnv("S3_PREFIX", "products"),
			},
		},
		Payment: PaymentConfig{
			StripeSecretKey:   getEnv("STRIPE_KEY", ""),
			RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
			Currency:          strings.ToLower(getEnv("PAYMENT_CURRENCY", "inr")),
			BreakerTimeout:    getEnvAsDuration("PAYMENT_BREAKER_TIMEOUT", 30*time.Second),
			BreakerMaxFailure: uint32(getEnvAsInt("PAYMENT_BREAKER_MAX_FAILURES", 5)),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.ProductsPerPage <= 0 {
		return fmt.Errorf("PRODUCT_PER_PAGE must be positive, got %d", c.Server.ProductsPerPage)
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported cache backend %q", c.Cache.Backend)
	}

	switch c.Events.Broker {
	case "local", "nats", "kafka":
	default:
		return fmt.Errorf("unsupported events broker %q", c.Events.Broker)
	}

	switch c.Storage.Type {
	case "local", "s3":
	default:
		return fmt.Errorf("unsupported storage type %q", c.Storage.Type)
	}

	if c.Cache.Broadcast && c.Cache.Backend == "redis" {
		return fmt.Errorf("CACHE_BROADCAST only applies to the memory cache backend")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	parts := strings.Split(strValue, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}

// DSN returns the database connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode)
}
