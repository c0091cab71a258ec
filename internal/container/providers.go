package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/narwhalmedia/storefront/internal/cache"
	"github.com/narwhalmedia/storefront/internal/config"
	dashboardhandler "github.com/narwhalmedia/storefront/internal/dashboard/handler"
	"github.com/narwhalmedia/storefront/internal/httpapi"
	"github.com/narwhalmedia/storefront/internal/infrastructure/events/kafka"
	"github.com/narwhalmedia/storefront/internal/infrastructure/events/nats"
	"github.com/narwhalmedia/storefront/internal/infrastructure/storage"
	orderhandler "github.com/narwhalmedia/storefront/internal/order/handler"
	paymentdomain "github.com/narwhalmedia/storefront/internal/payment/domain"
	"github.com/narwhalmedia/storefront/internal/payment/gateway"
	paymenthandler "github.com/narwhalmedia/storefront/internal/payment/handler"
	paymentrepo "github.com/narwhalmedia/storefront/internal/payment/repository"
	paymentservice "github.com/narwhalmedia/storefront/internal/payment/service"
	producthandler "github.com/narwhalmedia/storefront/internal/product/handler"
	productrepo "github.com/narwhalmedia/storefront/internal/product/repository"
	productservice "github.com/narwhalmedia/storefront/internal/product/service"
	userhandler "github.com/narwhalmedia/storefront/internal/user/handler"
	userrepo "github.com/narwhalmedia/storefront/internal/user/repository"
	"github.com/narwhalmedia/storefront/pkg/database"
	"github.com/narwhalmedia/storefront/pkg/events"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
	"github.com/narwhalmedia/storefront/pkg/logger"
)

// App holds everything the server binary runs
type App struct {
	Config  *config.Config
	Logger  *logger.ZapLogger
	DB      *gorm.DB
	Handler http.Handler
}

// ProvideZap exposes the zap logger infrastructure adapters log with
func ProvideZap(log *logger.ZapLogger) *zap.Logger {
	return log.Zap()
}

// ProvideDatabase connects to the configured database and applies pending
// migrations
func ProvideDatabase(cfg *config.Config, log interfaces.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGormDB(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		SQLitePath:      cfg.Database.SQLitePath,
		MaxConnections:  cfg.Database.MaxOpenConns,
		MinConnections:  cfg.Database.MaxIdleConns,
		MaxConnLifetime: cfg.Database.MaxLifetime,
		MaxConnIdleTime: cfg.Database.MaxLifetime,
		LogLevel:        database.ParseLogLevel(cfg.Database.LogLevel),
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if err := database.RunMigrations(db, log); err != nil {
		cleanup()
		return nil, nil, err
	}

	log.Info("Connected to database", interfaces.String("driver", cfg.Database.Driver))
	return db, cleanup, nil
}

// ProvideRegistry creates the Prometheus registry served on the metrics path
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideCacheMetrics registers the cache collectors
func ProvideCacheMetrics(reg *prometheus.Registry) *cache.Metrics {
	return cache.NewMetrics(reg)
}

// ProvideCache creates the configured cache backend wrapped with metrics
func ProvideCache(ctx context.Context, cfg *config.Config, metrics *cache.Metrics, log interfaces.Logger) (interfaces.Cache, func(), error) {
	switch cfg.Cache.Backend {
	case "redis":
		store, err := cache.NewRedisStore(ctx, cfg.Redis, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using redis cache", interfaces.String("addr", cfg.Redis.Addr))
		return cache.NewInstrumentedStore(store, metrics), func() { _ = store.Close() }, nil
	default:
		log.Info("Using in-memory cache")
		return cache.NewInstrumentedStore(cache.NewMemoryStore(), metrics), func() {}, nil
	}
}

// ProvideNATS connects to NATS when domain events or cache invalidations
// travel over it. The client is nil otherwise.
func ProvideNATS(cfg *config.Config, log *zap.Logger) (*nats.Client, func(), error) {
	if cfg.Events.Broker != "nats" && !cfg.Cache.Broadcast {
		return nil, func() {}, nil
	}
	return nats.NewClient(cfg, log)
}

// ProvidePublisher creates the domain event publisher for the configured
// broker
func ProvidePublisher(cfg *config.Config, client *nats.Client, zlog *zap.Logger, log interfaces.Logger) (interfaces.EventPublisher, func(), error) {
	switch cfg.Events.Broker {
	case "nats":
		return nats.NewPublisher(client, zlog), func() {}, nil
	case "kafka":
		publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, zlog)
		if err != nil {
			return nil, nil, err
		}
		return publisher, func() { _ = publisher.Close() }, nil
	default:
		bus := events.NewInMemoryEventBus(log)
		if err := bus.Subscribe(events.Wildcard, events.NewAuditHandler(log)); err != nil {
			return nil, nil, err
		}
		return bus, func() {}, nil
	}
}

// ProvideInvalidator creates the invalidator. With broadcast enabled every
// invalidation is relayed to peer instances and theirs are applied here.
func ProvideInvalidator(
	ctx context.Context,
	cfg *config.Config,
	store interfaces.Cache,
	metrics *cache.Metrics,
	client *nats.Client,
	zlog *zap.Logger,
	log interfaces.Logger,
) (*cache.Invalidator, func(), error) {
	invalidator := cache.NewInvalidator(store, log).WithMetrics(metrics)
	if !cfg.Cache.Broadcast {
		return invalidator, func() {}, nil
	}

	relay := nats.NewInvalidationRelay(client.Connection(), cfg.NATS.InvalidationSubject, cfg.Server.InstanceID, zlog)
	invalidator.WithBroadcaster(relay)
	if err := relay.Start(ctx, invalidator); err != nil {
		return nil, nil, err
	}
	return invalidator, func() { _ = relay.Stop() }, nil
}

// ProvidePhotoStorage creates the configured photo storage
func ProvidePhotoStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (productservice.PhotoStorage, error) {
	switch cfg.Storage.Type {
	case "s3":
		return storage.NewS3Storage(ctx, cfg.Storage.S3Config.Bucket, cfg.Storage.S3Config.Prefix, cfg.Storage.S3Config.Region, log)
	default:
		return storage.NewLocalStorage(cfg.Storage.LocalPath, log)
	}
}

// ProvideGateways creates a breaker guarded gateway per configured party
func ProvideGateways(cfg *config.Config, log *zap.Logger) map[paymentdomain.Party]gateway.Gateway {
	gateways := make(map[paymentdomain.Party]gateway.Gateway)
	breaker := func(name string, next gateway.Gateway) gateway.Gateway {
		return gateway.NewBreaker(next, gateway.BreakerConfig{
			Name:        name,
			MaxFailures: cfg.Payment.BreakerMaxFailure,
			Timeout:     cfg.Payment.BreakerTimeout,
		}, log)
	}

	if cfg.Payment.StripeSecretKey != "" {
		gateways[paymentdomain.PartyStripe] = breaker("stripe", gateway.NewStripe(cfg.Payment.StripeSecretKey, log))
	}
	if cfg.Payment.RazorpayKeyID != "" {
		gateways[paymentdomain.PartyRazorpay] = breaker("razorpay",
			gateway.NewRazorpay(cfg.Payment.RazorpayKeyID, cfg.Payment.RazorpayKeySecret, log))
	}
	if len(gateways) == 0 {
		log.Warn("No payment gateway configured")
	}
	return gateways
}

// ProvideProductService applies the configured page size
func ProvideProductService(
	cfg *config.Config,
	repo productrepo.Repository,
	photos productservice.PhotoStorage,
	store interfaces.Cache,
	invalidator *cache.Invalidator,
	publisher interfaces.EventPublisher,
	log interfaces.Logger,
) *productservice.ProductService {
	return productservice.NewProductService(repo, photos, store, invalidator, publisher, log, cfg.Server.ProductsPerPage)
}

// ProvidePaymentService applies the configured currency
func ProvidePaymentService(
	cfg *config.Config,
	repo paymentrepo.Repository,
	gateways map[paymentdomain.Party]gateway.Gateway,
	publisher interfaces.EventPublisher,
	log interfaces.Logger,
) *paymentservice.PaymentService {
	return paymentservice.NewPaymentService(repo, gateways, cfg.Payment.Currency, publisher, log)
}

// ProvideProductHandler applies the configured upload limit
func ProvideProductHandler(cfg *config.Config, svc *productservice.ProductService) *producthandler.HTTPHandler {
	return producthandler.NewHTTPHandler(svc, cfg.Server.MaxUploadSize)
}

// ProvideRouter mounts every module
func ProvideRouter(
	cfg *config.Config,
	log interfaces.Logger,
	db *gorm.DB,
	reg *prometheus.Registry,
	users *userrepo.GormRepository,
	user *userhandler.HTTPHandler,
	product *producthandler.HTTPHandler,
	order *orderhandler.HTTPHandler,
	payment *paymenthandler.HTTPHandler,
	dashboard *dashboardhandler.HTTPHandler,
) http.Handler {
	opts := httpapi.Options{
		Logger:         log,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Users:          users,
		Ready: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("failed to get database handle: %w", err)
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
		opts.Gatherer = reg
		opts.Metrics = httpapi.NewRequestMetrics(reg)
	}
	if cfg.Storage.Type == "local" {
		opts.UploadsDir = cfg.Storage.LocalPath
	}

	return httpapi.NewRouter(opts, user, product, order, payment, dashboard)
}
