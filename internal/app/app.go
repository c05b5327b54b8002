// Package app wires together all dependencies and runs the storefront.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rechevshop/storefront/internal/catalog"
	"github.com/rechevshop/storefront/internal/compat"
	"github.com/rechevshop/storefront/internal/config"
	"github.com/rechevshop/storefront/internal/event"
	handler "github.com/rechevshop/storefront/internal/handler/http"
	"github.com/rechevshop/storefront/internal/registry"
	redisrepo "github.com/rechevshop/storefront/internal/repository/redis"
	"github.com/rechevshop/storefront/internal/service"
	"github.com/rechevshop/storefront/pkg/health"
	"github.com/rechevshop/storefront/pkg/httpclient"
	pkgkafka "github.com/rechevshop/storefront/pkg/kafka"
)

// App holds the storefront's long-lived resources.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Redis holds the per-session cart, vehicle, and auth state.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// External collaborators, each behind its own circuit breaker so a
	// registry outage does not trip catalog calls.
	httpc := httpclient.New(httpclient.DefaultConfig())
	catalogClient := catalog.NewClient(
		httpclient.NewCircuitBreakerClient(httpc, httpclient.DefaultCircuitBreakerConfig("catalog"), logger),
		catalog.Config{
			BaseURL:        cfg.CatalogBaseURL,
			ConsumerKey:    cfg.CatalogConsumerKey,
			ConsumerSecret: cfg.CatalogConsumerSecret,
		},
		logger,
	)
	registryClient := registry.NewClient(
		httpclient.NewCircuitBreakerClient(httpc, httpclient.DefaultCircuitBreakerConfig("registry"), logger),
		registry.Config{
			BaseURL:    cfg.RegistryBaseURL,
			ResourceID: cfg.RegistryResourceID,
		},
		logger,
	)

	// Build the dependency graph.
	carts := redisrepo.NewCartRepository(rdb, cfg.CartTTL)
	vehicles := redisrepo.NewVehicleRepository(rdb, cfg.SessionTTL)
	auth := redisrepo.NewAuthRepository(rdb, cfg.SessionTTL)

	publisher := event.NewPublisher(producer, logger)
	matcher := compat.NewMatcher(cfg.EmptyPolicy())

	authService := service.NewAuthService(auth, logger)
	vehicleService := service.NewVehicleService(vehicles, registryClient, publisher, logger)
	cartService := service.NewCartService(carts, publisher, logger)
	catalogService := service.NewCatalogService(catalogClient, vehicles, matcher, logger)
	checkoutService := service.NewCheckoutService(carts, auth, catalogClient, publisher, logger)

	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", producer.Ping)

	router := handler.NewRouter(handler.RouterConfig{
		AuthService:     authService,
		VehicleService:  vehicleService,
		CartService:     cartService,
		CatalogService:  catalogService,
		CheckoutService: checkoutService,
		HealthHandler:   healthHandler,
		Logger:          logger,
		CORSOrigins:     cfg.CORSAllowedOrigins,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("environment", a.cfg.Environment),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.logger.Info("shutdown complete")
	return nil
}
