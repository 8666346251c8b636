package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/andremartins/storefront-backend/api/routes"
	"github.com/andremartins/storefront-backend/internal/cart"
	"github.com/andremartins/storefront-backend/internal/catalog"
	"github.com/andremartins/storefront-backend/internal/favorites"
	"github.com/andremartins/storefront-backend/internal/localstore"
	"github.com/andremartins/storefront-backend/internal/orders"
	"github.com/andremartins/storefront-backend/internal/remote"
	"github.com/andremartins/storefront-backend/pkg/config"
	"github.com/andremartins/storefront-backend/pkg/db"
	"github.com/andremartins/storefront-backend/pkg/logger"
	"github.com/andremartins/storefront-backend/pkg/metrics"
	"github.com/andremartins/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, closeStore, err := newLocalStore(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap state store", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logg.Error(context.Background(), "error closing state store", err)
		}
	}()

	remoteClient := remote.NewMock(cfg.Remote)

	catalogService, err := catalog.NewService(remoteClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	if err := catalogService.Load(context.Background()); err != nil {
		// The storefront still serves; the catalog stays empty until an
		// explicit refresh succeeds.
		logg.Error(context.Background(), "initial catalog load failed", err)
	}

	cartService, err := cart.NewService(cart.ServiceParams{Catalog: catalogService, Store: store})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	favoritesService, err := favorites.NewService(favorites.ServiceParams{Catalog: catalogService, Store: store})
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}
	checkoutService, err := orders.NewService(orders.ServiceParams{Cart: cartService, Remote: remoteClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.LocalStore.NormalizedBackend(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			httpMetrics,
			store,
			remoteClient,
			catalogService,
			cartService,
			favoritesService,
			checkoutService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// newLocalStore selects the session state backend from config and returns it
// with a close func aggregating the underlying client shutdowns.
func newLocalStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (localstore.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.LocalStore.NormalizedBackend() {
	case config.LocalStoreMemory:
		return localstore.NewMemoryStore(), noop, nil

	case config.LocalStoreSQLite:
		dbClient, err := db.New(ctx, cfg.LocalStore, logg)
		if err != nil {
			return nil, noop, err
		}
		store, err := localstore.NewGormStore(dbClient.DB())
		if err != nil {
			return nil, noop, multierr.Append(err, dbClient.Close())
		}
		return store, dbClient.Close, nil

	case config.LocalStoreRedis:
		redisClient, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		store, err := localstore.NewRedisStore(redisClient)
		if err != nil {
			return nil, noop, multierr.Append(err, redisClient.Close())
		}
		return store, redisClient.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown localstore backend %q", cfg.LocalStore.Backend)
}
