package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mickytroxxy/bluegrass/api/controllers"
	"github.com/mickytroxxy/bluegrass/api/routes"
	"github.com/mickytroxxy/bluegrass/internal/account"
	"github.com/mickytroxxy/bluegrass/internal/cart"
	"github.com/mickytroxxy/bluegrass/internal/catalog"
	checkoutsvc "github.com/mickytroxxy/bluegrass/internal/checkout"
	"github.com/mickytroxxy/bluegrass/internal/state"
	"github.com/mickytroxxy/bluegrass/pkg/config"
	"github.com/mickytroxxy/bluegrass/pkg/logger"
	"github.com/mickytroxxy/bluegrass/pkg/metrics"
	"github.com/mickytroxxy/bluegrass/pkg/redis"
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

	var persister state.Persister
	var readyPingers []controllers.Pinger
	switch cfg.Persist.Backend {
	case config.PersistBackendRedis:
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		persister, err = state.NewRedisStore(redisClient, cfg.Persist.RootKey)
		if err != nil {
			logg.Error(context.Background(), "failed to create redis snapshot store", err)
			os.Exit(1)
		}
		readyPingers = append(readyPingers, redisClient)
	default:
		persister, err = state.NewFileStore(cfg.Persist.FilePath)
		if err != nil {
			logg.Error(context.Background(), "failed to create file snapshot store", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	catalogMetrics := metrics.NewCatalogMetrics(registry)

	gateway := catalog.NewClient(
		catalog.WithBaseURL(cfg.Catalog.BaseURL),
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.RequestTimeout}),
	)

	cartStore := cart.NewStore()
	accountStore := account.NewStore()

	catalogStore, err := catalog.NewStore(catalog.StoreParams{
		Gateway:         gateway,
		PageSize:        cfg.Catalog.PageSize,
		DefaultCategory: cfg.Catalog.DefaultCategory,
		Logger:          logg,
		Metrics:         catalogMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog store", err)
		os.Exit(1)
	}

	manager, err := state.NewManager(state.ManagerParams{
		Persister: persister,
		Logger:    logg,
		Cart:      cartStore,
		Catalog:   catalogStore,
		Account:   accountStore,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create state manager", err)
		os.Exit(1)
	}
	catalogStore.SetCommitter(manager)

	// Rehydrate before the server accepts a single request, so no consumer
	// ever observes the empty pre-restore state.
	manager.Rehydrate(context.Background())

	accountService, err := account.NewService(account.ServiceParams{
		Store:          accountStore,
		PasswordConfig: cfg.Password,
		Committer:      manager,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create account service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Cart:      cartStore,
		Committer: manager,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Persist.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			CatalogStore:    catalogStore,
			CartStore:       cartStore,
			AccountService:  accountService,
			CheckoutService: checkoutService,
			Committer:       manager,
			Registry:        registry,
			ReadyPingers:    readyPingers,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
