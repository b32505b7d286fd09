package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/multierr"

	"github.com/merendaflow/merenda-backend/api/routes"
	"github.com/merendaflow/merenda-backend/internal/inventory"
	"github.com/merendaflow/merenda-backend/internal/menu"
	"github.com/merendaflow/merenda-backend/internal/reports"
	"github.com/merendaflow/merenda-backend/internal/schedule"
	"github.com/merendaflow/merenda-backend/pkg/config"
	"github.com/merendaflow/merenda-backend/pkg/db"
	"github.com/merendaflow/merenda-backend/pkg/kv"
	"github.com/merendaflow/merenda-backend/pkg/logger"
	"github.com/merendaflow/merenda-backend/pkg/metrics"
	"github.com/merendaflow/merenda-backend/pkg/migrate"
	"github.com/merendaflow/merenda-backend/pkg/redis"
)

type backend struct {
	store  kv.Store
	pinger kv.Pinger
	close  func() error
}

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

	ctx := context.Background()

	be, err := newBackend(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap persistence backend", err)
		os.Exit(1)
	}
	defer func() {
		if err := be.close(); err != nil {
			logg.Error(ctx, "error closing persistence backend", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storeMetrics := metrics.NewStoreMetrics(registry)

	inventoryStore, err := inventory.NewStore(ctx, be.store, logg, storeMetrics)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap inventory store", err)
		os.Exit(1)
	}

	scheduleStore, err := schedule.NewStore(ctx, be.store, logg, storeMetrics)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap schedule store", err)
		os.Exit(1)
	}

	menuService := newMenuService(ctx, cfg, logg, inventoryStore)

	reportService, err := reports.NewService(inventoryStore, scheduleStore)
	if err != nil {
		logg.Error(ctx, "failed to create report service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Persistence.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, be.pinger, registry,
			inventoryStore, scheduleStore, menuService, reportService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func newBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*backend, error) {
	if cfg.Persistence.IsRedis() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, err
		}
		store, err := kv.NewRedisStore(redisClient)
		if err != nil {
			return nil, multierr.Append(err, redisClient.Close())
		}
		return &backend{store: store, pinger: store, close: redisClient.Close}, nil
	}

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		return nil, err
	}
	if cfg.FeatureFlags.UseSQLite {
		if err := dbClient.DB().WithContext(ctx).AutoMigrate(&kv.StateBlob{}); err != nil {
			return nil, multierr.Append(err, dbClient.Close())
		}
	} else if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return nil, multierr.Append(err, dbClient.Close())
	}
	store, err := kv.NewSQLStore(dbClient)
	if err != nil {
		return nil, multierr.Append(err, dbClient.Close())
	}
	return &backend{store: store, pinger: store, close: dbClient.Close}, nil
}

// newMenuService wires the model-backed menu gateway. Without an API key
// the service stays nil and the suggestion endpoint reports unavailable.
func newMenuService(ctx context.Context, cfg *config.Config, logg *logger.Logger, inventoryStore inventory.Store) menu.Service {
	if cfg.OpenAI.APIKey == "" {
		logg.Warn(ctx, "openai api key not set, menu suggestions disabled")
		return nil
	}

	llm, err := openai.New(
		openai.WithToken(cfg.OpenAI.APIKey),
		openai.WithModel(cfg.OpenAI.Model),
	)
	if err != nil {
		logg.Error(ctx, "failed to create openai client, menu suggestions disabled", err)
		return nil
	}

	gateway, err := menu.NewGateway(llm, cfg.Menu.CallTimeout)
	if err != nil {
		logg.Error(ctx, "failed to create menu gateway, menu suggestions disabled", err)
		return nil
	}

	svc, err := menu.NewService(gateway, inventoryStore, cfg.Menu.DefaultGuidelines)
	if err != nil {
		logg.Error(ctx, "failed to create menu service, menu suggestions disabled", err)
		return nil
	}
	return svc
}
