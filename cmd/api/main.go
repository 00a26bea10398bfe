package main

import (
	"context"
	"time"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/api"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/api/validator"
	v1 "github.com/komiljonov/Fitrat-ERP-sub000/internal/api/v1"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/config"
	apperrors "github.com/komiljonov/Fitrat-ERP-sub000/internal/errors"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/metrics"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/repository"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/cache"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/mysql"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewConnectionDB,
			NewRegistry,
			NewMetrics,
			NewOrderKindCache,

			repository.NewAccountRepository,
			repository.NewPaymentTransactionRepository,
			repository.NewPaymentEventRepository,
			repository.NewWebhookLogRepository,
			repository.NewTransactionManager,

			service.NewOrderResolver,
			service.NewTransactionService,
			service.NewPaymeService,
			service.NewClickService,
			service.NewPaymentLinkService,

			playground.New,
			validator.NewXValidator,
			v1.NewHandler,
			NewFiberApp,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, db *gorm.DB, m *metrics.Metrics, registry *prometheus.Registry,
	cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	dbCollector := metrics.NewDatabaseMetricsCollector(m, logger, db)
	systemCollector := metrics.NewSystemCollector(m, logger)

	api.SetupOpsRoutes(app, metrics.HealthHandler(dbCollector.HealthCheck), metrics.Handler(registry))
	api.SetupRoutes(app, handler)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			dbCollector.Start(15 * time.Second)
			systemCollector.Start(15 * time.Second)

			go func() {
				if err := app.Listen(":" + cfg.API.Port); err != nil {
					logger.Error("server stopped", zap.Error(err))
				}
			}()

			logger.Info("api started", zap.String("port", cfg.API.Port), zap.String("version", version))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			systemCollector.Stop()
			dbCollector.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewFiberApp(m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: apperrors.ErrorHandler(logger),
	})
	app.Use(recover.New())
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))

	return app
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	db, err := mysql.NewConnection(ctx, cfg.Database.Config, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			return nil, err
		}
		logger.Info("database migrated")
	}

	return db, nil
}

func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

func NewMetrics(registry *prometheus.Registry) *metrics.Metrics {
	m := metrics.NewMetrics(registry)
	m.SetServiceVersion(version, commit, buildDate)

	return m
}

// NewOrderKindCache falls back to a no-op cache when Redis is disabled.
func NewOrderKindCache(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (cache.OrderKindCache, error) {
	if !cfg.Redis.Enable {
		logger.Info("order kind cache disabled")
		return cache.NewNoopOrderKindCache(), nil
	}

	rdb, err := cache.NewClient(context.Background(), cfg.Redis, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return rdb.Close()
		},
	})

	return cache.NewOrderKindCache(rdb, cfg.Redis.TTL), nil
}
