package main

import (
	"context"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/config"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/consumers"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/metrics"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/repository"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/httpclient"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/mq"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewConnectionDB,
			NewMQConnection,
			NewMQConsumer,
			NewMetrics,

			repository.NewFinanceRepository,
			repository.NewAccountRepository,
			NewNotifierClient,
			service.NewFinanceService,
			service.NewNotifierService,

			consumers.NewPaymentEventConsumer,
		),
		fx.Invoke(runEventConsumer),
	).Run()
}

func runEventConsumer(cfg *config.Config, eventConsumer consumers.PaymentEventConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	queue := cfg.RabbitMQ.Queue

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{queue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", queue))

			go func() {
				if err := eventConsumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("payment event consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping payment event consumer")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database.Config, logger)
}

func NewNotifierClient(cfg *config.Config) httpclient.HTTPClient {
	return httpclient.NewHTTPClient(cfg.Notifier.Timeout)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}
