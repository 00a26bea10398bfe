package main

import (
	"context"
	"time"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/config"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/metrics"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/publishers"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/repository"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
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
			NewMQPublisher,
			NewMetrics,

			repository.NewPaymentEventRepository,

			service.NewPaymentEventQueueService,

			publishers.NewPaymentEventPublisher,
		),
		fx.Invoke(runEventPublisher),
	).Run()
}

func runEventPublisher(cfg *config.Config, publisher publishers.PaymentEventPublisher, events repository.PaymentEventRepository,
	m *metrics.Metrics, logger *zap.Logger, rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	collector := metrics.NewSystemCollector(m, logger).WithOutboxBacklog(events.CountUnpublished)
	queue := cfg.RabbitMQ.Queue
	interval := cfg.Outbox.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{queue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", queue))
			collector.Start(30 * time.Second)

			go func() {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish payment events", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("payment event publisher started", zap.Duration("interval", interval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping payment event publisher")
			cancel()
			collector.Stop()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database.Config, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}

// NewMetrics registers on the default registry. Workers expose no scrape endpoint.
func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}
