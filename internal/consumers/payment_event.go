package consumers

import (
	"context"
	"encoding/json"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/config"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/metrics"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/mq"
	"go.uber.org/zap"
)

type PaymentEventConsumer interface {
	Consume(ctx context.Context) error
}

type paymentEventConsumer struct {
	finance  service.FinanceService
	notifier service.NotifierService
	consumer mq.Consumer
	metrics  *metrics.Metrics
	queue    string
	prefetch int
	logger   *zap.Logger
}

func NewPaymentEventConsumer(finance service.FinanceService, notifier service.NotifierService, consumer mq.Consumer,
	metrics *metrics.Metrics, cfg *config.Config, logger *zap.Logger) PaymentEventConsumer {
	return &paymentEventConsumer{
		finance:  finance,
		notifier: notifier,
		consumer: consumer,
		metrics:  metrics,
		queue:    cfg.RabbitMQ.Queue,
		prefetch: cfg.RabbitMQ.Prefetch,
		logger:   logger,
	}
}

func (p *paymentEventConsumer) Consume(ctx context.Context) error {
	return p.consumer.Consume(ctx, p.prefetch, p.queue, p.handleMessage)
}

func (p *paymentEventConsumer) handleMessage(ctx context.Context, body []byte) error {
	p.logger.Debug("received payment event", zap.ByteString("body", body))

	var msg service.PaymentEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		p.logger.Warn("invalid payment event", zap.Error(err))
		p.metrics.RecordEventConsumed("unknown", "invalid")
		return err
	}

	if err := p.finance.Record(ctx, msg); err != nil {
		p.metrics.RecordEventConsumed(msg.EventType, "failed")
		return err
	}

	// Notification failures are acked; the finance entry is already journaled.
	if err := p.notifier.Notify(ctx, msg); err != nil {
		p.logger.Warn("payment notification failed", zap.String("eventID", msg.EventID), zap.Error(err))
		p.metrics.RecordNotification("failed")
	} else {
		p.metrics.RecordNotification("sent")
	}

	p.metrics.RecordEventConsumed(msg.EventType, "processed")

	return nil
}
