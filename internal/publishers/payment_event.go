package publishers

import (
	"context"
	"encoding/json"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/config"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/metrics"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/mq"
	"go.uber.org/zap"
)

type PaymentEventPublisher interface {
	Publish(ctx context.Context) error
}

type paymentEventPublisher struct {
	service   service.PaymentEventQueueService
	publisher mq.Publisher
	metrics   *metrics.Metrics
	queue     string
	batchSize int
	logger    *zap.Logger
}

func NewPaymentEventPublisher(service service.PaymentEventQueueService, publisher mq.Publisher, metrics *metrics.Metrics,
	cfg *config.Config, logger *zap.Logger) PaymentEventPublisher {
	return &paymentEventPublisher{
		service:   service,
		publisher: publisher,
		metrics:   metrics,
		queue:     cfg.RabbitMQ.Queue,
		batchSize: cfg.Outbox.BatchSize,
		logger:    logger,
	}
}

// Publish relays one batch of unpublished outbox rows. A row is marked
// published only after the broker accepted it, so delivery is at least once.
func (p *paymentEventPublisher) Publish(ctx context.Context) error {
	events, err := p.service.FindEventsToPublish(ctx, p.batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	p.logger.Info("Publishing payment events", zap.Int("count", len(events)))

	successCount := 0
	for _, event := range events {
		body, err := json.Marshal(event.Message)
		if err != nil {
			p.logger.Error("Failed to encode payment event", zap.Error(err), zap.Int64("eventRowID", event.ID))
			continue
		}

		msg := mq.Message{ID: event.Message.EventID, Type: event.Message.EventType, Body: body}
		if err := p.publisher.Publish(ctx, p.queue, msg); err != nil {
			p.logger.Error("Failed to publish payment event",
				zap.Error(err),
				zap.Int64("eventRowID", event.ID),
				zap.String("eventID", event.Message.EventID))
			p.metrics.RecordOutboxEvent(event.Message.EventType, "failed")
			_ = p.service.MarkEventAsFailed(ctx, event.ID, err)
			continue
		}

		if err := p.service.MarkEventAsPublished(ctx, event.ID); err != nil {
			continue
		}

		p.metrics.RecordOutboxEvent(event.Message.EventType, "published")
		successCount++
	}

	if successCount > 0 {
		p.logger.Info("Successfully published payment events",
			zap.Int("published", successCount),
			zap.Int("total", len(events)))
	}

	return nil
}
