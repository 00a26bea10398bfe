package service

import (
	"context"
	"errors"
	"time"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/repository"
	"go.uber.org/zap"
)

// OutboxEvent pairs an outbox row id with the message to publish.
type OutboxEvent struct {
	ID      int64
	Message PaymentEventMessage
}

type PaymentEventQueueService interface {
	FindEventsToPublish(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkEventAsPublished(ctx context.Context, id int64) error
	MarkEventAsFailed(ctx context.Context, id int64, cause error) error
}

type paymentEventQueue struct {
	events repository.PaymentEventRepository
	logger *zap.Logger
}

func NewPaymentEventQueueService(events repository.PaymentEventRepository, logger *zap.Logger) PaymentEventQueueService {
	return &paymentEventQueue{events: events, logger: logger}
}

func (p *paymentEventQueue) FindEventsToPublish(ctx context.Context, limit int) ([]OutboxEvent, error) {
	p.logger.Debug("Finding payment events to publish", zap.Int("batchSize", limit))

	events, err := p.events.FindUnpublished(ctx, limit)
	if err != nil {
		p.logger.Error("Failed to find unpublished payment events", zap.Error(err))
		return nil, err
	}

	if len(events) == 0 {
		return nil, nil
	}

	out := make([]OutboxEvent, 0, len(events))
	for _, e := range events {
		out = append(out, OutboxEvent{
			ID: e.ID,
			Message: PaymentEventMessage{
				EventID:              e.EventID,
				EventType:            e.EventType,
				Gateway:              e.Gateway,
				GatewayTransactionID: e.GatewayTransactionID,
				OrderKey:             e.OrderKey,
				AccountKind:          string(e.AccountKind),
				AccountID:            e.AccountID,
				Amount:               e.Amount,
			},
		})
	}

	return out, nil
}

func (p *paymentEventQueue) MarkEventAsPublished(ctx context.Context, id int64) error {
	err := p.events.MarkPublished(ctx, id, time.Now())
	if errors.Is(err, repository.ErrNoRowsAffected) {
		p.logger.Debug("Payment event already marked as published", zap.Int64("eventRowID", id))
		return nil
	}
	if err != nil {
		p.logger.Error("Failed to mark payment event as published", zap.Int64("eventRowID", id), zap.Error(err))
		return err
	}

	return nil
}

func (p *paymentEventQueue) MarkEventAsFailed(ctx context.Context, id int64, cause error) error {
	if err := p.events.MarkFailed(ctx, id, cause.Error()); err != nil {
		p.logger.Error("Failed to record publish failure", zap.Int64("eventRowID", id), zap.Error(err))
		return err
	}

	return nil
}
