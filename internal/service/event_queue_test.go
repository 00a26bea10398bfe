package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/mocks"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/repository"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPaymentEventQueue_FindEventsToPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("Maps outbox rows to messages", func(t *testing.T) {
		events := &mocks.PaymentEventRepository{}
		events.On("FindUnpublished", ctx, 50).Return([]model.PaymentEvent{{
			ID:                   11,
			EventID:              "e-1",
			EventType:            model.EventTypePaymentPerformed,
			Gateway:              model.GatewayPayme,
			GatewayTransactionID: "pm-1",
			OrderKey:             "S-1001",
			AccountKind:          model.AccountKindStudent,
			AccountID:            "S-1001",
			Amount:               decimal.NewFromInt(50000),
		}}, nil)

		out, err := service.NewPaymentEventQueueService(events, zap.NewNop()).FindEventsToPublish(ctx, 50)

		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, int64(11), out[0].ID)
		assert.Equal(t, "e-1", out[0].Message.EventID)
		assert.Equal(t, "student", out[0].Message.AccountKind)
		assert.Equal(t, "pm-1", out[0].Message.GatewayTransactionID)
	})

	t.Run("Empty batch", func(t *testing.T) {
		events := &mocks.PaymentEventRepository{}
		events.On("FindUnpublished", ctx, 50).Return([]model.PaymentEvent{}, nil)

		out, err := service.NewPaymentEventQueueService(events, zap.NewNop()).FindEventsToPublish(ctx, 50)

		assert.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("Repository failure", func(t *testing.T) {
		events := &mocks.PaymentEventRepository{}
		events.On("FindUnpublished", ctx, 50).Return(nil, errors.New("db down"))

		_, err := service.NewPaymentEventQueueService(events, zap.NewNop()).FindEventsToPublish(ctx, 50)

		assert.Error(t, err)
	})
}

func TestPaymentEventQueue_Mark(t *testing.T) {
	ctx := context.Background()

	t.Run("Already published is not an error", func(t *testing.T) {
		events := &mocks.PaymentEventRepository{}
		events.On("MarkPublished", ctx, int64(3), mock.Anything).Return(repository.ErrNoRowsAffected)

		err := service.NewPaymentEventQueueService(events, zap.NewNop()).MarkEventAsPublished(ctx, 3)

		assert.NoError(t, err)
	})

	t.Run("Failure reason is stored", func(t *testing.T) {
		events := &mocks.PaymentEventRepository{}
		events.On("MarkFailed", ctx, int64(3), "channel closed").Return(nil)

		err := service.NewPaymentEventQueueService(events, zap.NewNop()).MarkEventAsFailed(ctx, 3, errors.New("channel closed"))

		assert.NoError(t, err)
		events.AssertExpectations(t)
	})
}
