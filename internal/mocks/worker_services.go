package mocks

import (
	"context"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/stretchr/testify/mock"
)

type PaymentLinkService struct {
	mock.Mock
}

func (p *PaymentLinkService) CreateLink(ctx context.Context, cmd service.CreatePaymentLinkCommand) (service.PaymentLink, error) {
	args := p.Called(ctx, cmd)
	return args.Get(0).(service.PaymentLink), args.Error(1)
}

type FinanceService struct {
	mock.Mock
}

func (f *FinanceService) Record(ctx context.Context, msg service.PaymentEventMessage) error {
	args := f.Called(ctx, msg)
	return args.Error(0)
}

type NotifierService struct {
	mock.Mock
}

func (n *NotifierService) Notify(ctx context.Context, msg service.PaymentEventMessage) error {
	args := n.Called(ctx, msg)
	return args.Error(0)
}

type PaymentEventQueueService struct {
	mock.Mock
}

func (p *PaymentEventQueueService) FindEventsToPublish(ctx context.Context, limit int) ([]service.OutboxEvent, error) {
	args := p.Called(ctx, limit)
	events, _ := args.Get(0).([]service.OutboxEvent)
	return events, args.Error(1)
}

func (p *PaymentEventQueueService) MarkEventAsPublished(ctx context.Context, id int64) error {
	args := p.Called(ctx, id)
	return args.Error(0)
}

func (p *PaymentEventQueueService) MarkEventAsFailed(ctx context.Context, id int64, cause error) error {
	args := p.Called(ctx, id, cause)
	return args.Error(0)
}
