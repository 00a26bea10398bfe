package mocks

import (
	"context"
	"time"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/stretchr/testify/mock"
)

type PaymentEventRepository struct {
	mock.Mock
}

func (p *PaymentEventRepository) Create(ctx context.Context, event *model.PaymentEvent) error {
	args := p.Called(ctx, event)
	return args.Error(0)
}

func (p *PaymentEventRepository) FindUnpublished(ctx context.Context, limit int) ([]model.PaymentEvent, error) {
	args := p.Called(ctx, limit)
	events, _ := args.Get(0).([]model.PaymentEvent)
	return events, args.Error(1)
}

func (p *PaymentEventRepository) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	args := p.Called(ctx, id, publishedAt)
	return args.Error(0)
}

func (p *PaymentEventRepository) MarkFailed(ctx context.Context, id int64, reason string) error {
	args := p.Called(ctx, id, reason)
	return args.Error(0)
}

func (p *PaymentEventRepository) CountUnpublished(ctx context.Context) (int64, error) {
	args := p.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
