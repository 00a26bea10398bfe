package mocks

import (
	"context"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/stretchr/testify/mock"
)

type FinanceRepository struct {
	mock.Mock
}

func (f *FinanceRepository) Create(ctx context.Context, entry *model.FinanceEntry) error {
	args := f.Called(ctx, entry)
	return args.Error(0)
}

type WebhookLogRepository struct {
	mock.Mock
}

func (w *WebhookLogRepository) Create(ctx context.Context, log *model.WebhookLog) error {
	args := w.Called(ctx, log)
	return args.Error(0)
}
