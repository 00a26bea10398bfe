package repository

import (
	"context"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"gorm.io/gorm"
)

type WebhookLogRepository interface {
	Create(ctx context.Context, log *model.WebhookLog) error
}

type webhookLog struct {
	db *gorm.DB
}

func NewWebhookLogRepository(db *gorm.DB) WebhookLogRepository {
	return &webhookLog{db: db}
}

func (w *webhookLog) Create(ctx context.Context, log *model.WebhookLog) error {
	return w.db.WithContext(ctx).Create(log).Error
}
