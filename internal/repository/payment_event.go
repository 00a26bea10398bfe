package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"gorm.io/gorm"
)

type PaymentEventRepository interface {
	Create(ctx context.Context, event *model.PaymentEvent) error
	FindUnpublished(ctx context.Context, limit int) ([]model.PaymentEvent, error)
	MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error
	MarkFailed(ctx context.Context, id int64, reason string) error
	CountUnpublished(ctx context.Context) (int64, error)
}

type paymentEvent struct {
	db *gorm.DB
}

func NewPaymentEventRepository(db *gorm.DB) PaymentEventRepository {
	return &paymentEvent{db: db}
}

func (p *paymentEvent) Create(ctx context.Context, event *model.PaymentEvent) error {
	if err := GetTx(ctx, p.db).Create(event).Error; err != nil {
		return fmt.Errorf("create payment event: %w", err)
	}

	return nil
}

func (p *paymentEvent) FindUnpublished(ctx context.Context, limit int) ([]model.PaymentEvent, error) {
	var events []model.PaymentEvent

	err := GetTx(ctx, p.db).
		Where("published = ?", false).
		Order("id ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("find unpublished payment events: %w", err)
	}

	return events, nil
}

func (p *paymentEvent) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	result := GetTx(ctx, p.db).Model(&model.PaymentEvent{}).
		Where("id = ? AND published = ?", id, false).
		Updates(map[string]any{
			"published":    true,
			"published_at": publishedAt,
			"last_error":   nil,
		})
	if result.Error != nil {
		return fmt.Errorf("mark payment event %d published: %w", id, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (p *paymentEvent) MarkFailed(ctx context.Context, id int64, reason string) error {
	err := GetTx(ctx, p.db).Model(&model.PaymentEvent{}).
		Where("id = ?", id).
		Update("last_error", reason).Error
	if err != nil {
		return fmt.Errorf("mark payment event %d failed: %w", id, err)
	}

	return nil
}

func (p *paymentEvent) CountUnpublished(ctx context.Context) (int64, error) {
	var count int64

	err := GetTx(ctx, p.db).Model(&model.PaymentEvent{}).
		Where("published = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unpublished payment events: %w", err)
	}

	return count, nil
}
