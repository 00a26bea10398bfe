package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventTypePaymentPerformed = "payment.performed"
	EventTypePaymentCancelled = "payment.cancelled"
)

// PaymentEvent is the outbox row written in the same DB transaction as the state change.
type PaymentEvent struct {
	ID                   int64           `gorm:"primaryKey;autoIncrement;<-:create"`
	EventID              string          `gorm:"type:char(36);not null;uniqueIndex;<-:create"`
	EventType            string          `gorm:"type:varchar(32);not null;<-:create"`
	Gateway              Gateway         `gorm:"type:varchar(16);not null;<-:create"`
	GatewayTransactionID string          `gorm:"type:varchar(255);not null;<-:create"`
	OrderKey             string          `gorm:"type:varchar(64);not null;<-:create"`
	AccountKind          AccountKind     `gorm:"type:varchar(16);not null;<-:create"`
	AccountID            string          `gorm:"type:varchar(64);not null;<-:create"`
	Amount               decimal.Decimal `gorm:"type:decimal(18,2);not null;<-:create"`
	Published            bool            `gorm:"default:false;not null;index"`
	PublishedAt          *time.Time      `gorm:"type:timestamp;null"`
	LastError            *string         `gorm:"type:text;null"`
	CreatedAt            time.Time       `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time       `gorm:"type:timestamp;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}
