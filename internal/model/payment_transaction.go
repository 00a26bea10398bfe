package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Gateway string

const (
	GatewayPayme Gateway = "payme"
	GatewayClick Gateway = "click"
)

type TransactionState int

const (
	TransactionStateCreated                TransactionState = 0
	TransactionStatePerformed              TransactionState = 1
	TransactionStateCancelledBeforePerform TransactionState = -1
	TransactionStateCancelledAfterPerform  TransactionState = -2
)

type TransactionStatus string

const (
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusSuccess    TransactionStatus = "success"
	TransactionStatusCanceled   TransactionStatus = "canceled"
)

// Cancel reasons Click has no code for. Payme sends its own reasons (1..10).
const (
	ReasonInsufficientFunds = 101
	ReasonGatewayError      = 102
)

type PaymentTransaction struct {
	ID                   int64             `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	Gateway              Gateway           `gorm:"type:varchar(16);not null;uniqueIndex:idx_gateway_transaction;<-:create"`
	GatewayTransactionID string            `gorm:"type:varchar(255);not null;uniqueIndex:idx_gateway_transaction;<-:create"`
	RequestID            int64             `gorm:"column:request_id;<-:create"`
	OrderKey             string            `gorm:"type:varchar(64);not null;index:idx_order_status;<-:create"`
	AccountKind          AccountKind       `gorm:"type:varchar(16);not null;<-:create"`
	AccountID            string            `gorm:"type:varchar(64);not null;<-:create"`
	Amount               decimal.Decimal   `gorm:"type:decimal(18,2);not null;<-:create"`
	State                TransactionState  `gorm:"not null;default:0"`
	Status               TransactionStatus `gorm:"type:varchar(16);not null;index:idx_order_status"`
	CreateTime           int64             `gorm:"not null;index"`
	PerformTime          int64             `gorm:"not null;default:0"`
	CancelTime           int64             `gorm:"not null;default:0"`
	GatewayTime          int64             `gorm:"not null;default:0"`
	Reason               *int              `gorm:"null"`
	CreatedAt            time.Time         `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time         `gorm:"type:timestamp;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}

func (t *PaymentTransaction) IsCancelled() bool {
	return t.State == TransactionStateCancelledBeforePerform || t.State == TransactionStateCancelledAfterPerform
}

func (t *PaymentTransaction) IsPerformed() bool {
	return t.State == TransactionStatePerformed
}
