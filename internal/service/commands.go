package service

import (
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/shopspring/decimal"
)

// CreateTransactionCommand carries an amount already converted to major units.
type CreateTransactionCommand struct {
	Gateway              model.Gateway
	GatewayTransactionID string
	OrderKey             string
	Amount               decimal.Decimal
	RequestID            int64
	GatewayTime          int64
}

type TransactionKey struct {
	Gateway              model.Gateway
	GatewayTransactionID string
}

type CancelTransactionCommand struct {
	Key    TransactionKey
	Reason int
}

type StatementQuery struct {
	Gateway model.Gateway
	From    int64
	To      int64
}

type CreatePaymentLinkCommand struct {
	Gateway   model.Gateway
	OrderKey  string
	Amount    decimal.Decimal
	ReturnURL string
}

// PaymentEventMessage is the body published to the payment events queue.
type PaymentEventMessage struct {
	EventID              string          `json:"event_id"`
	EventType            string          `json:"event_type"`
	Gateway              model.Gateway   `json:"gateway"`
	GatewayTransactionID string          `json:"gateway_transaction_id"`
	OrderKey             string          `json:"order_key"`
	AccountKind          string          `json:"account_kind"`
	AccountID            string          `json:"account_id"`
	Amount               decimal.Decimal `json:"amount"`
}
