package service

import (
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/shopspring/decimal"
)

// Snapshot is the read-only view of a payment transaction returned to protocol services.
type Snapshot struct {
	ID                   int64
	Gateway              model.Gateway
	GatewayTransactionID string
	RequestID            int64
	OrderKey             string
	AccountKind          model.AccountKind
	AccountID            string
	Amount               decimal.Decimal
	State                model.TransactionState
	CreateTime           int64
	PerformTime          int64
	CancelTime           int64
	GatewayTime          int64
	Reason               *int
}

func (s Snapshot) IsCancelled() bool {
	return s.State == model.TransactionStateCancelledBeforePerform || s.State == model.TransactionStateCancelledAfterPerform
}

func (s Snapshot) IsPerformed() bool {
	return s.State == model.TransactionStatePerformed
}

func newSnapshot(tx *model.PaymentTransaction) Snapshot {
	return Snapshot{
		ID:                   tx.ID,
		Gateway:              tx.Gateway,
		GatewayTransactionID: tx.GatewayTransactionID,
		RequestID:            tx.RequestID,
		OrderKey:             tx.OrderKey,
		AccountKind:          tx.AccountKind,
		AccountID:            tx.AccountID,
		Amount:               tx.Amount,
		State:                tx.State,
		CreateTime:           tx.CreateTime,
		PerformTime:          tx.PerformTime,
		CancelTime:           tx.CancelTime,
		GatewayTime:          tx.GatewayTime,
		Reason:               tx.Reason,
	}
}

type PaymentLink struct {
	Gateway  model.Gateway   `json:"gateway"`
	OrderKey string          `json:"order_id"`
	Amount   decimal.Decimal `json:"amount"`
	URL      string          `json:"url"`
}
