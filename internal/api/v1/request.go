package v1

import "encoding/json"

// Payme params. Account is keyed by the configured account field name.
type checkPerformParams struct {
	Amount  int64                      `json:"amount" validate:"required,gt=0"`
	Account map[string]json.RawMessage `json:"account" validate:"required"`
}

type createTransactionParams struct {
	ID      string                     `json:"id" validate:"required"`
	Time    int64                      `json:"time" validate:"required,gt=0"`
	Amount  int64                      `json:"amount" validate:"required,gt=0"`
	Account map[string]json.RawMessage `json:"account" validate:"required"`
}

type transactionParams struct {
	ID string `json:"id" validate:"required"`
}

type cancelTransactionParams struct {
	ID     string `json:"id" validate:"required"`
	Reason int    `json:"reason" validate:"required"`
}

type statementParams struct {
	From int64 `json:"from" validate:"gte=0"`
	To   int64 `json:"to" validate:"required,gtefield=From"`
}

type CreatePaymentLinkRequest struct {
	Gateway   string `json:"gateway" validate:"required,oneof=payme click"`
	OrderID   string `json:"order_id" validate:"required"`
	Amount    string `json:"amount" validate:"omitempty,amount"`
	ReturnURL string `json:"return_url" validate:"omitempty,url"`
}
