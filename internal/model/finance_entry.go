package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FinanceActionIncome  = "INCOME"
	FinanceActionOutcome = "OUTCOME"
)

const (
	PaymentMethodPayme = "Payme"
	PaymentMethodClick = "Click"
)

type FinanceEntry struct {
	ID            int64           `gorm:"primaryKey;autoIncrement;<-:create"`
	EventID       string          `gorm:"type:char(36);not null;uniqueIndex;<-:create"`
	Action        string          `gorm:"type:enum('INCOME','OUTCOME');not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(16);not null"`
	AccountKind   AccountKind     `gorm:"type:varchar(16);not null"`
	AccountID     string          `gorm:"type:varchar(64);not null;index"`
	Comment       string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
}

func PaymentMethodFor(g Gateway) string {
	if g == GatewayClick {
		return PaymentMethodClick
	}
	return PaymentMethodPayme
}
