package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	AccountKindStudent AccountKind = "student"
	AccountKindLead    AccountKind = "lead"
)

// AccountKinds is the order in which an order key is probed.
var AccountKinds = []AccountKind{AccountKindStudent, AccountKindLead}

func (k AccountKind) Table() string {
	switch k {
	case AccountKindStudent:
		return "students"
	case AccountKindLead:
		return "leads"
	default:
		return ""
	}
}

func (k AccountKind) Valid() bool {
	return k.Table() != ""
}

// Account is a student or lead row. Both tables share this shape.
type Account struct {
	ID             string          `gorm:"primaryKey;type:varchar(64);column:id"`
	FirstName      string          `gorm:"type:varchar(255);column:first_name"`
	LastName       string          `gorm:"type:varchar(255);column:last_name"`
	Balance        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0;column:balance"`
	ExpectedCharge decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0;column:expected_charge"`
	Active         bool            `gorm:"not null;default:true;column:active"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`

	Kind AccountKind `gorm:"-"`
}

func (a Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
