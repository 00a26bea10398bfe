package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAccountNotFound = errors.New("ACCOUNT_NOT_FOUND")
var ErrUnknownAccountKind = errors.New("UNKNOWN_ACCOUNT_KIND")

// AccountRepository reads and mutates the balance of students and leads.
type AccountRepository interface {
	FindByID(ctx context.Context, kind model.AccountKind, id string) (*model.Account, error)
	FindForUpdate(ctx context.Context, kind model.AccountKind, id string) (*model.Account, error)
	Credit(ctx context.Context, kind model.AccountKind, id string, amount decimal.Decimal) error
	Debit(ctx context.Context, kind model.AccountKind, id string, amount decimal.Decimal) error
}

type account struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &account{db: db}
}

func (a *account) FindByID(ctx context.Context, kind model.AccountKind, id string) (*model.Account, error) {
	return a.find(GetTx(ctx, a.db), kind, id)
}

// FindForUpdate locks the account row until the surrounding transaction ends.
func (a *account) FindForUpdate(ctx context.Context, kind model.AccountKind, id string) (*model.Account, error) {
	return a.find(GetTx(ctx, a.db).Clauses(clause.Locking{Strength: "UPDATE"}), kind, id)
}

func (a *account) find(db *gorm.DB, kind model.AccountKind, id string) (*model.Account, error) {
	if !kind.Valid() {
		return nil, ErrUnknownAccountKind
	}

	var acc model.Account
	err := db.Table(kind.Table()).Where("id = ?", id).Take(&acc).Error
	if err == nil {
		acc.Kind = kind
		return &acc, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}

	return nil, fmt.Errorf("find %s %s: %w", kind, id, err)
}

func (a *account) Credit(ctx context.Context, kind model.AccountKind, id string, amount decimal.Decimal) error {
	return a.adjust(ctx, kind, id, "balance + ?", amount)
}

func (a *account) Debit(ctx context.Context, kind model.AccountKind, id string, amount decimal.Decimal) error {
	return a.adjust(ctx, kind, id, "balance - ?", amount)
}

func (a *account) adjust(ctx context.Context, kind model.AccountKind, id, expr string, amount decimal.Decimal) error {
	if !kind.Valid() {
		return ErrUnknownAccountKind
	}

	result := GetTx(ctx, a.db).Table(kind.Table()).
		Where("id = ?", id).
		Updates(map[string]any{
			"balance":    gorm.Expr(expr, amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("update balance of %s %s: %w", kind, id, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}
