package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"gorm.io/gorm"
)

var ErrFinanceEntryExisted = errors.New("FINANCE_ENTRY_EXISTED")
var ErrNoRowsAffected = errors.New("NO_ROWS_AFFECTED")

type FinanceRepository interface {
	Create(ctx context.Context, entry *model.FinanceEntry) error
}

type finance struct {
	db *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) FinanceRepository {
	return &finance{db: db}
}

// Create returns ErrFinanceEntryExisted when an entry for the same event was already journaled.
func (f *finance) Create(ctx context.Context, entry *model.FinanceEntry) error {
	err := GetTx(ctx, f.db).Create(entry).Error
	if err == nil {
		return nil
	}

	if isDuplicate(err) {
		return ErrFinanceEntryExisted
	}

	return fmt.Errorf("create finance entry: %w", err)
}
