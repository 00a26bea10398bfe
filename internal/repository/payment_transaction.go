package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")
var ErrTransactionExisted = errors.New("TRANSACTION_EXISTED")

type PaymentTransactionRepository interface {
	Create(ctx context.Context, tx *model.PaymentTransaction) error
	Update(ctx context.Context, tx *model.PaymentTransaction) error
	GetByGatewayID(ctx context.Context, gateway model.Gateway, gatewayTxID string) (*model.PaymentTransaction, error)
	GetByGatewayIDForUpdate(ctx context.Context, gateway model.Gateway, gatewayTxID string) (*model.PaymentTransaction, error)
	GetByID(ctx context.Context, id int64) (*model.PaymentTransaction, error)
	FindProcessingByOrderKey(ctx context.Context, orderKey string) (*model.PaymentTransaction, error)
	ListByCreateTime(ctx context.Context, gateway model.Gateway, from, to int64) ([]model.PaymentTransaction, error)
}

type paymentTransaction struct {
	db *gorm.DB
}

func NewPaymentTransactionRepository(db *gorm.DB) PaymentTransactionRepository {
	return &paymentTransaction{db: db}
}

func (p *paymentTransaction) Create(ctx context.Context, tx *model.PaymentTransaction) error {
	db := GetTx(ctx, p.db)
	err := db.Create(tx).Error
	if err == nil {
		return nil
	}

	if isDuplicate(err) {
		return ErrTransactionExisted
	}

	return fmt.Errorf("create payment transaction: %w", err)
}

// Update writes the mutable lifecycle columns only.
func (p *paymentTransaction) Update(ctx context.Context, tx *model.PaymentTransaction) error {
	db := GetTx(ctx, p.db)
	result := db.Model(&model.PaymentTransaction{}).
		Where("id = ?", tx.ID).
		Updates(map[string]any{
			"state":        tx.State,
			"status":       tx.Status,
			"perform_time": tx.PerformTime,
			"cancel_time":  tx.CancelTime,
			"reason":       tx.Reason,
		})
	if result.Error != nil {
		return fmt.Errorf("update payment transaction %d: %w", tx.ID, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

func (p *paymentTransaction) GetByGatewayID(ctx context.Context, gateway model.Gateway, gatewayTxID string) (*model.PaymentTransaction, error) {
	return p.take(GetTx(ctx, p.db), "gateway = ? AND gateway_transaction_id = ?", gateway, gatewayTxID)
}

func (p *paymentTransaction) GetByGatewayIDForUpdate(ctx context.Context, gateway model.Gateway, gatewayTxID string) (*model.PaymentTransaction, error) {
	db := GetTx(ctx, p.db).Clauses(clause.Locking{Strength: "UPDATE"})
	return p.take(db, "gateway = ? AND gateway_transaction_id = ?", gateway, gatewayTxID)
}

func (p *paymentTransaction) GetByID(ctx context.Context, id int64) (*model.PaymentTransaction, error) {
	return p.take(GetTx(ctx, p.db), "id = ?", id)
}

func (p *paymentTransaction) FindProcessingByOrderKey(ctx context.Context, orderKey string) (*model.PaymentTransaction, error) {
	return p.take(GetTx(ctx, p.db), "order_key = ? AND status = ?", orderKey, model.TransactionStatusProcessing)
}

func (p *paymentTransaction) ListByCreateTime(ctx context.Context, gateway model.Gateway, from, to int64) ([]model.PaymentTransaction, error) {
	var txs []model.PaymentTransaction

	err := GetTx(ctx, p.db).
		Where("gateway = ? AND create_time BETWEEN ? AND ?", gateway, from, to).
		Order("create_time ASC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("list payment transactions: %w", err)
	}

	return txs, nil
}

func (p *paymentTransaction) take(db *gorm.DB, query string, args ...any) (*model.PaymentTransaction, error) {
	var tx model.PaymentTransaction

	err := db.Where(query, args...).Take(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, fmt.Errorf("get payment transaction: %w", err)
}

func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
