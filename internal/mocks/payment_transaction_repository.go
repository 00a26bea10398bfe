package mocks

import (
	"context"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/stretchr/testify/mock"
)

type PaymentTransactionRepository struct {
	mock.Mock
}

func (p *PaymentTransactionRepository) Create(ctx context.Context, tx *model.PaymentTransaction) error {
	args := p.Called(ctx, tx)
	return args.Error(0)
}

func (p *PaymentTransactionRepository) Update(ctx context.Context, tx *model.PaymentTransaction) error {
	args := p.Called(ctx, tx)
	return args.Error(0)
}

func (p *PaymentTransactionRepository) GetByGatewayID(ctx context.Context, gateway model.Gateway, gatewayTxID string) (*model.PaymentTransaction, error) {
	args := p.Called(ctx, gateway, gatewayTxID)
	tx, _ := args.Get(0).(*model.PaymentTransaction)
	return tx, args.Error(1)
}

func (p *PaymentTransactionRepository) GetByGatewayIDForUpdate(ctx context.Context, gateway model.Gateway, gatewayTxID string) (*model.PaymentTransaction, error) {
	args := p.Called(ctx, gateway, gatewayTxID)
	tx, _ := args.Get(0).(*model.PaymentTransaction)
	return tx, args.Error(1)
}

func (p *PaymentTransactionRepository) GetByID(ctx context.Context, id int64) (*model.PaymentTransaction, error) {
	args := p.Called(ctx, id)
	tx, _ := args.Get(0).(*model.PaymentTransaction)
	return tx, args.Error(1)
}

func (p *PaymentTransactionRepository) FindProcessingByOrderKey(ctx context.Context, orderKey string) (*model.PaymentTransaction, error) {
	args := p.Called(ctx, orderKey)
	tx, _ := args.Get(0).(*model.PaymentTransaction)
	return tx, args.Error(1)
}

func (p *PaymentTransactionRepository) ListByCreateTime(ctx context.Context, gateway model.Gateway, from, to int64) ([]model.PaymentTransaction, error) {
	args := p.Called(ctx, gateway, from, to)
	txs, _ := args.Get(0).([]model.PaymentTransaction)
	return txs, args.Error(1)
}
