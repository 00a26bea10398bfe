package mocks

import (
	"context"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/stretchr/testify/mock"
)

type TransactionService struct {
	mock.Mock
}

func (t *TransactionService) Create(ctx context.Context, cmd service.CreateTransactionCommand) (service.Snapshot, error) {
	args := t.Called(ctx, cmd)
	return args.Get(0).(service.Snapshot), args.Error(1)
}

func (t *TransactionService) Perform(ctx context.Context, key service.TransactionKey) (service.Snapshot, error) {
	args := t.Called(ctx, key)
	return args.Get(0).(service.Snapshot), args.Error(1)
}

func (t *TransactionService) Cancel(ctx context.Context, cmd service.CancelTransactionCommand) (service.Snapshot, error) {
	args := t.Called(ctx, cmd)
	return args.Get(0).(service.Snapshot), args.Error(1)
}

func (t *TransactionService) Check(ctx context.Context, key service.TransactionKey) (service.Snapshot, error) {
	args := t.Called(ctx, key)
	return args.Get(0).(service.Snapshot), args.Error(1)
}

func (t *TransactionService) Statement(ctx context.Context, query service.StatementQuery) ([]service.Snapshot, error) {
	args := t.Called(ctx, query)
	snapshots, _ := args.Get(0).([]service.Snapshot)
	return snapshots, args.Error(1)
}

func (t *TransactionService) GetByID(ctx context.Context, id int64) (service.Snapshot, error) {
	args := t.Called(ctx, id)
	return args.Get(0).(service.Snapshot), args.Error(1)
}
