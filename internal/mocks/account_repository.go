package mocks

import (
	"context"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type AccountRepository struct {
	mock.Mock
}

func (a *AccountRepository) FindByID(ctx context.Context, kind model.AccountKind, id string) (*model.Account, error) {
	args := a.Called(ctx, kind, id)
	acc, _ := args.Get(0).(*model.Account)
	return acc, args.Error(1)
}

func (a *AccountRepository) FindForUpdate(ctx context.Context, kind model.AccountKind, id string) (*model.Account, error) {
	args := a.Called(ctx, kind, id)
	acc, _ := args.Get(0).(*model.Account)
	return acc, args.Error(1)
}

func (a *AccountRepository) Credit(ctx context.Context, kind model.AccountKind, id string, amount decimal.Decimal) error {
	args := a.Called(ctx, kind, id, amount)
	return args.Error(0)
}

func (a *AccountRepository) Debit(ctx context.Context, kind model.AccountKind, id string, amount decimal.Decimal) error {
	args := a.Called(ctx, kind, id, amount)
	return args.Error(0)
}
