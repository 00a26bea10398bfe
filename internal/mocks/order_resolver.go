package mocks

import (
	"context"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type OrderResolver struct {
	mock.Mock
}

func (o *OrderResolver) CheckOrder(ctx context.Context, orderKey string, amount decimal.Decimal) (service.OrderStatus, *service.Order, error) {
	args := o.Called(ctx, orderKey, amount)
	order, _ := args.Get(1).(*service.Order)
	return args.Get(0).(service.OrderStatus), order, args.Error(2)
}

func (o *OrderResolver) Resolve(ctx context.Context, orderKey string) (*service.Order, error) {
	args := o.Called(ctx, orderKey)
	order, _ := args.Get(0).(*service.Order)
	return order, args.Error(1)
}

type OrderKindCache struct {
	mock.Mock
}

func (o *OrderKindCache) GetKind(ctx context.Context, orderKey string) (string, error) {
	args := o.Called(ctx, orderKey)
	return args.String(0), args.Error(1)
}

func (o *OrderKindCache) SetKind(ctx context.Context, orderKey, kind string) error {
	args := o.Called(ctx, orderKey, kind)
	return args.Error(0)
}

func (o *OrderKindCache) DeleteKind(ctx context.Context, orderKey string) error {
	args := o.Called(ctx, orderKey)
	return args.Error(0)
}
