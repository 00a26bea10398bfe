package service

import (
	"context"
	"errors"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/metrics"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/repository"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderStatus int

const (
	OrderFound OrderStatus = iota
	OrderNotFound
	OrderInvalidAmount
)

func (s OrderStatus) String() string {
	switch s {
	case OrderFound:
		return "found"
	case OrderNotFound:
		return "not_found"
	case OrderInvalidAmount:
		return "invalid_amount"
	default:
		return "unknown"
	}
}

type Order struct {
	Key     string
	Account model.Account
}

// ExpectedAmount is zero when the account has no fixed charge.
func (o Order) ExpectedAmount() decimal.Decimal {
	return o.Account.ExpectedCharge
}

type OrderResolver interface {
	CheckOrder(ctx context.Context, orderKey string, amount decimal.Decimal) (OrderStatus, *Order, error)
	Resolve(ctx context.Context, orderKey string) (*Order, error)
}

type orderResolver struct {
	accounts repository.AccountRepository
	kinds    cache.OrderKindCache
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewOrderResolver(accounts repository.AccountRepository, kinds cache.OrderKindCache, metrics *metrics.Metrics,
	logger *zap.Logger) OrderResolver {
	return &orderResolver{accounts: accounts, kinds: kinds, metrics: metrics, logger: logger}
}

// CheckOrder never writes. An account with a zero expected charge accepts any positive amount.
func (o *orderResolver) CheckOrder(ctx context.Context, orderKey string, amount decimal.Decimal) (OrderStatus, *Order, error) {
	order, err := o.Resolve(ctx, orderKey)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			o.metrics.RecordOrderCheck(OrderNotFound.String())
			return OrderNotFound, nil, nil
		}
		return OrderNotFound, nil, err
	}

	expected := order.ExpectedAmount()
	if !amount.IsPositive() || (!expected.IsZero() && !expected.Equal(amount)) {
		o.logger.Info("Order amount mismatch",
			zap.String("orderKey", orderKey),
			zap.String("expected", expected.String()),
			zap.String("amount", amount.String()))
		o.metrics.RecordOrderCheck(OrderInvalidAmount.String())
		return OrderInvalidAmount, order, nil
	}

	o.metrics.RecordOrderCheck(OrderFound.String())

	return OrderFound, order, nil
}

// Resolve probes account kinds in priority order; the first active match wins.
func (o *orderResolver) Resolve(ctx context.Context, orderKey string) (*Order, error) {
	if orderKey == "" {
		return nil, NewServiceError(constants.ErrCodeOrderNotFound, ErrOrderNotFound)
	}

	if order, ok := o.resolveCached(ctx, orderKey); ok {
		return order, nil
	}

	for _, kind := range model.AccountKinds {
		acc, err := o.accounts.FindByID(ctx, kind, orderKey)
		if errors.Is(err, repository.ErrAccountNotFound) {
			continue
		}
		if err != nil {
			o.logger.Error("Failed to look up account",
				zap.String("orderKey", orderKey),
				zap.String("kind", string(kind)),
				zap.Error(err))
			return nil, NewServiceError(constants.ErrCodeInternalError, ErrDatabase)
		}

		if !acc.Active {
			o.logger.Debug("Skipping inactive account",
				zap.String("orderKey", orderKey),
				zap.String("kind", string(kind)))
			continue
		}

		if err := o.kinds.SetKind(ctx, orderKey, string(kind)); err != nil {
			o.logger.Warn("Failed to cache order kind", zap.String("orderKey", orderKey), zap.Error(err))
		}

		return &Order{Key: orderKey, Account: *acc}, nil
	}

	return nil, NewServiceError(constants.ErrCodeOrderNotFound, ErrOrderNotFound)
}

// resolveCached trusts the cache only for the kind. The account itself is always read from the database.
func (o *orderResolver) resolveCached(ctx context.Context, orderKey string) (*Order, bool) {
	kind, err := o.kinds.GetKind(ctx, orderKey)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			o.logger.Warn("Order kind cache unavailable", zap.String("orderKey", orderKey), zap.Error(err))
			o.metrics.RecordOrderCacheLookup("error")
			return nil, false
		}
		o.metrics.RecordOrderCacheLookup("miss")
		return nil, false
	}

	acc, err := o.accounts.FindByID(ctx, model.AccountKind(kind), orderKey)
	if err != nil || !acc.Active {
		o.metrics.RecordOrderCacheLookup("stale")
		if err := o.kinds.DeleteKind(ctx, orderKey); err != nil {
			o.logger.Warn("Failed to evict order kind", zap.String("orderKey", orderKey), zap.Error(err))
		}
		return nil, false
	}

	o.metrics.RecordOrderCacheLookup("hit")

	return &Order{Key: orderKey, Account: *acc}, true
}
