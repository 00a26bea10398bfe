package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/metrics"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/mocks"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/repository"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOrderResolver_CheckOrder(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	student := &model.Account{ID: "S-1001", FirstName: "Ali", ExpectedCharge: decimal.NewFromInt(50000), Active: true, Kind: model.AccountKindStudent}

	tests := []struct {
		name     string
		orderKey string
		amount   decimal.Decimal
		setup    func(accounts *mocks.AccountRepository)
		want     service.OrderStatus
		wantErr  bool
	}{
		{
			name:     "Found with exact amount",
			orderKey: "S-1001",
			amount:   decimal.RequireFromString("50000.00"),
			setup: func(accounts *mocks.AccountRepository) {
				accounts.On("FindByID", ctx, model.AccountKindStudent, "S-1001").Return(student, nil)
			},
			want: service.OrderFound,
		},
		{
			name:     "Amount mismatch",
			orderKey: "S-1001",
			amount:   decimal.NewFromInt(49999),
			setup: func(accounts *mocks.AccountRepository) {
				accounts.On("FindByID", ctx, model.AccountKindStudent, "S-1001").Return(student, nil)
			},
			want: service.OrderInvalidAmount,
		},
		{
			name:     "Inactive student falls through to lead",
			orderKey: "X-1",
			amount:   decimal.NewFromInt(10),
			setup: func(accounts *mocks.AccountRepository) {
				accounts.On("FindByID", ctx, model.AccountKindStudent, "X-1").
					Return(&model.Account{ID: "X-1", Active: false}, nil)
				accounts.On("FindByID", ctx, model.AccountKindLead, "X-1").
					Return(&model.Account{ID: "X-1", Active: true, Kind: model.AccountKindLead}, nil)
			},
			want: service.OrderFound,
		},
		{
			name:     "Not found in any table",
			orderKey: "X-2",
			amount:   decimal.NewFromInt(10),
			setup: func(accounts *mocks.AccountRepository) {
				accounts.On("FindByID", ctx, mock.Anything, "X-2").Return(nil, repository.ErrAccountNotFound)
			},
			want: service.OrderNotFound,
		},
		{
			name:     "Empty key",
			orderKey: "",
			amount:   decimal.NewFromInt(10),
			setup:    func(accounts *mocks.AccountRepository) {},
			want:     service.OrderNotFound,
		},
		{
			name:     "Non-positive amount",
			orderKey: "S-1001",
			amount:   decimal.Zero,
			setup: func(accounts *mocks.AccountRepository) {
				accounts.On("FindByID", ctx, model.AccountKindStudent, "S-1001").Return(student, nil)
			},
			want: service.OrderInvalidAmount,
		},
		{
			name:     "Database failure",
			orderKey: "S-1001",
			amount:   decimal.NewFromInt(10),
			setup: func(accounts *mocks.AccountRepository) {
				accounts.On("FindByID", ctx, model.AccountKindStudent, "S-1001").Return(nil, errors.New("connection refused"))
			},
			want:    service.OrderNotFound,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &mocks.AccountRepository{}
			tt.setup(accounts)
			resolver := service.NewOrderResolver(accounts, cache.NewNoopOrderKindCache(), m, zap.NewNop())

			status, _, err := resolver.CheckOrder(ctx, tt.orderKey, tt.amount)

			if tt.wantErr {
				var serviceErr service.Error
				require.True(t, errors.As(err, &serviceErr))
				assert.Equal(t, constants.ErrCodeInternalError, serviceErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
			accounts.AssertExpectations(t)
		})
	}
}

func TestOrderResolver_Cache(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	lead := &model.Account{ID: "L-1", Active: true, Kind: model.AccountKindLead}

	t.Run("Hit skips probing", func(t *testing.T) {
		accounts := &mocks.AccountRepository{}
		kinds := &mocks.OrderKindCache{}
		kinds.On("GetKind", ctx, "L-1").Return("lead", nil)
		accounts.On("FindByID", ctx, model.AccountKindLead, "L-1").Return(lead, nil)

		order, err := service.NewOrderResolver(accounts, kinds, m, zap.NewNop()).Resolve(ctx, "L-1")

		require.NoError(t, err)
		assert.Equal(t, model.AccountKindLead, order.Account.Kind)
		accounts.AssertNotCalled(t, "FindByID", ctx, model.AccountKindStudent, "L-1")
	})

	t.Run("Miss probes and remembers the kind", func(t *testing.T) {
		accounts := &mocks.AccountRepository{}
		kinds := &mocks.OrderKindCache{}
		kinds.On("GetKind", ctx, "L-1").Return("", cache.ErrMiss)
		kinds.On("SetKind", ctx, "L-1", "lead").Return(nil)
		accounts.On("FindByID", ctx, model.AccountKindStudent, "L-1").Return(nil, repository.ErrAccountNotFound)
		accounts.On("FindByID", ctx, model.AccountKindLead, "L-1").Return(lead, nil)

		_, err := service.NewOrderResolver(accounts, kinds, m, zap.NewNop()).Resolve(ctx, "L-1")

		require.NoError(t, err)
		kinds.AssertExpectations(t)
	})

	t.Run("Stale entry is evicted", func(t *testing.T) {
		accounts := &mocks.AccountRepository{}
		kinds := &mocks.OrderKindCache{}
		kinds.On("GetKind", ctx, "L-1").Return("student", nil)
		kinds.On("DeleteKind", ctx, "L-1").Return(nil)
		kinds.On("SetKind", ctx, "L-1", "lead").Return(nil)
		accounts.On("FindByID", ctx, model.AccountKindStudent, "L-1").Return(nil, repository.ErrAccountNotFound)
		accounts.On("FindByID", ctx, model.AccountKindLead, "L-1").Return(lead, nil)

		order, err := service.NewOrderResolver(accounts, kinds, m, zap.NewNop()).Resolve(ctx, "L-1")

		require.NoError(t, err)
		assert.Equal(t, "L-1", order.Key)
		kinds.AssertExpectations(t)
	})

	t.Run("Cache outage degrades to probing", func(t *testing.T) {
		accounts := &mocks.AccountRepository{}
		kinds := &mocks.OrderKindCache{}
		kinds.On("GetKind", ctx, "L-1").Return("", errors.New("dial tcp: connection refused"))
		kinds.On("SetKind", ctx, "L-1", "lead").Return(errors.New("dial tcp: connection refused"))
		accounts.On("FindByID", ctx, model.AccountKindStudent, "L-1").Return(nil, repository.ErrAccountNotFound)
		accounts.On("FindByID", ctx, model.AccountKindLead, "L-1").Return(lead, nil)

		order, err := service.NewOrderResolver(accounts, kinds, m, zap.NewNop()).Resolve(ctx, "L-1")

		require.NoError(t, err)
		assert.Equal(t, model.AccountKindLead, order.Account.Kind)
	})
}

func TestTransaction_CreateDuplicateKey(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewMetrics(prometheus.NewRegistry())

	txRepo := &mocks.PaymentTransactionRepository{}
	accounts := &mocks.AccountRepository{}
	events := &mocks.PaymentEventRepository{}
	txManager := &mocks.TxManager{}
	orders := &mocks.OrderResolver{}

	amount := decimal.NewFromInt(100)
	order := &service.Order{Key: "S-1", Account: model.Account{ID: "S-1", Kind: model.AccountKindStudent, Active: true}}
	stored := &model.PaymentTransaction{ID: 7, Gateway: model.GatewayClick, GatewayTransactionID: "c-1", OrderKey: "S-1", Amount: amount}

	txRepo.On("GetByGatewayID", ctx, model.GatewayClick, "c-1").Return(nil, repository.ErrTransactionNotFound).Twice()
	orders.On("CheckOrder", ctx, "S-1", amount).Return(service.OrderFound, order, nil)
	txManager.On("WithTx", ctx, mock.Anything).Return(nil)
	accounts.On("FindForUpdate", ctx, model.AccountKindStudent, "S-1").Return(&order.Account, nil)
	txRepo.On("FindProcessingByOrderKey", ctx, "S-1").Return(nil, repository.ErrTransactionNotFound)
	txRepo.On("Create", ctx, mock.AnythingOfType("*model.PaymentTransaction")).Return(repository.ErrTransactionExisted)
	txRepo.On("GetByGatewayID", ctx, model.GatewayClick, "c-1").Return(stored, nil).Once()

	svc := service.NewTransactionService(txRepo, accounts, events, txManager, orders, m, zap.NewNop())
	snapshot, err := svc.Create(ctx, service.CreateTransactionCommand{
		Gateway:              model.GatewayClick,
		GatewayTransactionID: "c-1",
		OrderKey:             "S-1",
		Amount:               amount,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), snapshot.ID)
	txRepo.AssertExpectations(t)
}
