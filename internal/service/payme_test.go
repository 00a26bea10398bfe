package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/config"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/metrics"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/mocks"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/cache"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/paycom"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func paymeConfig() *config.Config {
	return &config.Config{Payme: config.Payme{
		AccountKey: "order_id",
		MinorUnit:  100,
		MinAmount:  100000,
		MaxAmount:  999999999,
	}}
}

func TestPayme_CheckPerformTransaction(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		amount   int64
		status   service.OrderStatus
		wantCode string
	}{
		{name: "Allowed", amount: 5000000, status: service.OrderFound},
		{name: "Order not found wins over bounds", amount: 10, status: service.OrderNotFound, wantCode: constants.ErrCodeOrderNotFound},
		{name: "Lower bound is exclusive", amount: 100000, status: service.OrderFound, wantCode: constants.ErrCodeInvalidAmount},
		{name: "Upper bound is exclusive", amount: 999999999, status: service.OrderFound, wantCode: constants.ErrCodeInvalidAmount},
		{name: "Expected charge mismatch", amount: 4000000, status: service.OrderInvalidAmount, wantCode: constants.ErrCodeInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &mocks.OrderResolver{}
			orders.On("CheckOrder", ctx, "S-1001", service.ToMajor(tt.amount, 100)).Return(tt.status, nil, nil)
			svc := service.NewPaymeService(&mocks.TransactionService{}, orders, paymeConfig(), zap.NewNop())

			result, err := svc.CheckPerformTransaction(ctx, service.PaymeCheckPerformCommand{OrderKey: "S-1001", Amount: tt.amount})

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.True(t, result.Allow)
				return
			}
			assert.Equal(t, tt.wantCode, service.CodeOf(err))
		})
	}
}

func TestPayme_CreateTransactionConvertsTiyin(t *testing.T) {
	ctx := context.Background()
	transactions := &mocks.TransactionService{}
	transactions.On("Create", ctx, service.CreateTransactionCommand{
		Gateway:              model.GatewayPayme,
		GatewayTransactionID: "5305e3bab097f420a62ced0b",
		OrderKey:             "S-1001",
		Amount:               decimal.NewFromInt(5000000).Div(decimal.NewFromInt(100)),
		RequestID:            3,
		GatewayTime:          1399114284039,
	}).Return(service.Snapshot{GatewayTransactionID: "5305e3bab097f420a62ced0b", CreateTime: 1399114284039}, nil)

	svc := service.NewPaymeService(transactions, &mocks.OrderResolver{}, paymeConfig(), zap.NewNop())
	result, err := svc.CreateTransaction(ctx, service.PaymeCreateCommand{
		ID:        "5305e3bab097f420a62ced0b",
		Time:      1399114284039,
		Amount:    5000000,
		OrderKey:  "S-1001",
		RequestID: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, "5305e3bab097f420a62ced0b", result.Transaction)
	assert.Equal(t, 0, result.State)
	transactions.AssertExpectations(t)
}

func TestPaymeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		data any
	}{
		{"Order not found carries account key", service.NewServiceError(constants.ErrCodeOrderNotFound, service.ErrOrderNotFound), paycom.CodeOrderNotFound, "order_id"},
		{"Invalid amount", service.NewServiceError(constants.ErrCodeInvalidAmount, service.ErrInvalidAmount), paycom.CodeInvalidAmount, nil},
		{"Transaction not found", service.NewServiceError(constants.ErrCodeTransactionNotFound, service.ErrTransactionNotFound), paycom.CodeTransactionNotFound, nil},
		{"Unable to perform", service.NewServiceError(constants.ErrCodeUnableToPerform, service.ErrUnableToPerform), paycom.CodeUnableToPerform, nil},
		{"Plain error is internal", errors.New("boom"), paycom.CodeInternal, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.PaymeError(tt.err, "order_id")
			assert.Equal(t, tt.want, got.Code)
			assert.Equal(t, tt.data, got.Data)
		})
	}
}

// TestPayme_StudentScenario walks S-1001 through check, create, perform,
// replayed perform and cancel against the in-memory store.
func TestPayme_StudentScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addAccount(model.AccountKindStudent, model.Account{
		ID:             "S-1001",
		FirstName:      "Aziz",
		Balance:        decimal.NewFromInt(20000),
		ExpectedCharge: decimal.NewFromInt(50000),
		Active:         true,
	})

	m := metrics.NewMetrics(prometheus.NewRegistry())
	logger := zap.NewNop()
	orders := service.NewOrderResolver(memAccounts{store}, cache.NewNoopOrderKindCache(), m, logger)
	transactions := service.NewTransactionService(memTransactions{store}, memAccounts{store}, memEvents{store}, store, orders, m, logger)
	payme := service.NewPaymeService(transactions, orders, paymeConfig(), logger)

	check, err := payme.CheckPerformTransaction(ctx, service.PaymeCheckPerformCommand{OrderKey: "S-1001", Amount: 5000000})
	require.NoError(t, err)
	assert.True(t, check.Allow)

	_, err = payme.CheckPerformTransaction(ctx, service.PaymeCheckPerformCommand{OrderKey: "S-1001", Amount: 4000000})
	assert.Equal(t, constants.ErrCodeInvalidAmount, service.CodeOf(err))

	created, err := payme.CreateTransaction(ctx, service.PaymeCreateCommand{ID: "pm-1", Time: 1700000000000, Amount: 5000000, OrderKey: "S-1001"})
	require.NoError(t, err)
	assert.Equal(t, 0, created.State)

	replayed, err := payme.CreateTransaction(ctx, service.PaymeCreateCommand{ID: "pm-1", Time: 1700000000000, Amount: 5000000, OrderKey: "S-1001"})
	require.NoError(t, err)
	assert.Equal(t, created, replayed)

	_, err = payme.CreateTransaction(ctx, service.PaymeCreateCommand{ID: "pm-2", Time: 1700000000001, Amount: 5000000, OrderKey: "S-1001"})
	assert.Equal(t, paycom.CodeOrderOnProcess, service.PaymeError(err, "order_id").Code)

	performed, err := payme.PerformTransaction(ctx, "pm-1")
	require.NoError(t, err)
	assert.Equal(t, 1, performed.State)
	assert.True(t, store.balance(model.AccountKindStudent, "S-1001").Equal(decimal.NewFromInt(70000)))

	again, err := payme.PerformTransaction(ctx, "pm-1")
	require.NoError(t, err)
	assert.Equal(t, performed, again)
	assert.True(t, store.balance(model.AccountKindStudent, "S-1001").Equal(decimal.NewFromInt(70000)))

	cancelled, err := payme.CancelTransaction(ctx, "pm-1", 5)
	require.NoError(t, err)
	assert.Equal(t, -2, cancelled.State)
	require.NotNil(t, cancelled.Reason)
	assert.Equal(t, 5, *cancelled.Reason)
	assert.True(t, store.balance(model.AccountKindStudent, "S-1001").Equal(decimal.NewFromInt(20000)))

	checked, err := payme.CheckTransaction(ctx, "pm-1")
	require.NoError(t, err)
	assert.Equal(t, cancelled, checked)

	statement, err := payme.GetStatement(ctx, 0, math.MaxInt64)
	require.NoError(t, err)
	require.Len(t, statement.Transactions, 1)
	assert.Equal(t, int64(5000000), statement.Transactions[0].Amount)
	assert.Equal(t, map[string]string{"order_id": "S-1001"}, statement.Transactions[0].Account)

	_, err = payme.CheckTransaction(ctx, "unknown")
	assert.Equal(t, paycom.CodeTransactionNotFound, service.PaymeError(err, "order_id").Code)
}
