package mocks

import (
	"context"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/paycom"
	"github.com/stretchr/testify/mock"
)

type PaymeService struct {
	mock.Mock
}

func (p *PaymeService) CheckPerformTransaction(ctx context.Context, cmd service.PaymeCheckPerformCommand) (paycom.CheckPerformResult, error) {
	args := p.Called(ctx, cmd)
	return args.Get(0).(paycom.CheckPerformResult), args.Error(1)
}

func (p *PaymeService) CreateTransaction(ctx context.Context, cmd service.PaymeCreateCommand) (paycom.CreateResult, error) {
	args := p.Called(ctx, cmd)
	return args.Get(0).(paycom.CreateResult), args.Error(1)
}

func (p *PaymeService) PerformTransaction(ctx context.Context, id string) (paycom.PerformResult, error) {
	args := p.Called(ctx, id)
	return args.Get(0).(paycom.PerformResult), args.Error(1)
}

func (p *PaymeService) CheckTransaction(ctx context.Context, id string) (paycom.CheckResult, error) {
	args := p.Called(ctx, id)
	return args.Get(0).(paycom.CheckResult), args.Error(1)
}

func (p *PaymeService) CancelTransaction(ctx context.Context, id string, reason int) (paycom.CheckResult, error) {
	args := p.Called(ctx, id, reason)
	return args.Get(0).(paycom.CheckResult), args.Error(1)
}

func (p *PaymeService) GetStatement(ctx context.Context, from, to int64) (paycom.StatementResult, error) {
	args := p.Called(ctx, from, to)
	return args.Get(0).(paycom.StatementResult), args.Error(1)
}
