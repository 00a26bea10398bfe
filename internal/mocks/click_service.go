package mocks

import (
	"context"

	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/click"
	"github.com/stretchr/testify/mock"
)

type ClickService struct {
	mock.Mock
}

func (c *ClickService) Handle(ctx context.Context, req click.Request) click.Response {
	args := c.Called(ctx, req)
	return args.Get(0).(click.Response)
}

func (c *ClickService) Prepare(ctx context.Context, req click.Request) click.Response {
	args := c.Called(ctx, req)
	return args.Get(0).(click.Response)
}

func (c *ClickService) Complete(ctx context.Context, req click.Request) click.Response {
	args := c.Called(ctx, req)
	return args.Get(0).(click.Response)
}
