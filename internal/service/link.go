package service

import (
	"context"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/config"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/metrics"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/click"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/paycom"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentLinkService interface {
	CreateLink(ctx context.Context, cmd CreatePaymentLinkCommand) (PaymentLink, error)
}

type PaymentLinkGenerator struct {
	orders  OrderResolver
	metrics *metrics.Metrics
	payme   config.Payme
	click   config.Click
	logger  *zap.Logger
}

func NewPaymentLinkService(orders OrderResolver, metrics *metrics.Metrics, cfg *config.Config, logger *zap.Logger) PaymentLinkService {
	return &PaymentLinkGenerator{orders: orders, metrics: metrics, payme: cfg.Payme, click: cfg.Click, logger: logger}
}

// CreateLink falls back to the account's expected charge when no amount is given.
func (p *PaymentLinkGenerator) CreateLink(ctx context.Context, cmd CreatePaymentLinkCommand) (PaymentLink, error) {
	if cmd.Gateway != model.GatewayPayme && cmd.Gateway != model.GatewayClick {
		return PaymentLink{}, NewServiceError(constants.ErrCodeUnsupportedGateway, ErrUnsupportedGateway)
	}

	order, err := p.orders.Resolve(ctx, cmd.OrderKey)
	if err != nil {
		return PaymentLink{}, err
	}

	amount := cmd.Amount
	if amount.IsZero() {
		amount = order.ExpectedAmount()
	}
	if !amount.IsPositive() {
		return PaymentLink{}, NewServiceError(constants.ErrCodeInvalidAmount, ErrInvalidAmount)
	}

	link := PaymentLink{Gateway: cmd.Gateway, OrderKey: cmd.OrderKey, Amount: amount}

	switch cmd.Gateway {
	case model.GatewayPayme:
		link.URL = paycom.CheckoutLink(paycom.LinkParams{
			CheckoutURL: p.payme.CheckoutURL,
			MerchantID:  p.payme.MerchantID,
			AccountKey:  p.payme.AccountKey,
			OrderID:     cmd.OrderKey,
			Amount:      amount.Mul(decimal.NewFromInt(unit(p.payme.MinorUnit))).IntPart(),
			ReturnURL:   cmd.ReturnURL,
		})
	case model.GatewayClick:
		link.URL = click.PayLink(click.LinkParams{
			PayURL:     p.click.PayURL,
			ServiceID:  p.click.ServiceID,
			MerchantID: p.click.MerchantID,
			Amount:     amount.Mul(decimal.NewFromInt(unit(p.click.MinorUnit))).String(),
			OrderID:    cmd.OrderKey,
			ReturnURL:  cmd.ReturnURL,
		})
	}

	p.metrics.RecordPaymentLink(string(cmd.Gateway))
	p.logger.Info("Payment link generated",
		zap.String("gateway", string(cmd.Gateway)),
		zap.String("orderKey", cmd.OrderKey),
		zap.String("amount", amount.String()))

	return link, nil
}
