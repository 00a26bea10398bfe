package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/config"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/click"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const clickSignTimeLayout = "2006-01-02 15:04:05"

// ClickService answers Click prepare and complete calls. Every outcome is
// rendered as a click.Response, failures included.
type ClickService interface {
	Handle(ctx context.Context, req click.Request) click.Response
	Prepare(ctx context.Context, req click.Request) click.Response
	Complete(ctx context.Context, req click.Request) click.Response
}

type Click struct {
	transactions TransactionService
	cfg          config.Click
	logger       *zap.Logger
}

func NewClickService(transactions TransactionService, cfg *config.Config, logger *zap.Logger) ClickService {
	return &Click{transactions: transactions, cfg: cfg.Click, logger: logger}
}

// Handle routes by the action field.
func (c *Click) Handle(ctx context.Context, req click.Request) click.Response {
	switch req.Action {
	case strconv.Itoa(click.ActionPrepare):
		return c.Prepare(ctx, req)
	case strconv.Itoa(click.ActionComplete):
		return c.Complete(ctx, req)
	default:
		if resp, ok := c.authorize(req); !ok {
			return resp
		}
		return click.NewResponse(req, click.CodeActionNotFound)
	}
}

func (c *Click) Prepare(ctx context.Context, req click.Request) click.Response {
	if resp, ok := c.authorize(req); !ok {
		return resp
	}
	if req.Action != strconv.Itoa(click.ActionPrepare) {
		return click.NewResponse(req, click.CodeActionNotFound)
	}

	amount, err := c.parseAmount(req.Amount)
	if err != nil {
		return click.NewResponse(req, click.CodeIncorrectAmount)
	}

	snapshot, err := c.transactions.Create(ctx, CreateTransactionCommand{
		Gateway:              model.GatewayClick,
		GatewayTransactionID: req.ClickTransID,
		OrderKey:             req.MerchantTransID,
		Amount:               amount,
		RequestID:            parseInt(req.ClickPaydocID),
		GatewayTime:          c.parseSignTime(req.SignTime),
	})
	if err != nil {
		return click.NewResponse(req, ClickErrorCode(err))
	}

	switch {
	case snapshot.IsPerformed():
		return click.NewResponse(req, click.CodeAlreadyPaid).WithID(snapshot.ID)
	case snapshot.IsCancelled():
		return click.NewResponse(req, click.CodeTransactionCanceled).WithID(snapshot.ID)
	}

	return click.NewResponse(req, click.CodeSuccess).WithID(snapshot.ID)
}

func (c *Click) Complete(ctx context.Context, req click.Request) click.Response {
	if resp, ok := c.authorize(req); !ok {
		return resp
	}
	if req.Action != strconv.Itoa(click.ActionComplete) {
		return click.NewResponse(req, click.CodeActionNotFound)
	}

	prepareID, err := strconv.ParseInt(req.MerchantPrepareID, 10, 64)
	if err != nil {
		return click.NewResponse(req, click.CodeTransactionNotFound)
	}

	snapshot, err := c.transactions.GetByID(ctx, prepareID)
	if err != nil {
		return click.NewResponse(req, ClickErrorCode(err))
	}
	if snapshot.Gateway != model.GatewayClick || snapshot.GatewayTransactionID != req.ClickTransID {
		c.logger.Warn("Prepare id does not belong to click transaction",
			zap.Int64("merchantPrepareID", prepareID),
			zap.String("clickTransID", req.ClickTransID))
		return click.NewResponse(req, click.CodeTransactionNotFound)
	}

	key := TransactionKey{Gateway: model.GatewayClick, GatewayTransactionID: req.ClickTransID}

	if clickErr := parseInt(req.Error); clickErr < 0 {
		if snapshot.IsPerformed() {
			return click.NewResponse(req, click.CodeAlreadyPaid).WithID(snapshot.ID)
		}

		reason := model.ReasonGatewayError
		if clickErr == click.ErrorInsufficientFunds {
			reason = model.ReasonInsufficientFunds
		}

		if _, err := c.transactions.Cancel(ctx, CancelTransactionCommand{Key: key, Reason: reason}); err != nil {
			return click.NewResponse(req, ClickErrorCode(err))
		}

		c.logger.Info("Click reported failed payment",
			zap.String("clickTransID", req.ClickTransID),
			zap.Int64("error", clickErr),
			zap.String("errorNote", req.ErrorNote))

		return click.NewResponse(req, click.CodeTransactionCanceled).WithID(snapshot.ID)
	}

	if snapshot.IsCancelled() {
		return click.NewResponse(req, click.CodeTransactionCanceled).WithID(snapshot.ID)
	}

	amount, err := c.parseAmount(req.Amount)
	if err != nil || !amount.Equal(snapshot.Amount) {
		c.logger.Warn("Complete amount does not match prepared amount",
			zap.String("clickTransID", req.ClickTransID),
			zap.String("amount", req.Amount),
			zap.String("prepared", snapshot.Amount.String()))
		return click.NewResponse(req, click.CodeIncorrectAmount)
	}

	if snapshot.IsPerformed() {
		return click.NewResponse(req, click.CodeSuccess).WithID(snapshot.ID)
	}

	performed, err := c.transactions.Perform(ctx, key)
	if err != nil {
		return click.NewResponse(req, ClickErrorCode(err))
	}

	return click.NewResponse(req, click.CodeSuccess).WithID(performed.ID)
}

// authorize checks the service id and signature before anything touches the database.
func (c *Click) authorize(req click.Request) (click.Response, bool) {
	if req.ServiceID != c.cfg.ServiceID || !click.VerifySign(req, c.cfg.SecretKey) {
		c.logger.Warn("Click sign check failed",
			zap.String("clickTransID", req.ClickTransID),
			zap.String("serviceID", req.ServiceID))
		return click.NewResponse(req, click.CodeSignCheckFailed), false
	}

	return click.Response{}, true
}

func (c *Click) parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Div(decimal.NewFromInt(unit(c.cfg.MinorUnit))), nil
}

func (c *Click) parseSignTime(raw string) int64 {
	t, err := time.ParseInLocation(clickSignTimeLayout, raw, time.Local)
	if err != nil {
		return 0
	}

	return t.UnixMilli()
}

func parseInt(raw string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}

	return v
}

// ClickErrorCode maps a service error onto Click's error codes.
func ClickErrorCode(err error) int {
	switch CodeOf(err) {
	case constants.ErrCodeOrderNotFound:
		return click.CodeUserNotFound
	case constants.ErrCodeInvalidAmount:
		return click.CodeIncorrectAmount
	case constants.ErrCodeTransactionNotFound:
		return click.CodeTransactionNotFound
	case constants.ErrCodeUnableToPerform, constants.ErrCodeTransactionCanceled:
		return click.CodeTransactionCanceled
	case constants.ErrCodeAlreadyPaid:
		return click.CodeAlreadyPaid
	case constants.ErrCodeOrderOnProcess, constants.ErrCodeInvalidParams, constants.ErrCodeInvalidRequestBody:
		return click.CodeBadRequest
	case constants.ErrCodeSignCheckFailed, constants.ErrCodeUnauthorized:
		return click.CodeSignCheckFailed
	case constants.ErrCodeActionNotFound:
		return click.CodeActionNotFound
	default:
		return click.CodeFailedToUpdateUser
	}
}
