package service

import (
	"context"
	"errors"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/config"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/paycom"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymeCheckPerformCommand struct {
	OrderKey string
	Amount   int64
}

type PaymeCreateCommand struct {
	ID        string
	Time      int64
	Amount    int64
	OrderKey  string
	RequestID int64
}

// PaymeService adapts the merchant API methods onto the transaction state machine.
// Amounts cross this boundary in tiyin.
type PaymeService interface {
	CheckPerformTransaction(ctx context.Context, cmd PaymeCheckPerformCommand) (paycom.CheckPerformResult, error)
	CreateTransaction(ctx context.Context, cmd PaymeCreateCommand) (paycom.CreateResult, error)
	PerformTransaction(ctx context.Context, id string) (paycom.PerformResult, error)
	CheckTransaction(ctx context.Context, id string) (paycom.CheckResult, error)
	CancelTransaction(ctx context.Context, id string, reason int) (paycom.CheckResult, error)
	GetStatement(ctx context.Context, from, to int64) (paycom.StatementResult, error)
}

type Payme struct {
	transactions TransactionService
	orders       OrderResolver
	cfg          config.Payme
	logger       *zap.Logger
}

func NewPaymeService(transactions TransactionService, orders OrderResolver, cfg *config.Config, logger *zap.Logger) PaymeService {
	return &Payme{transactions: transactions, orders: orders, cfg: cfg.Payme, logger: logger}
}

func (p *Payme) CheckPerformTransaction(ctx context.Context, cmd PaymeCheckPerformCommand) (paycom.CheckPerformResult, error) {
	status, _, err := p.orders.CheckOrder(ctx, cmd.OrderKey, p.toMajor(cmd.Amount))
	if err != nil {
		return paycom.CheckPerformResult{}, err
	}

	if status == OrderNotFound {
		return paycom.CheckPerformResult{}, NewServiceError(constants.ErrCodeOrderNotFound, ErrOrderNotFound)
	}

	if !p.withinBounds(cmd.Amount) {
		p.logger.Info("Amount out of bounds",
			zap.String("orderKey", cmd.OrderKey),
			zap.Int64("amount", cmd.Amount),
			zap.Int64("min", p.cfg.MinAmount),
			zap.Int64("max", p.cfg.MaxAmount))
		return paycom.CheckPerformResult{}, NewServiceError(constants.ErrCodeInvalidAmount, ErrInvalidAmount)
	}

	if status == OrderInvalidAmount {
		return paycom.CheckPerformResult{}, NewServiceError(constants.ErrCodeInvalidAmount, ErrInvalidAmount)
	}

	return paycom.CheckPerformResult{Allow: true}, nil
}

func (p *Payme) CreateTransaction(ctx context.Context, cmd PaymeCreateCommand) (paycom.CreateResult, error) {
	snapshot, err := p.transactions.Create(ctx, CreateTransactionCommand{
		Gateway:              model.GatewayPayme,
		GatewayTransactionID: cmd.ID,
		OrderKey:             cmd.OrderKey,
		Amount:               p.toMajor(cmd.Amount),
		RequestID:            cmd.RequestID,
		GatewayTime:          cmd.Time,
	})
	if err != nil {
		return paycom.CreateResult{}, err
	}

	return paycom.CreateResult{
		CreateTime:  snapshot.CreateTime,
		Transaction: snapshot.GatewayTransactionID,
		State:       int(snapshot.State),
	}, nil
}

func (p *Payme) PerformTransaction(ctx context.Context, id string) (paycom.PerformResult, error) {
	snapshot, err := p.transactions.Perform(ctx, p.key(id))
	if err != nil {
		return paycom.PerformResult{}, err
	}

	return paycom.PerformResult{
		Transaction: snapshot.GatewayTransactionID,
		PerformTime: snapshot.PerformTime,
		State:       int(snapshot.State),
	}, nil
}

func (p *Payme) CheckTransaction(ctx context.Context, id string) (paycom.CheckResult, error) {
	snapshot, err := p.transactions.Check(ctx, p.key(id))
	if err != nil {
		return paycom.CheckResult{}, err
	}

	return checkResult(snapshot), nil
}

func (p *Payme) CancelTransaction(ctx context.Context, id string, reason int) (paycom.CheckResult, error) {
	snapshot, err := p.transactions.Cancel(ctx, CancelTransactionCommand{Key: p.key(id), Reason: reason})
	if err != nil {
		return paycom.CheckResult{}, err
	}

	return checkResult(snapshot), nil
}

func (p *Payme) GetStatement(ctx context.Context, from, to int64) (paycom.StatementResult, error) {
	snapshots, err := p.transactions.Statement(ctx, StatementQuery{Gateway: model.GatewayPayme, From: from, To: to})
	if err != nil {
		return paycom.StatementResult{}, err
	}

	result := paycom.StatementResult{Transactions: make([]paycom.StatementTransaction, 0, len(snapshots))}
	for _, s := range snapshots {
		result.Transactions = append(result.Transactions, paycom.StatementTransaction{
			ID:          s.GatewayTransactionID,
			Time:        s.GatewayTime,
			Amount:      p.toMinor(s.Amount),
			Account:     map[string]string{p.cfg.AccountKey: s.OrderKey},
			CreateTime:  s.CreateTime,
			PerformTime: s.PerformTime,
			CancelTime:  s.CancelTime,
			Transaction: s.GatewayTransactionID,
			State:       int(s.State),
			Reason:      s.Reason,
		})
	}

	return result, nil
}

func (p *Payme) key(id string) TransactionKey {
	return TransactionKey{Gateway: model.GatewayPayme, GatewayTransactionID: id}
}

// withinBounds is exclusive on both ends.
func (p *Payme) withinBounds(amount int64) bool {
	if p.cfg.MinAmount > 0 && amount <= p.cfg.MinAmount {
		return false
	}
	if p.cfg.MaxAmount > 0 && amount >= p.cfg.MaxAmount {
		return false
	}
	return true
}

func (p *Payme) toMajor(minor int64) decimal.Decimal {
	return ToMajor(minor, p.cfg.MinorUnit)
}

func (p *Payme) toMinor(major decimal.Decimal) int64 {
	return major.Mul(decimal.NewFromInt(unit(p.cfg.MinorUnit))).IntPart()
}

// ToMajor divides a minor-unit amount by factor exactly once.
func ToMajor(minor, factor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(unit(factor)))
}

func unit(factor int64) int64 {
	if factor <= 0 {
		return 1
	}
	return factor
}

func checkResult(s Snapshot) paycom.CheckResult {
	return paycom.CheckResult{
		CreateTime:  s.CreateTime,
		PerformTime: s.PerformTime,
		CancelTime:  s.CancelTime,
		Transaction: s.GatewayTransactionID,
		State:       int(s.State),
		Reason:      s.Reason,
	}
}

// PaymeError maps a service error onto the merchant API catalogue. Anything
// unrecognised becomes an internal error so the envelope stays well-formed.
func PaymeError(err error, accountKey string) paycom.Error {
	var serviceErr Error
	if !errors.As(err, &serviceErr) {
		return paycom.ErrInternal
	}

	switch serviceErr.Code {
	case constants.ErrCodeOrderNotFound:
		return paycom.ErrOrderNotFound.WithData(accountKey)
	case constants.ErrCodeInvalidAmount:
		return paycom.ErrInvalidAmount
	case constants.ErrCodeTransactionNotFound:
		return paycom.ErrTransactionNotFound
	case constants.ErrCodeUnableToPerform:
		return paycom.ErrUnableToPerform
	case constants.ErrCodeOrderOnProcess:
		return paycom.ErrOrderOnProcess.WithData(accountKey)
	case constants.ErrCodeUnauthorized:
		return paycom.ErrInsufficientRights
	case constants.ErrCodeInvalidRequestBody:
		return paycom.ErrParse
	case constants.ErrCodeInvalidParams:
		return paycom.ErrInvalidRequest
	case constants.ErrCodeMethodNotFound:
		return paycom.ErrMethodNotFound
	default:
		return paycom.ErrInternal
	}
}
