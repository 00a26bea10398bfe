package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/repository"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/mq"
	"go.uber.org/zap"
)

// FinanceService journals payment events. Recording the same event twice is a no-op.
type FinanceService interface {
	Record(ctx context.Context, msg PaymentEventMessage) error
}

type Finance struct {
	finance  repository.FinanceRepository
	accounts repository.AccountRepository
	logger   *zap.Logger
}

func NewFinanceService(finance repository.FinanceRepository, accounts repository.AccountRepository, logger *zap.Logger) FinanceService {
	return &Finance{finance: finance, accounts: accounts, logger: logger}
}

func (f *Finance) Record(ctx context.Context, msg PaymentEventMessage) error {
	action, verb, ok := financeAction(msg.EventType)
	if !ok {
		f.logger.Warn("Unknown payment event type", zap.String("eventID", msg.EventID), zap.String("eventType", msg.EventType))
		return nil
	}

	name := msg.OrderKey
	acc, err := f.accounts.FindByID(ctx, model.AccountKind(msg.AccountKind), msg.AccountID)
	switch {
	case err == nil:
		if full := acc.FullName(); full != "" {
			name = full
		}
	case errors.Is(err, repository.ErrAccountNotFound), errors.Is(err, repository.ErrUnknownAccountKind):
		f.logger.Warn("Account for payment event not found",
			zap.String("eventID", msg.EventID),
			zap.String("accountID", msg.AccountID))
	default:
		return mq.Temporary(err)
	}

	entry := &model.FinanceEntry{
		EventID:       msg.EventID,
		Action:        action,
		Amount:        msg.Amount,
		PaymentMethod: model.PaymentMethodFor(msg.Gateway),
		AccountKind:   model.AccountKind(msg.AccountKind),
		AccountID:     msg.AccountID,
		Comment:       fmt.Sprintf("%s talabaga %s so'm %s.", name, msg.Amount.String(), verb),
	}

	err = f.finance.Create(ctx, entry)
	if errors.Is(err, repository.ErrFinanceEntryExisted) {
		f.logger.Info("Finance entry already recorded", zap.String("eventID", msg.EventID))
		return nil
	}
	if err != nil {
		f.logger.Error("Failed to record finance entry", zap.String("eventID", msg.EventID), zap.Error(err))
		return mq.Temporary(err)
	}

	f.logger.Info("Finance entry recorded",
		zap.String("eventID", msg.EventID),
		zap.String("action", action),
		zap.String("amount", msg.Amount.String()))

	return nil
}

func financeAction(eventType string) (action, verb string, ok bool) {
	switch eventType {
	case model.EventTypePaymentPerformed:
		return model.FinanceActionIncome, "pul to'lov qilindi", true
	case model.EventTypePaymentCancelled:
		return model.FinanceActionOutcome, "to'lov bekor qilindi", true
	default:
		return "", "", false
	}
}
