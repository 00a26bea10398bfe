package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/metrics"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/repository"
	"go.uber.org/zap"
)

// TransactionService is the gateway-independent payment state machine:
// created -> performed | cancelled before perform, performed -> cancelled after perform.
type TransactionService interface {
	Create(ctx context.Context, cmd CreateTransactionCommand) (Snapshot, error)
	Perform(ctx context.Context, key TransactionKey) (Snapshot, error)
	Cancel(ctx context.Context, cmd CancelTransactionCommand) (Snapshot, error)
	Check(ctx context.Context, key TransactionKey) (Snapshot, error)
	Statement(ctx context.Context, query StatementQuery) ([]Snapshot, error)
	GetByID(ctx context.Context, id int64) (Snapshot, error)
}

type Transaction struct {
	txRepo    repository.PaymentTransactionRepository
	accounts  repository.AccountRepository
	events    repository.PaymentEventRepository
	txManager repository.TxManager
	orders    OrderResolver
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewTransactionService(txRepo repository.PaymentTransactionRepository, accounts repository.AccountRepository,
	events repository.PaymentEventRepository, txManager repository.TxManager, orders OrderResolver,
	metrics *metrics.Metrics, logger *zap.Logger) TransactionService {
	return &Transaction{txRepo: txRepo, accounts: accounts, events: events, txManager: txManager,
		orders: orders, metrics: metrics, logger: logger, now: time.Now}
}

func (t *Transaction) Create(ctx context.Context, cmd CreateTransactionCommand) (Snapshot, error) {
	existing, err := t.txRepo.GetByGatewayID(ctx, cmd.Gateway, cmd.GatewayTransactionID)
	if err == nil {
		return t.replay(existing, "create"), nil
	}
	if !errors.Is(err, repository.ErrTransactionNotFound) {
		return Snapshot{}, t.internal("Failed to look up transaction", err, cmd.GatewayTransactionID)
	}

	status, order, err := t.orders.CheckOrder(ctx, cmd.OrderKey, cmd.Amount)
	if err != nil {
		return Snapshot{}, err
	}

	switch status {
	case OrderNotFound:
		return Snapshot{}, NewServiceError(constants.ErrCodeOrderNotFound, ErrOrderNotFound)
	case OrderInvalidAmount:
		return Snapshot{}, NewServiceError(constants.ErrCodeInvalidAmount, ErrInvalidAmount)
	}

	var snapshot Snapshot
	replayed := false

	err = t.txManager.WithTx(ctx, func(ctx context.Context) error {
		// Serializes concurrent creates for the same order key.
		if _, err := t.accounts.FindForUpdate(ctx, order.Account.Kind, order.Account.ID); err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		existing, err := t.txRepo.GetByGatewayID(ctx, cmd.Gateway, cmd.GatewayTransactionID)
		if err == nil {
			snapshot = newSnapshot(existing)
			replayed = true
			return nil
		}
		if !errors.Is(err, repository.ErrTransactionNotFound) {
			return err
		}

		inProcess, err := t.txRepo.FindProcessingByOrderKey(ctx, cmd.OrderKey)
		if err == nil && (inProcess.Gateway != cmd.Gateway || inProcess.GatewayTransactionID != cmd.GatewayTransactionID) {
			t.logger.Warn("Another transaction is in process for order",
				zap.String("orderKey", cmd.OrderKey),
				zap.String("gatewayTransactionID", cmd.GatewayTransactionID),
				zap.String("inProcessTransactionID", inProcess.GatewayTransactionID))
			return ErrOrderOnProcess
		}
		if err != nil && !errors.Is(err, repository.ErrTransactionNotFound) {
			return err
		}

		row := &model.PaymentTransaction{
			Gateway:              cmd.Gateway,
			GatewayTransactionID: cmd.GatewayTransactionID,
			RequestID:            cmd.RequestID,
			OrderKey:             cmd.OrderKey,
			AccountKind:          order.Account.Kind,
			AccountID:            order.Account.ID,
			Amount:               cmd.Amount,
			State:                model.TransactionStateCreated,
			Status:               model.TransactionStatusProcessing,
			CreateTime:           t.now().UnixMilli(),
			GatewayTime:          cmd.GatewayTime,
		}

		if err := t.txRepo.Create(ctx, row); err != nil {
			return err
		}

		snapshot = newSnapshot(row)
		return nil
	})

	if errors.Is(err, repository.ErrTransactionExisted) {
		existing, getErr := t.txRepo.GetByGatewayID(ctx, cmd.Gateway, cmd.GatewayTransactionID)
		if getErr != nil {
			return Snapshot{}, t.internal("Failed to read concurrently created transaction", getErr, cmd.GatewayTransactionID)
		}
		return t.replay(existing, "create"), nil
	}
	if errors.Is(err, ErrOrderOnProcess) {
		return Snapshot{}, NewServiceError(constants.ErrCodeOrderOnProcess, ErrOrderOnProcess)
	}
	if err != nil {
		return Snapshot{}, t.internal("Failed to create transaction", err, cmd.GatewayTransactionID)
	}

	if replayed {
		t.metrics.RecordTransition(string(cmd.Gateway), "create_replay")
		return snapshot, nil
	}

	t.metrics.RecordTransition(string(cmd.Gateway), "created")
	t.logger.Info("Transaction created",
		zap.String("gateway", string(cmd.Gateway)),
		zap.String("gatewayTransactionID", cmd.GatewayTransactionID),
		zap.Int64("id", snapshot.ID),
		zap.String("orderKey", cmd.OrderKey),
		zap.String("amount", cmd.Amount.String()))

	return snapshot, nil
}

func (t *Transaction) Perform(ctx context.Context, key TransactionKey) (Snapshot, error) {
	var snapshot Snapshot
	transition := "perform_replay"

	err := t.txManager.WithTx(ctx, func(ctx context.Context) error {
		row, err := t.txRepo.GetByGatewayIDForUpdate(ctx, key.Gateway, key.GatewayTransactionID)
		if err != nil {
			return err
		}

		switch row.State {
		case model.TransactionStatePerformed:
			snapshot = newSnapshot(row)
			return nil
		case model.TransactionStateCancelledBeforePerform, model.TransactionStateCancelledAfterPerform:
			return ErrUnableToPerform
		}

		row.State = model.TransactionStatePerformed
		row.Status = model.TransactionStatusSuccess
		row.PerformTime = t.now().UnixMilli()

		if err := t.txRepo.Update(ctx, row); err != nil {
			return err
		}

		if err := t.accounts.Credit(ctx, row.AccountKind, row.AccountID, row.Amount); err != nil {
			return fmt.Errorf("credit %s %s: %w", row.AccountKind, row.AccountID, err)
		}

		if err := t.events.Create(ctx, newPaymentEvent(row, model.EventTypePaymentPerformed)); err != nil {
			return err
		}

		snapshot = newSnapshot(row)
		transition = "performed"
		return nil
	})
	if err != nil {
		return Snapshot{}, t.mapTransitionError(err, key, "perform")
	}

	t.metrics.RecordTransition(string(key.Gateway), transition)
	if transition == "performed" {
		t.metrics.RecordLedgerMutation(string(snapshot.AccountKind), "credit")
		t.logger.Info("Transaction performed",
			zap.String("gateway", string(key.Gateway)),
			zap.String("gatewayTransactionID", key.GatewayTransactionID),
			zap.String("accountID", snapshot.AccountID),
			zap.String("amount", snapshot.Amount.String()))
	}

	return snapshot, nil
}

func (t *Transaction) Cancel(ctx context.Context, cmd CancelTransactionCommand) (Snapshot, error) {
	var snapshot Snapshot
	transition := "cancel_replay"
	key := cmd.Key

	err := t.txManager.WithTx(ctx, func(ctx context.Context) error {
		row, err := t.txRepo.GetByGatewayIDForUpdate(ctx, key.Gateway, key.GatewayTransactionID)
		if err != nil {
			return err
		}

		if row.IsCancelled() {
			snapshot = newSnapshot(row)
			return nil
		}

		switch row.State {
		case model.TransactionStateCreated:
			row.State = model.TransactionStateCancelledBeforePerform
			transition = "cancelled_before_perform"

		case model.TransactionStatePerformed:
			if err := t.accounts.Debit(ctx, row.AccountKind, row.AccountID, row.Amount); err != nil {
				return fmt.Errorf("debit %s %s: %w", row.AccountKind, row.AccountID, err)
			}
			if err := t.events.Create(ctx, newPaymentEvent(row, model.EventTypePaymentCancelled)); err != nil {
				return err
			}
			row.State = model.TransactionStateCancelledAfterPerform
			transition = "cancelled_after_perform"

		default:
			return fmt.Errorf("unknown transaction state %d", row.State)
		}

		reason := cmd.Reason
		row.Reason = &reason
		row.Status = model.TransactionStatusCanceled
		if row.CancelTime == 0 {
			row.CancelTime = t.now().UnixMilli()
		}

		if err := t.txRepo.Update(ctx, row); err != nil {
			return err
		}

		snapshot = newSnapshot(row)
		return nil
	})
	if err != nil {
		return Snapshot{}, t.mapTransitionError(err, key, "cancel")
	}

	t.metrics.RecordTransition(string(key.Gateway), transition)
	if transition == "cancelled_after_perform" {
		t.metrics.RecordLedgerMutation(string(snapshot.AccountKind), "debit")
	}
	if transition != "cancel_replay" {
		t.logger.Info("Transaction cancelled",
			zap.String("gateway", string(key.Gateway)),
			zap.String("gatewayTransactionID", key.GatewayTransactionID),
			zap.String("transition", transition),
			zap.Int("reason", cmd.Reason))
	}

	return snapshot, nil
}

func (t *Transaction) Check(ctx context.Context, key TransactionKey) (Snapshot, error) {
	row, err := t.txRepo.GetByGatewayID(ctx, key.Gateway, key.GatewayTransactionID)
	if err != nil {
		return Snapshot{}, t.mapTransitionError(err, key, "check")
	}

	return newSnapshot(row), nil
}

func (t *Transaction) Statement(ctx context.Context, query StatementQuery) ([]Snapshot, error) {
	rows, err := t.txRepo.ListByCreateTime(ctx, query.Gateway, query.From, query.To)
	if err != nil {
		return nil, t.internal("Failed to build statement", err, "")
	}

	snapshots := make([]Snapshot, 0, len(rows))
	for i := range rows {
		snapshots = append(snapshots, newSnapshot(&rows[i]))
	}

	return snapshots, nil
}

func (t *Transaction) GetByID(ctx context.Context, id int64) (Snapshot, error) {
	row, err := t.txRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return Snapshot{}, NewServiceError(constants.ErrCodeTransactionNotFound, ErrTransactionNotFound)
		}
		return Snapshot{}, t.internal("Failed to get transaction by id", err, "")
	}

	return newSnapshot(row), nil
}

func (t *Transaction) replay(row *model.PaymentTransaction, operation string) Snapshot {
	t.metrics.RecordTransition(string(row.Gateway), operation+"_replay")
	t.logger.Debug("Idempotent replay",
		zap.String("operation", operation),
		zap.String("gateway", string(row.Gateway)),
		zap.String("gatewayTransactionID", row.GatewayTransactionID))

	return newSnapshot(row)
}

func (t *Transaction) mapTransitionError(err error, key TransactionKey, operation string) error {
	switch {
	case errors.Is(err, repository.ErrTransactionNotFound):
		return NewServiceError(constants.ErrCodeTransactionNotFound, ErrTransactionNotFound)
	case errors.Is(err, ErrUnableToPerform):
		t.logger.Info("Refusing to perform cancelled transaction",
			zap.String("gateway", string(key.Gateway)),
			zap.String("gatewayTransactionID", key.GatewayTransactionID))
		return NewServiceError(constants.ErrCodeUnableToPerform, ErrUnableToPerform)
	default:
		return t.internal("Failed to "+operation+" transaction", err, key.GatewayTransactionID)
	}
}

func (t *Transaction) internal(msg string, err error, gatewayTxID string) error {
	t.logger.Error(msg, zap.String("gatewayTransactionID", gatewayTxID), zap.Error(err))
	return NewServiceError(constants.ErrCodeInternalError, err)
}

func newPaymentEvent(row *model.PaymentTransaction, eventType string) *model.PaymentEvent {
	return &model.PaymentEvent{
		EventID:              uuid.NewString(),
		EventType:            eventType,
		Gateway:              row.Gateway,
		GatewayTransactionID: row.GatewayTransactionID,
		OrderKey:             row.OrderKey,
		AccountKind:          row.AccountKind,
		AccountID:            row.AccountID,
		Amount:               row.Amount,
	}
}
