package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/repository"
	"github.com/shopspring/decimal"
)

// memStore backs the repositories with maps. WithTx runs one transaction at a
// time and restores the previous state when fn fails.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	accounts     map[model.AccountKind]map[string]model.Account
	transactions []model.PaymentTransaction
	events       []model.PaymentEvent
	failCredit   error
}

func newMemStore() *memStore {
	return &memStore{accounts: map[model.AccountKind]map[string]model.Account{
		model.AccountKindStudent: {},
		model.AccountKindLead:    {},
	}}
}

func (s *memStore) addAccount(kind model.AccountKind, acc model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[kind][acc.ID] = acc
}

func (s *memStore) balance(kind model.AccountKind, id string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[kind][id].Balance
}

func (s *memStore) rows() []model.PaymentTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.PaymentTransaction(nil), s.transactions...)
}

func (s *memStore) eventTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.EventType)
	}
	return out
}

func (s *memStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	accounts := make(map[model.AccountKind]map[string]model.Account, len(s.accounts))
	for kind, rows := range s.accounts {
		accounts[kind] = make(map[string]model.Account, len(rows))
		for id, acc := range rows {
			accounts[kind][id] = acc
		}
	}
	transactions := append([]model.PaymentTransaction(nil), s.transactions...)
	events := append([]model.PaymentEvent(nil), s.events...)
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.accounts, s.transactions, s.events = accounts, transactions, events
		s.mu.Unlock()
		return err
	}

	return nil
}

type memAccounts struct{ s *memStore }

func (a memAccounts) FindByID(_ context.Context, kind model.AccountKind, id string) (*model.Account, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	rows, ok := a.s.accounts[kind]
	if !ok {
		return nil, repository.ErrUnknownAccountKind
	}
	acc, ok := rows[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	acc.Kind = kind
	return &acc, nil
}

func (a memAccounts) FindForUpdate(ctx context.Context, kind model.AccountKind, id string) (*model.Account, error) {
	return a.FindByID(ctx, kind, id)
}

func (a memAccounts) Credit(_ context.Context, kind model.AccountKind, id string, amount decimal.Decimal) error {
	if a.s.failCredit != nil {
		return a.s.failCredit
	}
	return a.adjust(kind, id, amount)
}

func (a memAccounts) Debit(_ context.Context, kind model.AccountKind, id string, amount decimal.Decimal) error {
	return a.adjust(kind, id, amount.Neg())
}

func (a memAccounts) adjust(kind model.AccountKind, id string, delta decimal.Decimal) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	acc, ok := a.s.accounts[kind][id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.UpdatedAt = time.Now()
	a.s.accounts[kind][id] = acc
	return nil
}

type memTransactions struct{ s *memStore }

func (t memTransactions) Create(_ context.Context, tx *model.PaymentTransaction) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for _, row := range t.s.transactions {
		if row.Gateway == tx.Gateway && row.GatewayTransactionID == tx.GatewayTransactionID {
			return repository.ErrTransactionExisted
		}
	}
	tx.ID = int64(len(t.s.transactions) + 1)
	t.s.transactions = append(t.s.transactions, *tx)
	return nil
}

func (t memTransactions) Update(_ context.Context, tx *model.PaymentTransaction) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for i, row := range t.s.transactions {
		if row.ID == tx.ID {
			t.s.transactions[i] = *tx
			return nil
		}
	}
	return repository.ErrTransactionNotFound
}

func (t memTransactions) find(match func(model.PaymentTransaction) bool) (*model.PaymentTransaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for _, row := range t.s.transactions {
		if match(row) {
			found := row
			return &found, nil
		}
	}
	return nil, repository.ErrTransactionNotFound
}

func (t memTransactions) GetByGatewayID(_ context.Context, gateway model.Gateway, id string) (*model.PaymentTransaction, error) {
	return t.find(func(row model.PaymentTransaction) bool {
		return row.Gateway == gateway && row.GatewayTransactionID == id
	})
}

func (t memTransactions) GetByGatewayIDForUpdate(ctx context.Context, gateway model.Gateway, id string) (*model.PaymentTransaction, error) {
	return t.GetByGatewayID(ctx, gateway, id)
}

func (t memTransactions) GetByID(_ context.Context, id int64) (*model.PaymentTransaction, error) {
	return t.find(func(row model.PaymentTransaction) bool { return row.ID == id })
}

func (t memTransactions) FindProcessingByOrderKey(_ context.Context, orderKey string) (*model.PaymentTransaction, error) {
	return t.find(func(row model.PaymentTransaction) bool {
		return row.OrderKey == orderKey && row.Status == model.TransactionStatusProcessing
	})
}

func (t memTransactions) ListByCreateTime(_ context.Context, gateway model.Gateway, from, to int64) ([]model.PaymentTransaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	var out []model.PaymentTransaction
	for _, row := range t.s.transactions {
		if row.Gateway == gateway && row.CreateTime >= from && row.CreateTime <= to {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreateTime < out[j].CreateTime })
	return out, nil
}

type memEvents struct{ s *memStore }

func (e memEvents) Create(_ context.Context, event *model.PaymentEvent) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	event.ID = int64(len(e.s.events) + 1)
	e.s.events = append(e.s.events, *event)
	return nil
}

func (e memEvents) FindUnpublished(context.Context, int) ([]model.PaymentEvent, error) {
	return nil, errors.New("not supported")
}

func (e memEvents) MarkPublished(context.Context, int64, time.Time) error {
	return errors.New("not supported")
}

func (e memEvents) MarkFailed(context.Context, int64, string) error {
	return errors.New("not supported")
}

func (e memEvents) CountUnpublished(context.Context) (int64, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	return int64(len(e.s.events)), nil
}
