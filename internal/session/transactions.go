package session

import (
	"context"

	"cuentamia/internal/core"
	"cuentamia/internal/gateway"
	"cuentamia/internal/log"
)

// AddTransaction stores t as the newest transaction. The id and creation
// time are assigned here.
func (s *Session) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	err := s.mutate(func() error {
		t.ID = core.NewID()
		t.CreatedAt = s.now().UTC()
		next := make([]core.Transaction, 0, len(s.data.Transactions)+1)
		next = append(next, t)
		s.data.Transactions = append(next, s.data.Transactions...)
		s.save(ctx, gateway.Transactions, s.data.Transactions)
		s.logChange(ctx, log.OpCreate, gateway.Transactions, t.ID)
		return nil
	})
	return t, err
}

// UpdateTransaction replaces the transaction with t.ID, keeping its
// creation time.
func (s *Session) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	return s.mutate(func() error {
		i := indexByID(s.data.Transactions, t.ID, transactionIDOf)
		if i < 0 {
			return ErrNotFound
		}
		t.CreatedAt = s.data.Transactions[i].CreatedAt
		next := clone(s.data.Transactions)
		next[i] = t
		s.data.Transactions = next
		s.save(ctx, gateway.Transactions, next)
		s.logChange(ctx, log.OpUpdate, gateway.Transactions, t.ID)
		return nil
	})
}

func (s *Session) DeleteTransaction(ctx context.Context, id string) error {
	return s.mutate(func() error {
		i := indexByID(s.data.Transactions, id, transactionIDOf)
		if i < 0 {
			return ErrNotFound
		}
		s.data.Transactions = without(s.data.Transactions, i)
		s.save(ctx, gateway.Transactions, s.data.Transactions)
		s.logChange(ctx, log.OpDelete, gateway.Transactions, id)
		return nil
	})
}
