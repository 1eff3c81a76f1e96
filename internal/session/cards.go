package session

import (
	"context"

	"cuentamia/internal/core"
	"cuentamia/internal/gateway"
	"cuentamia/internal/log"
)

// AddCard stores a new card with no purchases.
func (s *Session) AddCard(ctx context.Context, c core.Card) (core.Card, error) {
	if err := c.Validate(); err != nil {
		return core.Card{}, err
	}

	err := s.mutate(func() error {
		c.ID = core.NewID()
		c.Purchases = []core.Purchase{}
		s.data.Cards = append(cloneCards(s.data.Cards), c)
		s.saveCards(ctx, log.OpCreate, c.ID)
		return nil
	})
	return c, err
}

// UpdateCard replaces the card's details. Purchases are kept unless c
// carries its own list.
func (s *Session) UpdateCard(ctx context.Context, c core.Card) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return s.mutate(func() error {
		i := indexByID(s.data.Cards, c.ID, cardIDOf)
		if i < 0 {
			return ErrNotFound
		}
		if c.Purchases == nil {
			c.Purchases = s.data.Cards[i].Purchases
		}
		next := cloneCards(s.data.Cards)
		next[i] = c
		s.data.Cards = next
		s.saveCards(ctx, log.OpUpdate, c.ID)
		return nil
	})
}

// DeleteCard removes the card together with all its purchases.
func (s *Session) DeleteCard(ctx context.Context, id string) error {
	return s.mutate(func() error {
		i := indexByID(s.data.Cards, id, cardIDOf)
		if i < 0 {
			return ErrNotFound
		}
		s.data.Cards = without(s.data.Cards, i)
		s.saveCards(ctx, log.OpDelete, id)
		return nil
	})
}

// AddPurchase records an unpaid purchase on a card, resolving its
// installment value from plan.
func (s *Session) AddPurchase(ctx context.Context, cardID string, p core.Purchase, plan core.InstallmentPlan) (core.Purchase, error) {
	p.PaidInstallments = 0
	p.ApplyPlan(plan)
	if err := p.Validate(); err != nil {
		return core.Purchase{}, err
	}

	err := s.updateCard(ctx, cardID, log.OpCreate, func(c *core.Card) error {
		p.ID = core.NewID()
		c.Purchases = append(c.Purchases, p)
		return nil
	})
	return p, err
}

// UpdatePurchase edits a purchase. Its paid count is kept, reduced to the
// new installment count if that is lower.
func (s *Session) UpdatePurchase(ctx context.Context, cardID string, p core.Purchase, plan core.InstallmentPlan) error {
	p.ApplyPlan(plan)

	return s.updateCard(ctx, cardID, log.OpUpdate, func(c *core.Card) error {
		i := indexByID(c.Purchases, p.ID, purchaseIDOf)
		if i < 0 {
			return ErrNotFound
		}
		p.PaidInstallments = min(c.Purchases[i].PaidInstallments, max(p.Installments, 0))
		if err := p.Validate(); err != nil {
			return err
		}
		c.Purchases[i] = p
		return nil
	})
}

func (s *Session) DeletePurchase(ctx context.Context, cardID, purchaseID string) error {
	return s.updateCard(ctx, cardID, log.OpDelete, func(c *core.Card) error {
		i := indexByID(c.Purchases, purchaseID, purchaseIDOf)
		if i < 0 {
			return ErrNotFound
		}
		c.Purchases = without(c.Purchases, i)
		return nil
	})
}

// PayInstallment marks one more installment of a purchase as paid.
func (s *Session) PayInstallment(ctx context.Context, cardID, purchaseID string) (core.Purchase, error) {
	var paid core.Purchase
	err := s.updateCard(ctx, cardID, log.OpUpdate, func(c *core.Card) error {
		i := indexByID(c.Purchases, purchaseID, purchaseIDOf)
		if i < 0 {
			return ErrNotFound
		}
		if c.Purchases[i].FullyPaid() {
			return ErrFullyPaid
		}
		c.Purchases[i].PaidInstallments++
		paid = c.Purchases[i]
		return nil
	})
	return paid, err
}

// updateCard applies fn to a copy of the card and commits it only when fn
// succeeds.
func (s *Session) updateCard(ctx context.Context, id, op string, fn func(*core.Card) error) error {
	return s.mutate(func() error {
		i := indexByID(s.data.Cards, id, cardIDOf)
		if i < 0 {
			return ErrNotFound
		}
		next := cloneCards(s.data.Cards)
		if err := fn(&next[i]); err != nil {
			return err
		}
		s.data.Cards = next
		s.saveCards(ctx, op, id)
		return nil
	})
}

func (s *Session) saveCards(ctx context.Context, op, id string) {
	s.save(ctx, gateway.Cards, s.data.Cards)
	s.logChange(ctx, op, gateway.Cards, id)
}
