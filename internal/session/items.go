package session

import (
	"context"

	"cuentamia/internal/core"
	"cuentamia/internal/gateway"
	"cuentamia/internal/log"
)

func (s *Session) AddSalary(ctx context.Context, sal core.Salary) (core.Salary, error) {
	if err := sal.Validate(); err != nil {
		return core.Salary{}, err
	}

	err := s.mutate(func() error {
		sal.ID = core.NewID()
		s.data.Salaries = append(clone(s.data.Salaries), sal)
		s.save(ctx, gateway.Salaries, s.data.Salaries)
		s.logChange(ctx, log.OpCreate, gateway.Salaries, sal.ID)
		return nil
	})
	return sal, err
}

func (s *Session) UpdateSalary(ctx context.Context, sal core.Salary) error {
	if err := sal.Validate(); err != nil {
		return err
	}

	return s.mutate(func() error {
		i := indexByID(s.data.Salaries, sal.ID, salaryIDOf)
		if i < 0 {
			return ErrNotFound
		}
		next := clone(s.data.Salaries)
		next[i] = sal
		s.data.Salaries = next
		s.save(ctx, gateway.Salaries, next)
		s.logChange(ctx, log.OpUpdate, gateway.Salaries, sal.ID)
		return nil
	})
}

func (s *Session) DeleteSalary(ctx context.Context, id string) error {
	return s.mutate(func() error {
		i := indexByID(s.data.Salaries, id, salaryIDOf)
		if i < 0 {
			return ErrNotFound
		}
		s.data.Salaries = without(s.data.Salaries, i)
		s.save(ctx, gateway.Salaries, s.data.Salaries)
		s.logChange(ctx, log.OpDelete, gateway.Salaries, id)
		return nil
	})
}

// AddRecurring appends a recurring expense or income.
func (s *Session) AddRecurring(ctx context.Context, kind RecurringKind, item core.RecurringItem) (core.RecurringItem, error) {
	c, err := kind.collection()
	if err != nil {
		return core.RecurringItem{}, err
	}
	if err := item.Validate(); err != nil {
		return core.RecurringItem{}, err
	}

	err = s.mutate(func() error {
		item.ID = core.NewID()
		list := s.recurring(kind)
		*list = append(clone(*list), item)
		s.save(ctx, c, *list)
		s.logChange(ctx, log.OpCreate, c, item.ID)
		return nil
	})
	return item, err
}

func (s *Session) UpdateRecurring(ctx context.Context, kind RecurringKind, item core.RecurringItem) error {
	c, err := kind.collection()
	if err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}

	return s.mutate(func() error {
		list := s.recurring(kind)
		i := indexByID(*list, item.ID, recurringIDOf)
		if i < 0 {
			return ErrNotFound
		}
		next := clone(*list)
		next[i] = item
		*list = next
		s.save(ctx, c, next)
		s.logChange(ctx, log.OpUpdate, c, item.ID)
		return nil
	})
}

func (s *Session) DeleteRecurring(ctx context.Context, kind RecurringKind, id string) error {
	c, err := kind.collection()
	if err != nil {
		return err
	}

	return s.mutate(func() error {
		list := s.recurring(kind)
		i := indexByID(*list, id, recurringIDOf)
		if i < 0 {
			return ErrNotFound
		}
		*list = without(*list, i)
		s.save(ctx, c, *list)
		s.logChange(ctx, log.OpDelete, c, id)
		return nil
	})
}

// recurring must be called with the lock held and a valid kind.
func (s *Session) recurring(kind RecurringKind) *[]core.RecurringItem {
	if kind == RecurringIncome {
		return &s.data.RecurringIncomes
	}
	return &s.data.RecurringExpenses
}
