package session

import "cuentamia/internal/core"

func indexByID[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

// without returns a new slice lacking the element at i.
func without[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func transactionIDOf(t core.Transaction) string { return t.ID }
func cardIDOf(c core.Card) string { return c.ID }
func purchaseIDOf(p core.Purchase) string { return p.ID }
func salaryIDOf(s core.Salary) string { return s.ID }
func recurringIDOf(r core.RecurringItem) string { return r.ID }

func cloneCards(cards []core.Card) []core.Card {
	out := make([]core.Card, len(cards))
	for i, c := range cards {
		out[i] = c
		out[i].Purchases = append([]core.Purchase{}, c.Purchases...)
	}
	return out
}

func clone[T any](items []T) []T {
	return append([]T{}, items...)
}

func cloneCollections(c core.Collections) core.Collections {
	return core.Collections{
		Transactions:      clone(c.Transactions),
		Cards:             cloneCards(c.Cards),
		Salaries:          clone(c.Salaries),
		RecurringExpenses: clone(c.RecurringExpenses),
		RecurringIncomes:  clone(c.RecurringIncomes),
		CurrentPeriod:     c.CurrentPeriod,
		PeriodsHistory:    clone(c.PeriodsHistory),
	}
}
