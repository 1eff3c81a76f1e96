package core

// Summary is the consolidated financial view derived from one user's
// collections. Values are not rounded.
type Summary struct {
	TotalBalance           float64 `json:"totalBalance"`
	TotalIncome            float64 `json:"totalIncome"`
	TotalExpenses          float64 `json:"totalExpenses"`
	TotalCardDebt          float64 `json:"totalCardDebt"`
	TotalRecurringExpenses float64 `json:"totalRecurringExpenses"`
}

// monthlyFactors maps each known frequency to its monthly-equivalent
// conversion. Weekly uses a flat four weeks per month; existing balances
// were computed with that multiplier.
var monthlyFactors = map[Frequency]func(float64) float64{
	Monthly: func(amount float64) float64 { return amount },
	Yearly:  func(amount float64) float64 { return amount / 12 },
	Weekly:  func(amount float64) float64 { return amount * 4 },
}

// IsKnown reports whether the frequency has a monthly conversion.
func (f Frequency) IsKnown() bool {
	_, ok := monthlyFactors[f]
	return ok
}

// NormalizeToMonthly returns the monthly-equivalent of amount. Unknown
// frequencies contribute 0.
func NormalizeToMonthly(amount float64, frequency Frequency) float64 {
	convert, ok := monthlyFactors[frequency]
	if !ok {
		return 0
	}
	return convert(amount)
}

// ComputeCardDebt totals the remaining installments across all cards.
// A purchase with paidInstallments >= installments contributes 0.
func ComputeCardDebt(cards []Card) float64 {
	total := 0.0
	for _, card := range cards {
		for _, p := range card.Purchases {
			total += p.Debt()
		}
	}
	return total
}

// MonthlyTotal sums the monthly-equivalent of each recurring item.
func MonthlyTotal(items []RecurringItem) float64 {
	total := 0.0
	for _, item := range items {
		total += NormalizeToMonthly(item.Amount, item.Frequency)
	}
	return total
}

// ComputeSummary derives the consolidated summary. Card purchases and
// recurring expenses are kept out of TotalExpenses; they reduce the balance
// through their own totals.
func ComputeSummary(transactions []Transaction, cards []Card, salaries []Salary, recurringExpenses, recurringIncomes []RecurringItem) Summary {
	income := 0.0
	for _, s := range salaries {
		income += s.Amount
	}
	income += MonthlyTotal(recurringIncomes)
	for _, t := range transactions {
		if t.Type == Income {
			income += t.Amount
		}
	}

	expenses := 0.0
	for _, t := range transactions {
		if t.Type == Expense {
			expenses += t.Amount
		}
	}

	debt := ComputeCardDebt(cards)
	recurring := MonthlyTotal(recurringExpenses)

	return Summary{
		TotalBalance:           income - expenses - debt - recurring,
		TotalIncome:            income,
		TotalExpenses:          expenses,
		TotalCardDebt:          debt,
		TotalRecurringExpenses: recurring,
	}
}

// Summary computes the summary over the collections.
func (c Collections) Summary() Summary {
	return ComputeSummary(c.Transactions, c.Cards, c.Salaries, c.RecurringExpenses, c.RecurringIncomes)
}
