package core

// DefaultPeriod is the current period a user starts with.
func DefaultPeriod(today Date) Period {
	return Period{
		ID:        NewID(),
		Name:      "Current period",
		StartDate: today,
		EndDate:   today,
	}
}

// EmptyCollections is the state of a user with nothing recorded yet.
func EmptyCollections(today Date) Collections {
	return Collections{
		Transactions:      []Transaction{},
		Cards:             []Card{},
		Salaries:          []Salary{},
		RecurringExpenses: []RecurringItem{},
		RecurringIncomes:  []RecurringItem{},
		CurrentPeriod:     DefaultPeriod(today),
		PeriodsHistory:    []Period{},
	}
}

// DemoCollections is sample data offered to new users.
func DemoCollections(today Date) Collections {
	return Collections{
		Transactions: []Transaction{
			{ID: NewID(), Type: Expense, Description: "Coffee", Amount: 3.50, Category: "Food", Date: today, CreatedAt: today.Time},
			{ID: NewID(), Type: Income, Description: "Book sale", Amount: 25.00, Category: "Sales", Date: today, CreatedAt: today.Time},
			{ID: NewID(), Type: Expense, Description: "Transport", Amount: 10.00, Category: "Transport", Date: today, Notes: "Bus to work", CreatedAt: today.Time},
		},
		Cards: []Card{
			{
				ID:         NewID(),
				Name:       "Main Visa",
				Limit:      5000.00,
				ClosingDay: 25,
				Purchases: []Purchase{
					NewPurchase("Monitor", 300.00, 6, today, ComputedInstallment{}),
					NewPurchase("Anniversary dinner", 80.00, 3, today, FixedInstallment{Value: 30.00}),
				},
			},
			{ID: NewID(), Name: "Travel Mastercard", Limit: 2000.00, ClosingDay: 10, Purchases: []Purchase{}},
		},
		Salaries: []Salary{
			{ID: NewID(), Amount: 2500.00, Date: today, Notes: "This month's salary"},
		},
		RecurringExpenses: []RecurringItem{
			{ID: NewID(), Name: "Rent", Amount: 800.00, Frequency: Monthly, NextDueDate: today},
			{ID: NewID(), Name: "Streaming", Amount: 15.99, Frequency: Monthly, NextDueDate: today},
			{ID: NewID(), Name: "Car insurance", Amount: 360.00, Frequency: Yearly, NextDueDate: today},
		},
		RecurringIncomes: []RecurringItem{
			{ID: NewID(), Name: "Apartment rent", Amount: 500.00, Frequency: Monthly, NextDueDate: today},
		},
		CurrentPeriod:  DefaultPeriod(today),
		PeriodsHistory: []Period{},
	}
}
