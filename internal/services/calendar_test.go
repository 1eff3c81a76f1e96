package services

import (
	"errors"
	"testing"
	"time"

	"cuentamia/internal/core"
)

func dates(events []Event, typ EventType) []string {
	var out []string
	for _, e := range events {
		if e.Type == typ {
			out = append(out, e.Date.String())
		}
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCalendarCardClosings(t *testing.T) {
	cal := NewCalendar(nil)
	data := core.Collections{Cards: []core.Card{
		{ID: "c1", Name: "Visa", ClosingDay: 10},
		{ID: "c2", Name: "Amex", ClosingDay: 31},
	}}

	tests := []struct {
		name  string
		year  int
		month time.Month
		today core.Date
		want  []string
	}{
		{"past month", 2024, time.February, core.NewDate(2024, 5, 20), []string{"2024-02-10"}},
		{"current month before closing", 2024, time.May, core.NewDate(2024, 5, 5), []string{"2024-05-10", "2024-05-31"}},
		{"current month after closing", 2024, time.May, core.NewDate(2024, 5, 20), []string{"2024-05-10", "2024-05-31", "2024-06-10"}},
		{"current december rolls into january", 2024, time.December, core.NewDate(2024, 12, 31), []string{"2024-12-10", "2024-12-31", "2025-01-10", "2025-01-31"}},
		{"short month skips missing day", 2024, time.April, core.NewDate(2024, 4, 30), []string{"2024-04-10", "2024-05-10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := cal.Month(tt.year, tt.month, data, tt.today)
			if err != nil {
				t.Fatal(err)
			}
			if got := dates(events, EventCardClosing); !equal(got, tt.want) {
				t.Fatalf("closings = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalendarRecurring(t *testing.T) {
	cal := NewCalendar(nil)
	today := core.NewDate(2024, 1, 1)
	data := core.Collections{
		RecurringExpenses: []core.RecurringItem{
			{ID: "gym", Name: "Gym", Amount: 10, Frequency: core.Weekly, NextDueDate: core.NewDate(2024, 2, 26)},
			{ID: "rent", Name: "Rent", Amount: 800, Frequency: core.Monthly, NextDueDate: core.NewDate(2024, 1, 31)},
			{ID: "ins", Name: "Insurance", Amount: 300, Frequency: core.Yearly, NextDueDate: core.NewDate(2023, 3, 15)},
			{ID: "odd", Name: "Odd", Amount: 1, Frequency: "daily", NextDueDate: core.NewDate(2024, 3, 2)},
			{ID: "future", Name: "Later", Amount: 1, Frequency: core.Monthly, NextDueDate: core.NewDate(2024, 4, 1)},
		},
		RecurringIncomes: []core.RecurringItem{
			{ID: "side", Name: "Side job", Amount: 200, Frequency: core.Monthly, NextDueDate: core.NewDate(2024, 3, 5)},
		},
		Salaries: []core.Salary{
			{ID: "s1", Amount: 2500, Date: core.NewDate(2024, 3, 1)},
			{ID: "s2", Amount: 2500, Date: core.NewDate(2024, 2, 1)},
		},
	}

	events, err := cal.Month(2024, time.March, data, today)
	if err != nil {
		t.Fatal(err)
	}

	wantExpenses := []string{"2024-03-02", "2024-03-04", "2024-03-11", "2024-03-15", "2024-03-18", "2024-03-25", "2024-03-31"}
	if got := dates(events, EventRecurringExpense); !equal(got, wantExpenses) {
		t.Fatalf("recurring expenses = %v, want %v", got, wantExpenses)
	}
	if got := dates(events, EventRecurringIncome); !equal(got, []string{"2024-03-05"}) {
		t.Fatalf("recurring incomes = %v", got)
	}
	if got := dates(events, EventSalary); !equal(got, []string{"2024-03-01"}) {
		t.Fatalf("salaries = %v", got)
	}

	for i := 1; i < len(events); i++ {
		if events[i].Date.Before(events[i-1].Date.Time) {
			t.Fatalf("events not sorted at %d: %v", i, events)
		}
	}
}

func TestCalendarInvalidMonth(t *testing.T) {
	_, err := NewCalendar(nil).Month(2024, 13, core.Collections{}, core.NewDate(2024, 1, 1))
	if !errors.Is(err, core.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}
