package services

import (
	"fmt"
	"slices"
	"time"

	"cuentamia/internal/core"
	"cuentamia/internal/log"
)

// EventType classifies a calendar entry.
type EventType string

const (
	EventCardClosing      EventType = "card_closing"
	EventRecurringExpense EventType = "recurring_expense"
	EventRecurringIncome  EventType = "recurring_income"
	EventSalary           EventType = "salary"
)

// maxSteps bounds how far a recurring series is walked to reach the month.
const maxSteps = 10000

// Event is one dated entry of a month view.
type Event struct {
	Date     core.Date `json:"date"`
	Type     EventType `json:"type"`
	Title    string    `json:"title"`
	Amount   float64   `json:"amount,omitempty"`
	SourceID string    `json:"sourceId"`
}

// Calendar projects cards, recurring items and salaries onto months.
type Calendar struct {
	logger *log.Logger
}

func NewCalendar(logger *log.Logger) *Calendar {
	if logger == nil {
		logger = log.Discard()
	}
	return &Calendar{logger: logger.WithComponent(log.ComponentCalendar)}
}

// Month returns the events falling in the given month, ordered by date.
// today decides whether upcoming card closings of the following month are
// included.
func (c *Calendar) Month(year int, month time.Month, data core.Collections, today core.Date) ([]Event, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidMonth, month)
	}

	first := core.NewDate(year, int(month), 1)
	last := core.NewDate(year, int(month), daysIn(year, month))

	var events []Event
	for _, card := range data.Cards {
		events = append(events, cardClosings(card, year, month, today)...)
	}
	for _, item := range data.RecurringExpenses {
		events = append(events, c.occurrences(item, EventRecurringExpense, first, last)...)
	}
	for _, item := range data.RecurringIncomes {
		events = append(events, c.occurrences(item, EventRecurringIncome, first, last)...)
	}
	for _, s := range data.Salaries {
		if within(s.Date, first, last) {
			events = append(events, Event{Date: s.Date, Type: EventSalary, Title: "Salary", Amount: s.Amount, SourceID: s.ID})
		}
	}

	slices.SortStableFunc(events, func(a, b Event) int {
		return a.Date.Compare(b.Date.Time)
	})

	c.logger.Debug("Projected month",
		log.FieldYear, year,
		log.FieldMonth, int(month),
		log.FieldCount, len(events))
	return events, nil
}

// cardClosings returns the card's closing date in the month, skipped when
// the month is too short. While viewing the current month after the
// closing day has passed, next month's closing is listed too.
func cardClosings(card core.Card, year int, month time.Month, today core.Date) []Event {
	var events []Event
	title := "Card closing: " + card.Name

	if card.ClosingDay >= 1 && card.ClosingDay <= daysIn(year, month) {
		events = append(events, Event{
			Date:     core.NewDate(year, int(month), card.ClosingDay),
			Type:     EventCardClosing,
			Title:    title,
			SourceID: card.ID,
		})
	}

	isCurrent := today.Year() == year && today.Month() == int(month)
	if isCurrent && card.ClosingDay >= 1 && card.ClosingDay <= today.Day() {
		nextYear, nextMonth := year, month+1
		if nextMonth > time.December {
			nextYear, nextMonth = year+1, time.January
		}
		if card.ClosingDay <= daysIn(nextYear, nextMonth) {
			events = append(events, Event{
				Date:     core.NewDate(nextYear, int(nextMonth), card.ClosingDay),
				Type:     EventCardClosing,
				Title:    title,
				SourceID: card.ID,
			})
		}
	}
	return events
}

// occurrences walks a recurring item from its next due date through the
// month. An item with an unknown frequency only contributes its due date.
func (c *Calendar) occurrences(item core.RecurringItem, typ EventType, first, last core.Date) []Event {
	due := item.NextDueDate
	if due.IsZero() || due.After(last.Time) {
		return nil
	}
	event := func(d core.Date) Event {
		return Event{Date: d, Type: typ, Title: item.Name, Amount: item.Amount, SourceID: item.ID}
	}

	stepper, err := GetStepper(item.Frequency)
	if err != nil {
		c.logger.Warn("Recurring item has no stepper",
			log.FieldRecordID, item.ID,
			log.FieldError, err.Error())
		if within(due, first, last) {
			return []Event{event(due)}
		}
		return nil
	}

	var events []Event
	for steps := 0; !due.After(last.Time) && steps < maxSteps; steps++ {
		if within(due, first, last) {
			events = append(events, event(due))
		}
		due = stepper.Next(due, item.NextDueDate)
	}
	return events
}

func within(d, first, last core.Date) bool {
	return !d.Before(first.Time) && !d.After(last.Time)
}
