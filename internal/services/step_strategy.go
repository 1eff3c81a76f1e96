// Package services provides calendar projections over a user's records.
//
// Recurring items are projected with one stepping strategy per frequency,
// looked up in a registry so new frequencies can be added without touching
// the calendar itself.
package services

import (
	"fmt"
	"time"

	"cuentamia/internal/core"
)

// Stepper advances a recurring due date to the following occurrence.
type Stepper interface {
	// Next returns the occurrence after current. anchor is the first due
	// date of the series; its day of month is restored whenever the
	// target month is long enough.
	Next(current, anchor core.Date) core.Date
}

// WeeklyStepper repeats every seven days.
type WeeklyStepper struct{}

func (WeeklyStepper) Next(current, _ core.Date) core.Date {
	return core.DateOf(current.AddDate(0, 0, 7))
}

// MonthlyStepper repeats on the anchor day, clamped to the month's last day.
type MonthlyStepper struct{}

func (MonthlyStepper) Next(current, anchor core.Date) core.Date {
	year, month := current.Year(), time.Month(current.Month())+1
	if month > time.December {
		year, month = year+1, time.January
	}
	return clampedDate(year, month, anchor.Day())
}

// YearlyStepper repeats on the anchor's month and day; February 29 falls
// back to February 28 in common years.
type YearlyStepper struct{}

func (YearlyStepper) Next(current, anchor core.Date) core.Date {
	return clampedDate(current.Year()+1, time.Month(anchor.Month()), anchor.Day())
}

func clampedDate(year int, month time.Month, day int) core.Date {
	return core.NewDate(year, int(month), min(day, daysIn(year, month)))
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// stepStrategies maps frequencies to their steppers.
var stepStrategies = map[core.Frequency]Stepper{
	core.Weekly:  WeeklyStepper{},
	core.Monthly: MonthlyStepper{},
	core.Yearly:  YearlyStepper{},
}

// GetStepper returns the stepper for a frequency.
func GetStepper(frequency core.Frequency) (Stepper, error) {
	stepper, ok := stepStrategies[frequency]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", frequency)
	}
	return stepper, nil
}

// RegisterStepper adds or replaces the stepper for a frequency.
func RegisterStepper(frequency core.Frequency, stepper Stepper) {
	stepStrategies[frequency] = stepper
}
