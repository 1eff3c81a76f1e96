package core

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2025, 3, 7))
	if err != nil || string(b) != `"2025-03-07"` {
		t.Fatalf("marshal: %s %v", b, err)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2025-03-07"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !d.Equal(NewDate(2025, 3, 7).Time) {
		t.Fatalf("unexpected date %v", d)
	}

	if err := json.Unmarshal([]byte(`""`), &d); err != nil || !d.IsZero() {
		t.Fatalf("empty string should give zero date, got %v %v", d, err)
	}

	if err := json.Unmarshal([]byte(`"2025-03-07T15:04:05Z"`), &d); err != nil || d.Day() != 7 || d.Hour() != 0 {
		t.Fatalf("timestamp should truncate to the day, got %v %v", d, err)
	}

	if err := json.Unmarshal([]byte(`"07/03/2025"`), &d); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Type:        Expense,
		Description: "ok",
		Amount:      1,
		Category:    "Food",
		Date:        NewDate(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	tests := []struct {
		name  string
		edit  func(*Transaction)
		field string
	}{
		{"unknown type", func(tx *Transaction) { tx.Type = "transfer" }, "type"},
		{"blank description", func(tx *Transaction) { tx.Description = "   " }, "description"},
		{"zero amount", func(tx *Transaction) { tx.Amount = 0 }, "amount"},
		{"NaN amount", func(tx *Transaction) { tx.Amount = math.NaN() }, "amount"},
		{"missing category", func(tx *Transaction) { tx.Category = "" }, "category"},
		{"missing date", func(tx *Transaction) { tx.Date = Date{} }, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := good
			tt.edit(&tx)
			err := tx.Validate()
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if _, ok := ve.Fields[tt.field]; !ok {
				t.Fatalf("expected field %q in %v", tt.field, ve.Fields)
			}
		})
	}
}

func TestCardAndPurchaseValidate(t *testing.T) {
	card := Card{Name: "Visa", Limit: 1000, ClosingDay: 25}
	if err := card.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, day := range []int{0, 32} {
		c := card
		c.ClosingDay = day
		if err := c.Validate(); !errors.Is(err, ErrValidation) {
			t.Fatalf("closing day %d: expected ErrValidation, got %v", day, err)
		}
	}
	c := card
	c.Limit = 0
	if err := c.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero limit: expected ErrValidation, got %v", err)
	}

	p := NewPurchase("Monitor", 300, 6, NewDate(2025, 1, 1), ComputedInstallment{})
	if err := p.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	over := p
	over.PaidInstallments = 7
	if err := over.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("paid > installments: expected ErrValidation, got %v", err)
	}
	fixed := NewPurchase("Dinner", 80, 3, NewDate(2025, 1, 1), FixedInstallment{Value: 0})
	if err := fixed.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero fixed installment: expected ErrValidation, got %v", err)
	}
}

func TestRecurringItemValidate(t *testing.T) {
	item := RecurringItem{Name: "Rent", Amount: 800, Frequency: Monthly, NextDueDate: NewDate(2025, 1, 1)}
	if err := item.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	item.Frequency = "daily"
	if err := item.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown frequency, got %v", err)
	}
}

func TestPeriodValidate(t *testing.T) {
	p := Period{Name: "March", StartDate: NewDate(2025, 3, 1), EndDate: NewDate(2025, 3, 31)}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	p.EndDate = NewDate(2025, 2, 1)
	err := p.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Fields["endDate"] != "gtefield" {
		t.Fatalf("expected endDate ordering error, got %v", err)
	}
}

func TestUserValidate(t *testing.T) {
	if err := (User{Username: "ana", Password: "pw"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (User{Username: " ", Password: "pw"}).Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "gt", "a": "required"}}
	if got, want := err.Error(), "validation failed: a (required), b (gt)"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
