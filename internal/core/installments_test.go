package core

import (
	"encoding/json"
	"testing"
)

func TestComputedInstallmentIsExact(t *testing.T) {
	p := NewPurchase("Monitor", 300, 6, NewDate(2025, 1, 1), ComputedInstallment{})
	if p.InstallmentValue != 50 || !p.AutoCalculateInstallment {
		t.Fatalf("expected computed value 50, got %+v", p)
	}
	for i := 0; i < 10; i++ {
		p.ApplyPlan(p.Plan())
		if p.InstallmentValue != 50 {
			t.Fatalf("recomputation %d drifted to %v", i, p.InstallmentValue)
		}
	}
}

func TestFixedInstallmentKeepsInterest(t *testing.T) {
	p := NewPurchase("Dinner", 80, 3, NewDate(2025, 1, 1), FixedInstallment{Value: 30})
	if p.InstallmentValue != 30 || p.AutoCalculateInstallment {
		t.Fatalf("expected fixed value 30, got %+v", p)
	}
	if p.Debt() != 90 {
		t.Fatalf("fixed plan may exceed amount, expected debt 90, got %v", p.Debt())
	}
	plan, ok := p.Plan().(FixedInstallment)
	if !ok || plan.Value != 30 {
		t.Fatalf("expected FixedInstallment{30}, got %#v", p.Plan())
	}
}

func TestApplyPlanAfterEdit(t *testing.T) {
	p := NewPurchase("Phone", 600, 12, NewDate(2025, 1, 1), ComputedInstallment{})
	p.Amount = 900
	p.ApplyPlan(p.Plan())
	if p.InstallmentValue != 75 {
		t.Fatalf("expected 75 after edit, got %v", p.InstallmentValue)
	}
	p.ApplyPlan(nil)
	if !p.AutoCalculateInstallment {
		t.Fatalf("nil plan should default to computed")
	}
}

func TestPurchaseRemainingAndCardAvailable(t *testing.T) {
	card := Card{Limit: 1000, Purchases: []Purchase{
		{Installments: 4, PaidInstallments: 1, InstallmentValue: 25},
		{Installments: 2, PaidInstallments: 4, InstallmentValue: 50},
	}}
	if r := card.Purchases[0].RemainingInstallments(); r != 3 {
		t.Fatalf("expected 3 remaining, got %d", r)
	}
	if r := card.Purchases[1].RemainingInstallments(); r != 0 {
		t.Fatalf("over-paid purchase should have 0 remaining, got %d", r)
	}
	if !card.Purchases[1].FullyPaid() {
		t.Fatalf("expected fully paid")
	}
	if card.Debt() != 75 || card.Available() != 925 {
		t.Fatalf("unexpected debt/available: %v/%v", card.Debt(), card.Available())
	}
}

func TestPurchaseRecordShape(t *testing.T) {
	p := NewPurchase("Monitor", 300, 6, NewDate(2025, 1, 2), ComputedInstallment{})
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "description", "amount", "installments", "paidInstallments", "date", "autoCalculateInstallment", "installmentValue"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("persisted purchase missing %q: %s", key, b)
		}
	}
	if raw["date"] != "2025-01-02" {
		t.Fatalf("unexpected date encoding %v", raw["date"])
	}
}
