package core

// InstallmentPlan decides how a purchase's installment value is obtained.
// It is resolved once when the purchase is created or edited; the resulting
// value is stored on the record and never re-derived afterwards.
type InstallmentPlan interface {
	resolve(amount float64, installments int) float64
	computed() bool
}

// ComputedInstallment splits the purchase amount evenly.
type ComputedInstallment struct{}

// FixedInstallment is a user-supplied installment value, which may embed
// interest so that Value × installments exceeds the purchase amount.
type FixedInstallment struct {
	Value float64
}

func (ComputedInstallment) resolve(amount float64, installments int) float64 {
	return divideAmount(amount, installments)
}

func (ComputedInstallment) computed() bool { return true }

func (f FixedInstallment) resolve(float64, int) float64 { return f.Value }

func (FixedInstallment) computed() bool { return false }

// NewPurchase builds an unpaid purchase with its installment value resolved.
func NewPurchase(description string, amount float64, installments int, date Date, plan InstallmentPlan) Purchase {
	p := Purchase{
		ID:           NewID(),
		Description:  description,
		Amount:       amount,
		Installments: installments,
		Date:         date,
	}
	p.ApplyPlan(plan)
	return p
}

// ApplyPlan resolves plan against the purchase's current amount and
// installment count.
func (p *Purchase) ApplyPlan(plan InstallmentPlan) {
	if plan == nil {
		plan = ComputedInstallment{}
	}
	p.AutoCalculateInstallment = plan.computed()
	p.InstallmentValue = plan.resolve(p.Amount, p.Installments)
}

// Plan recovers the plan a stored purchase was created with.
func (p Purchase) Plan() InstallmentPlan {
	if p.AutoCalculateInstallment {
		return ComputedInstallment{}
	}
	return FixedInstallment{Value: p.InstallmentValue}
}

// RemainingInstallments is never negative, even for over-paid records.
func (p Purchase) RemainingInstallments() int {
	if remaining := p.Installments - p.PaidInstallments; remaining > 0 {
		return remaining
	}
	return 0
}

// Debt is the outstanding obligation of a single purchase.
func (p Purchase) Debt() float64 {
	remaining := p.Installments - p.PaidInstallments
	if remaining <= 0 {
		return 0
	}
	return p.InstallmentValue * float64(remaining)
}

// FullyPaid reports whether no installments remain.
func (p Purchase) FullyPaid() bool {
	return p.PaidInstallments >= p.Installments
}

// Debt sums the outstanding obligation of every purchase on the card.
func (c Card) Debt() float64 {
	total := 0.0
	for _, p := range c.Purchases {
		total += p.Debt()
	}
	return total
}

// Available is the credit headroom left under the card limit.
func (c Card) Available() float64 {
	return c.Limit - c.Debt()
}
