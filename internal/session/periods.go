package session

import (
	"context"

	"cuentamia/internal/core"
	"cuentamia/internal/gateway"
	"cuentamia/internal/log"
)

// SetCurrentPeriod replaces the reporting period. A period without an id
// gets a fresh one.
func (s *Session) SetCurrentPeriod(ctx context.Context, p core.Period) (core.Period, error) {
	if err := p.Validate(); err != nil {
		return core.Period{}, err
	}

	err := s.mutate(func() error {
		if p.ID == "" {
			p.ID = core.NewID()
		}
		s.data.CurrentPeriod = p
		s.save(ctx, gateway.CurrentPeriod, p)
		s.logChange(ctx, log.OpUpdate, gateway.CurrentPeriod, p.ID)
		return nil
	})
	return p, err
}

// ArchivePeriod appends the current period to the history. The current
// period itself is left in place.
func (s *Session) ArchivePeriod(ctx context.Context) (core.Period, error) {
	var archived core.Period
	err := s.mutate(func() error {
		archived = s.data.CurrentPeriod
		if err := archived.Validate(); err != nil {
			return err
		}
		s.data.PeriodsHistory = append(clone(s.data.PeriodsHistory), archived)
		s.save(ctx, gateway.PeriodsHistory, s.data.PeriodsHistory)
		s.logChange(ctx, log.OpCreate, gateway.PeriodsHistory, archived.ID)
		return nil
	})
	return archived, err
}
