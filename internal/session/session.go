// Package session holds the in-memory state of the logged-in user and
// persists every change through the gateway.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cuentamia/internal/core"
	"cuentamia/internal/gateway"
	"cuentamia/internal/log"
)

var (
	ErrNoSession = errors.New("no active session")
	ErrNotFound  = errors.New("record not found")
	ErrFullyPaid = errors.New("purchase is already fully paid")
)

// RecurringKind selects the recurring expense or recurring income list.
type RecurringKind string

const (
	RecurringExpense RecurringKind = "expense"
	RecurringIncome  RecurringKind = "income"
)

func (k RecurringKind) collection() (gateway.Collection, error) {
	switch k {
	case RecurringExpense:
		return gateway.RecurringExpenses, nil
	case RecurringIncome:
		return gateway.RecurringIncomes, nil
	}
	return "", fmt.Errorf("unknown recurring kind %q", k)
}

// Session is the state of one user. All collections are replaced wholesale
// when the session is opened, so nothing survives from a previous user.
type Session struct {
	gw     *gateway.Gateway
	logger *log.Logger
	user   string
	now    func() time.Time

	mu     sync.RWMutex
	data   core.Collections
	closed bool
}

// Options configures Open.
type Options struct {
	// Defaults supplies the value of each collection that was never saved.
	Defaults core.Collections
	Logger   *log.Logger
	Now      func() time.Time
}

// Open loads every collection of username.
func Open(ctx context.Context, gw *gateway.Gateway, username string, opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{
		gw:     gw,
		logger: opts.Logger.WithComponent(log.ComponentSession).WithUser(username),
		user:   username,
		now:    opts.Now,
	}

	start := time.Now()
	data, err := s.load(ctx, opts.Defaults)
	if err != nil {
		return nil, err
	}
	s.data = data

	s.logger.InfoContext(ctx, "Session opened",
		log.FieldOperation, log.OpLoad,
		log.FieldDuration, time.Since(start).Milliseconds())
	return s, nil
}

func (s *Session) load(ctx context.Context, def core.Collections) (core.Collections, error) {
	var (
		c     core.Collections
		found [7]bool
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.Transactions, found[0] = loadSlice(gctx, s, gateway.Transactions, def.Transactions)
		return gctx.Err()
	})
	g.Go(func() error {
		c.Cards, found[1] = loadSlice(gctx, s, gateway.Cards, def.Cards)
		return gctx.Err()
	})
	g.Go(func() error {
		c.Salaries, found[2] = loadSlice(gctx, s, gateway.Salaries, def.Salaries)
		return gctx.Err()
	})
	g.Go(func() error {
		c.RecurringExpenses, found[3] = loadSlice(gctx, s, gateway.RecurringExpenses, def.RecurringExpenses)
		return gctx.Err()
	})
	g.Go(func() error {
		c.RecurringIncomes, found[4] = loadSlice(gctx, s, gateway.RecurringIncomes, def.RecurringIncomes)
		return gctx.Err()
	})
	g.Go(func() error {
		c.CurrentPeriod, found[5] = gateway.Lookup(gctx, s.gw, s.key(gateway.CurrentPeriod), def.CurrentPeriod)
		return gctx.Err()
	})
	g.Go(func() error {
		c.PeriodsHistory, found[6] = loadSlice(gctx, s, gateway.PeriodsHistory, def.PeriodsHistory)
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return core.Collections{}, fmt.Errorf("load session for %s: %w", s.user, err)
	}
	for i := range c.Cards {
		if c.Cards[i].Purchases == nil {
			c.Cards[i].Purchases = []core.Purchase{}
		}
	}

	// Defaults are written back so generated ids stay stable across opens.
	for i, col := range gateway.AllCollections() {
		if !found[i] {
			s.save(ctx, col, collectionValue(c, col))
		}
	}
	return c, nil
}

// loadSlice never returns nil, so an empty collection is saved as [] rather
// than null.
func loadSlice[T any](ctx context.Context, s *Session, c gateway.Collection, def []T) ([]T, bool) {
	v, ok := gateway.Lookup(ctx, s.gw, s.key(c), clone(def))
	if v == nil {
		return []T{}, ok
	}
	return v, ok
}

func collectionValue(c core.Collections, col gateway.Collection) any {
	switch col {
	case gateway.Transactions:
		return c.Transactions
	case gateway.Cards:
		return c.Cards
	case gateway.Salaries:
		return c.Salaries
	case gateway.RecurringExpenses:
		return c.RecurringExpenses
	case gateway.RecurringIncomes:
		return c.RecurringIncomes
	case gateway.CurrentPeriod:
		return c.CurrentPeriod
	case gateway.PeriodsHistory:
		return c.PeriodsHistory
	}
	return nil
}

func (s *Session) key(c gateway.Collection) string {
	return s.gw.NamespacedKey(s.user, c)
}

// User returns the username the session belongs to.
func (s *Session) User() string {
	return s.user
}

// Close waits for pending writes and drops the in-memory state.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.gw.Flush(ctx)
	s.data = core.Collections{}
	s.closed = true
	s.logger.DebugContext(ctx, "Session closed")
}

// mutate runs fn with the write lock held, refusing when the session is
// closed.
func (s *Session) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNoSession
	}
	return fn()
}

func (s *Session) save(ctx context.Context, c gateway.Collection, value any) {
	s.gw.Save(ctx, s.key(c), value)
}

func (s *Session) logChange(ctx context.Context, op string, c gateway.Collection, id string) {
	s.logger.DebugContext(ctx, "Collection changed",
		log.FieldOperation, op,
		log.FieldCollection, string(c),
		log.FieldRecordID, id)
}

func (s *Session) today() core.Date {
	return core.DateOf(s.now())
}

// Snapshot returns a deep copy of every collection.
func (s *Session) Snapshot() core.Collections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCollections(s.data)
}

// Summary aggregates the current state.
func (s *Session) Summary() core.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Summary()
}

// Transactions returns the transactions, newest first.
func (s *Session) Transactions() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data.Transactions)
}

// Cards returns the cards with their purchases.
func (s *Session) Cards() []core.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCards(s.data.Cards)
}

func (s *Session) Salaries() []core.Salary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data.Salaries)
}

// Recurring returns the recurring expenses or incomes.
func (s *Session) Recurring(kind RecurringKind) []core.RecurringItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if kind == RecurringIncome {
		return clone(s.data.RecurringIncomes)
	}
	return clone(s.data.RecurringExpenses)
}

func (s *Session) CurrentPeriod() core.Period {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.CurrentPeriod
}

// History returns archived periods, oldest first.
func (s *Session) History() []core.Period {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data.PeriodsHistory)
}
