package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"cuentamia/internal/cache"
	"cuentamia/internal/log"
	"cuentamia/internal/storage"
)

// ErrClosed is reported when a write arrives after Close.
var ErrClosed = errors.New("gateway closed")

// Error describes a persistence failure. It is delivered on the error
// channel and never returned to the caller that triggered it.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Options tunes a Gateway.
type Options struct {
	// Prefix namespaces every key. Must not contain '_'.
	Prefix string
	// Cache holds the latest encoded value per key. Nil disables caching.
	Cache cache.Cache[[]byte]
	// WriteTimeout bounds each background store call.
	WriteTimeout time.Duration
	// QueueSize is the capacity of the pending write queue.
	QueueSize int
	// ErrorBuffer is the capacity of the error channel; errors beyond it
	// are only logged.
	ErrorBuffer int
}

type writeOp struct {
	ctx     context.Context
	key     string
	value   []byte
	remove  bool
	barrier chan struct{}
}

// Gateway persists JSON-encoded values under namespaced keys. Writes are
// applied in call order by a single background writer; a read always
// observes the most recent write to its key.
type Gateway struct {
	store        storage.Store
	logger       *log.Logger
	prefix       string
	cache        cache.Cache[[]byte]
	writeTimeout time.Duration

	mu      sync.RWMutex
	closed  bool
	queue   chan writeOp
	errs    chan error
	stopped chan struct{}
}

// New starts a gateway over store.
func New(store storage.Store, logger *log.Logger, opts Options) *Gateway {
	if logger == nil {
		logger = log.Discard()
	}
	if opts.Prefix == "" {
		opts.Prefix = "cuentamia"
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.ErrorBuffer <= 0 {
		opts.ErrorBuffer = 16
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewLRUCache[[]byte](0, 0)
	}

	g := &Gateway{
		store:        store,
		logger:       logger.WithComponent(log.ComponentGateway),
		prefix:       opts.Prefix,
		cache:        opts.Cache,
		writeTimeout: opts.WriteTimeout,
		queue:        make(chan writeOp, opts.QueueSize),
		errs:         make(chan error, opts.ErrorBuffer),
		stopped:      make(chan struct{}),
	}
	go g.run()
	return g
}

// NamespacedKey returns the key of username's collection.
func (g *Gateway) NamespacedKey(username string, c Collection) string {
	return NamespacedKey(g.prefix, username, c)
}

// GlobalKey returns an unscoped key.
func (g *Gateway) GlobalKey(name string) string {
	return GlobalKey(g.prefix, name)
}

// Errors delivers persistence failures. The channel is never closed.
func (g *Gateway) Errors() <-chan error {
	return g.errs
}

// Load decodes the value stored at key, returning def when the key has never
// been written or cannot be read or decoded.
func Load[T any](ctx context.Context, g *Gateway, key string, def T) T {
	v, _ := Lookup(ctx, g, key, def)
	return v
}

// Lookup is Load that also reports whether a stored value was decoded.
func Lookup[T any](ctx context.Context, g *Gateway, key string, def T) (T, bool) {
	data, ok := g.cache.Get(key)
	if !ok {
		g.Flush(ctx)

		var err error
		data, err = g.store.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			return def, false
		}
		if err != nil {
			g.report(ctx, log.OpLoad, log.ErrorTypePersistence, key, err)
			return def, false
		}
		g.cache.Set(key, data)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		g.report(ctx, log.OpDecode, log.ErrorTypeSerialization, key, err)
		return def, false
	}
	return v, true
}

// Save persists value at key without waiting for the store. The value is
// encoded before Save returns, so later mutations of value are not seen.
// Failures are reported on Errors and logged.
func (g *Gateway) Save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		g.report(ctx, log.OpEncode, log.ErrorTypeSerialization, key, err)
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.closed {
		g.report(ctx, log.OpSave, log.ErrorTypePersistence, key, ErrClosed)
		return
	}

	g.cache.Set(key, data)
	g.queue <- writeOp{ctx: context.WithoutCancel(ctx), key: key, value: data}
}

// Remove deletes key without waiting for the store.
func (g *Gateway) Remove(ctx context.Context, key string) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.closed {
		g.report(ctx, log.OpDelete, log.ErrorTypePersistence, key, ErrClosed)
		return
	}

	g.cache.Delete(key)
	g.queue <- writeOp{ctx: context.WithoutCancel(ctx), key: key, remove: true}
}

// Flush blocks until every write queued before the call has been applied,
// or ctx is done.
func (g *Gateway) Flush(ctx context.Context) {
	g.mu.RLock()
	if g.closed {
		g.mu.RUnlock()
		return
	}
	done := make(chan struct{})
	g.queue <- writeOp{barrier: done}
	g.mu.RUnlock()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Close applies pending writes and stops the writer. The underlying store
// is left open.
func (g *Gateway) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	close(g.queue)
	g.mu.Unlock()

	<-g.stopped
	g.cache.Purge()
	g.logger.Debug("Gateway closed")
	return nil
}

func (g *Gateway) run() {
	defer close(g.stopped)
	for op := range g.queue {
		if op.barrier != nil {
			close(op.barrier)
			continue
		}
		g.apply(op)
	}
}

func (g *Gateway) apply(op writeOp) {
	ctx, cancel := context.WithTimeout(op.ctx, g.writeTimeout)
	defer cancel()

	start := time.Now()
	if op.remove {
		if err := g.store.Delete(ctx, op.key); err != nil {
			g.report(ctx, log.OpDelete, log.ErrorTypePersistence, op.key, err)
		}
		return
	}

	if err := g.store.Put(ctx, op.key, op.value); err != nil {
		g.report(ctx, log.OpSave, log.ErrorTypePersistence, op.key, err)
		return
	}
	g.logger.DebugContext(ctx, "Persisted value",
		log.FieldKey, op.key,
		log.FieldBytes, len(op.value),
		log.FieldDuration, time.Since(start).Milliseconds())
}

func (g *Gateway) report(ctx context.Context, op, errorType, key string, err error) {
	fields := log.NewFields().
		WithOperation(op).
		WithErrorType(errorType).
		WithKey(key).
		WithError(err)
	g.logger.ErrorContext(ctx, "Persistence failure", fields.ToSlice()...)

	select {
	case g.errs <- &Error{Op: op, Key: key, Err: err}:
	default:
		g.logger.WarnContext(ctx, "Error channel full, dropping error", log.FieldKey, key)
	}
}
