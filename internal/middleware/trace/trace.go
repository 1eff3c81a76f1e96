// Package trace tags each command run with an id and logs its outcome.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"cuentamia/internal/log"
)

// Middleware logs the start and completion of every command it wraps.
type Middleware struct {
	logger  *log.Logger
	metrics *Metrics
}

// Metrics counts wrapped command runs.
type Metrics struct {
	TotalCommands  int64
	FailedCommands int64
	LastDuration   int64 // in microseconds
}

// NewMiddleware creates a new trace middleware
func NewMiddleware(logger *log.Logger) *Middleware {
	if logger == nil {
		logger = log.Discard()
	}
	return &Middleware{
		logger:  logger.WithComponent(log.ComponentCLI),
		metrics: &Metrics{},
	}
}

// Run executes fn with a context carrying a fresh command id.
func (m *Middleware) Run(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	id := GenerateCommandID()
	ctx = log.WithCommandID(ctx, id)

	m.logger.DebugContext(ctx, "Command started", log.FieldCommand, name)
	atomic.AddInt64(&m.metrics.TotalCommands, 1)

	err := fn(ctx)

	duration := time.Since(start)
	atomic.StoreInt64(&m.metrics.LastDuration, duration.Microseconds())

	level := slog.LevelDebug
	args := []any{
		log.FieldCommand, name,
		log.FieldDuration, duration.Milliseconds(),
		"success", err == nil,
	}
	if err != nil {
		atomic.AddInt64(&m.metrics.FailedCommands, 1)
		level = slog.LevelWarn
		args = append(args, log.FieldError, err.Error())
	}
	m.logger.Log(ctx, level, "Command completed", args...)
	return err
}

// GenerateCommandID creates a unique id for one command run.
func GenerateCommandID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("cmd_%d", time.Now().UnixNano())
	}
	return "cmd_" + hex.EncodeToString(bytes)
}

// GetMetrics returns current metrics
func (m *Middleware) GetMetrics() Metrics {
	return Metrics{
		TotalCommands:  atomic.LoadInt64(&m.metrics.TotalCommands),
		FailedCommands: atomic.LoadInt64(&m.metrics.FailedCommands),
		LastDuration:   atomic.LoadInt64(&m.metrics.LastDuration),
	}
}
