package cli

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"cuentamia/internal/config"
	"cuentamia/internal/core"
	"cuentamia/internal/log"
)

func memoryConfig() *config.Config {
	return &config.Config{
		DataBackend:  "memory",
		KeyPrefix:    "cuentamia",
		LogLevel:     "info",
		CacheSize:    16,
		CacheTTL:     time.Minute,
		WriteTimeout: time.Second,
	}
}

func TestNewAppRejectsUnknownBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.DataBackend = "postgres"
	if _, err := NewApp(context.Background(), cfg, log.Discard()); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestAppEndToEnd(t *testing.T) {
	ctx := context.Background()
	app, err := NewApp(ctx, memoryConfig(), log.Discard())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}

	if err := app.Sessions.Register(ctx, "alice", "pw"); err != nil {
		t.Fatal(err)
	}
	s, err := app.Sessions.Login(ctx, "alice", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddSalary(ctx, core.Salary{Amount: 1000, Date: core.NewDate(2024, 3, 1)}); err != nil {
		t.Fatal(err)
	}

	if err := app.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestAppCloseReportsPersistenceErrors(t *testing.T) {
	ctx := context.Background()
	app, err := NewApp(ctx, memoryConfig(), log.Discard())
	if err != nil {
		t.Fatal(err)
	}

	app.Gateway.Save(ctx, "cuentamia_broken", math.NaN())

	err = app.Close(ctx)
	if err == nil {
		t.Fatal("expected the failed save to surface on Close")
	}
	var target interface{ Unwrap() []error }
	if !errors.As(err, &target) || len(target.Unwrap()) != 1 {
		t.Fatalf("expected one joined error, got %v", err)
	}
}
