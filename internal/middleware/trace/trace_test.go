package trace

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"cuentamia/internal/log"
)

func TestRunTagsContextAndCountsFailures(t *testing.T) {
	var buf bytes.Buffer
	m := NewMiddleware(log.New(log.Config{Handler: slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})}))

	var seen string
	err := m.Run(context.Background(), "summary", func(ctx context.Context) error {
		seen = log.CommandID(ctx)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(seen, "cmd_") {
		t.Fatalf("expected a command id in context, got %q", seen)
	}

	boom := errors.New("boom")
	if err := m.Run(context.Background(), "card add", func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Run must return the command error, got %v", err)
	}

	metrics := m.GetMetrics()
	if metrics.TotalCommands != 2 || metrics.FailedCommands != 1 {
		t.Fatalf("unexpected metrics %+v", metrics)
	}

	out := buf.String()
	for _, want := range []string{"command_id=" + seen, "component=cli", "success=false", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output:\n%s", want, out)
		}
	}
}

func TestGenerateCommandIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateCommandID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
