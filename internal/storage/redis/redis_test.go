package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"cuentamia/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := New(context.Background(), "redis://"+mr.Addr(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	if _, err := s.Get(ctx, "cuentamia_ana_cards"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Put(ctx, "cuentamia_ana_cards", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "cuentamia_ana_cards")
	if err != nil || string(got) != `[]` {
		t.Fatalf("get = %q, %v", got, err)
	}
	if v, _ := mr.Get("cuentamia_ana_cards"); v != `[]` {
		t.Fatalf("expected raw value in redis, got %q", v)
	}

	if err := s.Delete(ctx, "cuentamia_ana_cards"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("cuentamia_ana_cards") {
		t.Fatal("expected key to be removed")
	}
}

func TestRedisStoreGetError(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	mr.SetError("boom")
	_, err := s.Get(ctx, "k")
	if err == nil || errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected a server error, got %v", err)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	if _, err := New(context.Background(), "http://localhost", nil); err == nil {
		t.Fatal("expected error for non-redis URL")
	}
}
