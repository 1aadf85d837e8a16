package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "user"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "user", `{"id":"user1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, ok, err := s.Get(ctx, "user")
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if val != `{"id":"user1"}` {
		t.Fatalf("unexpected value: %q", val)
	}
	if err := s.Remove(ctx, "user"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "user"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestMemoryStoreFailWrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.FailWrites(true)

	if err := s.Set(ctx, "k", "v"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got: %v", err)
	}
	s.FailWrites(false)
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set after recovery: %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if err := s.Set(ctx, "chatSessions", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, ok, err := s.Get(ctx, "chatSessions")
	if err != nil || !ok || val != `[]` {
		t.Fatalf("get: val=%q ok=%v err=%v", val, ok, err)
	}
	if err := s.Set(ctx, "chatSessions", `[{"id":"s1"}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	val, _, _ = s.Get(ctx, "chatSessions")
	if val != `[{"id":"s1"}]` {
		t.Fatalf("expected overwritten value, got %q", val)
	}
	if err := s.Remove(ctx, "chatSessions"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, "chatSessions"); err != nil {
		t.Fatalf("remove absent key should be a no-op: %v", err)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := s.Set(ctx, "user", `{"id":"user1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	val, ok, err := reopened.Get(ctx, "user")
	if err != nil || !ok || val != `{"id":"user1"}` {
		t.Fatalf("expected persisted value after reopen: val=%q ok=%v err=%v", val, ok, err)
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(mr.Addr(), "")
	defer s.Close()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "user"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "user", `{"id":"user1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, ok, err := s.Get(ctx, "user")
	if err != nil || !ok || val != `{"id":"user1"}` {
		t.Fatalf("get: val=%q ok=%v err=%v", val, ok, err)
	}
	if err := s.Remove(ctx, "user"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "user"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(mr.Addr(), "")
	defer s.Close()
	mr.Close()

	if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got: %v", err)
	}
}
