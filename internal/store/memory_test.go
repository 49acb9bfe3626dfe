package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if _, err := st.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.Save(ctx, &Session{}); err == nil {
		t.Fatal("expected error saving session without id")
	}

	s := &Session{ID: "abc", Mode: "random", CreatedAt: time.Now()}
	if err := st.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, err := st.Get(ctx, "abc")
	if err != nil || got != s {
		t.Fatalf("get = %v, %v", got, err)
	}
	if st.Len() != 1 {
		t.Fatalf("len = %d", st.Len())
	}

	if err := st.Delete(ctx, "abc"); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(ctx, "abc"); err != nil {
		t.Fatalf("deleting twice: %v", err)
	}
	if _, err := st.Get(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	_ = st.Save(ctx, &Session{ID: "old", CreatedAt: now.Add(-7 * time.Hour)})
	_ = st.Save(ctx, &Session{ID: "new", CreatedAt: now.Add(-time.Hour)})

	if n := st.Sweep(ctx, now.Add(-6*time.Hour)); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if _, err := st.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Fatal("old session survived sweep")
	}
	if _, err := st.Get(ctx, "new"); err != nil {
		t.Fatalf("new session swept: %v", err)
	}
}

func TestMemoryStoreSweepKeepsActiveSessions(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	_ = st.Save(ctx, &Session{ID: "busy", CreatedAt: now.Add(-10 * time.Hour)})
	_ = st.Save(ctx, &Session{ID: "idle", CreatedAt: now.Add(-10 * time.Hour)})

	if err := st.Touch(ctx, "busy", now.Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := st.Touch(ctx, "busy", now.Add(-8*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := st.Touch(ctx, "nope", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("touch unknown = %v, want ErrNotFound", err)
	}

	if n := st.Sweep(ctx, now.Add(-6*time.Hour)); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if _, err := st.Get(ctx, "busy"); err != nil {
		t.Fatalf("active session swept: %v", err)
	}
	if _, err := st.Get(ctx, "idle"); !errors.Is(err, ErrNotFound) {
		t.Fatal("idle session survived sweep")
	}
}
