package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreSaveLoad(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	if err := store.Save(ctx, "s1", []byte("data"), time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != "data" {
		t.Errorf("data = %q", data)
	}
}

func TestMemoryStoreLoadMissing(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	data, err := store.Load(context.Background(), "nope")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data != nil {
		t.Errorf("data = %q, want nil", data)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	if err := store.Save(ctx, "s1", []byte("data"), time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data != nil {
		t.Error("expired snapshot should load as nil")
	}
}

func TestMemoryStoreTouchExtends(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	if err := store.Save(ctx, "s1", []byte("data"), time.Now().Add(time.Millisecond)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Touch(ctx, "s1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("touch: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	data, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != "data" {
		t.Error("touched snapshot should still be loadable")
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore(WithCleanupInterval(time.Hour))
	defer store.Close()
	ctx := context.Background()

	store.Save(ctx, "live", []byte("a"), time.Now().Add(time.Hour))
	store.Save(ctx, "dead", []byte("b"), time.Now().Add(-time.Second))

	store.sweep()

	if got := store.Len(); got != 1 {
		t.Errorf("len after sweep = %d, want 1", got)
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	store := NewMemoryStore()
	store.Close()

	if err := store.Save(context.Background(), "s1", nil, time.Now()); err == nil {
		t.Error("save on closed store should fail")
	}
	if _, err := store.Load(context.Background(), "s1"); err == nil {
		t.Error("load on closed store should fail")
	}
	// Second close is a no-op.
	if err := store.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
