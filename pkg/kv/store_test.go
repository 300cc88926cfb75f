package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if _, err := store.Get(ctx, "cart"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty store, got %v", err)
	}

	if err := store.Set(ctx, "cart", []byte(`{"items":[]}`)); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	value, err := store.Get(ctx, "cart")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if string(value) != `{"items":[]}` {
		t.Fatalf("unexpected value %q", value)
	}

	// The returned slice must not alias internal storage.
	value[0] = 'X'
	again, err := store.Get(ctx, "cart")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if string(again) != `{"items":[]}` {
		t.Fatalf("stored value was mutated through a returned slice")
	}

	if err := store.Delete(ctx, "cart"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if _, err := store.Get(ctx, "cart"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error creating file store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Get(ctx, "wishlist"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for fresh directory, got %v", err)
	}

	payload := []byte(`["3","5"]`)
	if err := store.Set(ctx, "wishlist", payload); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	value, err := store.Get(ctx, "wishlist")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if string(value) != string(payload) {
		t.Fatalf("round trip mismatch: %q", value)
	}

	if err := store.Set(ctx, "wishlist", []byte(`[]`)); err != nil {
		t.Fatalf("unexpected overwrite error: %v", err)
	}
	value, err = store.Get(ctx, "wishlist")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if string(value) != `[]` {
		t.Fatalf("overwrite did not take: %q", value)
	}

	if err := store.Delete(ctx, "wishlist"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if err := store.Delete(ctx, "wishlist"); err != nil {
		t.Fatalf("deleting an absent key should be a no-op, got %v", err)
	}
}

func TestFileRequiresDirectory(t *testing.T) {
	t.Parallel()

	if _, err := NewFile("  "); err == nil {
		t.Fatal("expected error for blank directory")
	}
}
