package clicks

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStore_IncrementAndCount(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	key := "https://shop.example/whey-pro-100"

	// Unknown key counts as zero
	count, err := store.Count(ctx, key)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0 for unclicked key", count)
	}

	// Each increment returns the running total
	for want := int64(1); want <= 3; want++ {
		got, err := store.Increment(ctx, key)
		if err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
		if got != want {
			t.Errorf("Increment() = %d, want %d", got, want)
		}
	}

	count, err = store.Count(ctx, key)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}
}

func TestMemoryStore_IndependentKeys(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Increment(ctx, "a"); err != nil {
		t.Fatalf("Increment() error = %v", err)
	}
	if _, err := store.Increment(ctx, "a"); err != nil {
		t.Fatalf("Increment() error = %v", err)
	}
	if _, err := store.Increment(ctx, "b"); err != nil {
		t.Fatalf("Increment() error = %v", err)
	}

	countA, _ := store.Count(ctx, "a")
	countB, _ := store.Count(ctx, "b")
	if countA != 2 || countB != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", countA, countB)
	}
	if size := store.Size(); size != 2 {
		t.Errorf("Size() = %d, want 2", size)
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	key := "concurrent-key"
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Increment(ctx, key); err != nil {
				t.Errorf("Concurrent Increment() error = %v", err)
			}
		}()
	}
	wg.Wait()

	count, err := store.Count(ctx, key)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 50 {
		t.Errorf("Count() = %d, want 50", count)
	}
}
