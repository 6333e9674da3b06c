package cache

import (
	"sync"
	"testing"
)

func TestCache_CreatesOnMiss(t *testing.T) {
	c := New[string, int](10)
	calls := 0
	create := func() int { calls++; return 7 }

	if got := c.GetOrCreate("a", create); got != 7 {
		t.Errorf("GetOrCreate(a) = %d, want 7", got)
	}
	if got := c.GetOrCreate("a", create); got != 7 {
		t.Errorf("GetOrCreate(a) = %d, want 7", got)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](4)
	for i := range 4 {
		c.GetOrCreate(i, func() int { return i })
	}
	// touch 0 so it survives
	c.GetOrCreate(0, func() int { return -1 })
	c.GetOrCreate(4, func() int { return 4 })

	if got := c.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	if got := c.GetOrCreate(0, func() int { return -1 }); got != 0 {
		t.Error("recently used entry 0 was evicted")
	}
	if got := c.GetOrCreate(1, func() int { return -1 }); got != -1 {
		t.Error("least recently used entry 1 survived eviction")
	}
}

func TestCache_Unlimited(t *testing.T) {
	c := New[int, int](0)
	for i := range 100 {
		c.GetOrCreate(i, func() int { return i })
	}
	if got := c.Len(); got != 100 {
		t.Errorf("Len() = %d, want 100", got)
	}
}

func TestCache_GetOrCreateOnce(t *testing.T) {
	c := New[string, int](0)
	var mu sync.Mutex
	calls := 0

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.GetOrCreate("k", func() int {
				mu.Lock()
				calls++
				mu.Unlock()
				return 42
			})
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}
