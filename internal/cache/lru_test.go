// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestLRU_BasicOperations(t *testing.T) {
	t.Parallel()

	c := NewLRU[int64, string](3, time.Minute)
	c.Add(1, "a")
	c.Add(2, "b")
	c.Add(3, "c")

	for k, want := range map[int64]string{1: "a", 2: "b", 3: "c"} {
		got, found := c.Get(k)
		if !found || got != want {
			t.Errorf("Get(%d) = %q, %v; want %q, true", k, got, found, want)
		}
	}

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestLRU_Defaults(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](0, 0)
	st := c.Stats()
	if st.Capacity != DefaultLRUCapacity {
		t.Errorf("Capacity = %d, want %d", st.Capacity, DefaultLRUCapacity)
	}
}

func TestLRU_Eviction(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](3, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	// Access 'a' so 'b' becomes least recently used
	c.Get("a")
	c.Add("d", 4)

	if _, found := c.Get("b"); found {
		t.Error("expected 'b' to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, found := c.Get(k); !found {
			t.Errorf("expected %q to be present", k)
		}
	}
	if st := c.Stats(); st.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", st.Evictions)
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := NewLRU[string, int](10, time.Hour)
	c.SetClock(clock.Now)

	c.Add("a", 1)
	c.AddWithTTL("short", 2, time.Minute)

	clock.Advance(59 * time.Minute)
	if _, found := c.Get("a"); !found {
		t.Error("expected 'a' before TTL")
	}
	if _, found := c.Get("short"); found {
		t.Error("expected 'short' to expire after its custom TTL")
	}

	clock.Advance(2 * time.Minute)
	if c.Contains("a") {
		t.Error("Contains('a') = true after TTL")
	}
	if _, found := c.Get("a"); found {
		t.Error("expected 'a' to expire")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after lazy expiration, want 0", c.Len())
	}
}

func TestLRU_UpdateExistingRefreshesTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := NewLRU[string, int](3, time.Minute)
	c.SetClock(clock.Now)

	c.Add("a", 1)
	clock.Advance(50 * time.Second)
	c.Add("a", 2)
	clock.Advance(50 * time.Second)

	got, found := c.Get("a")
	if !found || got != 2 {
		t.Errorf("Get(a) = %d, %v; want 2, true", got, found)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_Remove(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](10, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	if !c.Remove("a") {
		t.Error("Remove(a) = false for existing key")
	}
	if c.Remove("a") {
		t.Error("Remove(a) = true for removed key")
	}
	if _, found := c.Get("b"); !found {
		t.Error("expected 'b' to remain")
	}
}

func TestLRU_Clear(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](10, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
	c.Add("c", 3)
	if _, found := c.Get("c"); !found {
		t.Error("cache unusable after Clear")
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := NewLRU[string, int](10, time.Minute)
	c.SetClock(clock.Now)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	clock.Advance(2 * time.Minute)
	c.Add("d", 4)

	if removed := c.CleanupExpired(); removed != 3 {
		t.Errorf("CleanupExpired() = %d, want 3", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_Stats(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](10, time.Minute)
	c.Add("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	st := c.Stats()
	if st.Hits != 2 || st.Misses != 1 || st.Size != 1 {
		t.Errorf("Stats() = %+v, want 2 hits, 1 miss, size 1", st)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](50, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (id+j)%80)
				c.Add(key, j)
				c.Get(key)
				c.Contains(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity 50", c.Len())
	}
	c.Add("test", 1)
	if _, found := c.Get("test"); !found {
		t.Error("cache should still work after concurrent access")
	}
}
