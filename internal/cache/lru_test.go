// CineMatch - Movie Recommendation Engine
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

func TestLRU_GetAdd(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](3, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss")
	}

	c.Add("a", 10)
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("expected refreshed value 10, got %v", v)
	}

	hits, misses, size := c.Stats()
	if hits != 2 || misses != 1 || size != 2 {
		t.Errorf("Stats() = %d, %d, %d", hits, misses, size)
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := NewLRU[string](2, time.Minute)
	c.Add("a", "A")
	c.Add("b", "B")
	c.Get("a") // b is now oldest
	c.Add("c", "C")

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a to survive")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRU_TTL(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	c := NewLRU[int](10, time.Minute)
	c.now = func() time.Time { return now }

	c.Add("a", 1)
	c.Add("b", 2)
	now = now.Add(2 * time.Minute)
	c.Add("c", 3)

	for _, k := range []string{"a", "b"} {
		if _, ok := c.Get(k); ok {
			t.Errorf("expected %s to be expired", k)
		}
	}
	if c.Len() != 1 {
		t.Errorf("Len() after expired reads = %d, want 1", c.Len())
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected c to be live")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("c"); ok {
		t.Error("expected c to expire on access")
	}
}

func TestLRU_Clear(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](0, 0)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be gone after Clear")
	}
	c.Add("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) after Clear = %v, %v", v, ok)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](50, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*i)%80)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
