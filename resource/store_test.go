package resource

import (
	"fmt"
	"sync"
	"testing"
)

func TestStoreGetPut(t *testing.T) {
	s := NewStore[string](0)

	if _, ok := s.Get("missing"); ok {
		t.Fatal("Get of missing key reported present")
	}

	s.Put("player.png", "sprite")
	v, ok := s.Get("player.png")
	if !ok || v != "sprite" {
		t.Fatalf("Get = (%q, %v), want sprite", v, ok)
	}

	s.Put("player.png", "sprite v2")
	if v, _ := s.Get("player.png"); v != "sprite v2" {
		t.Errorf("Put did not overwrite: got %q", v)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore[int](0)
	s.Put("a", 1)
	s.Remove("a")
	if _, ok := s.Get("a"); ok {
		t.Error("entry survived Remove")
	}
	s.Remove("a") // removing a missing key is fine
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	s := NewStore[int](2)

	// Keys that land in the same shard by construction: insert into one
	// shard until eviction must have happened.
	var keys []string
	base := s.shard("probe-0")
	for i := 0; len(keys) < 3; i++ {
		k := fmt.Sprintf("probe-%d", i)
		if s.shard(k) == base {
			keys = append(keys, k)
		}
	}

	s.Put(keys[0], 0)
	s.Put(keys[1], 1)
	s.Get(keys[0]) // refresh 0, making 1 the eviction candidate
	s.Put(keys[2], 2)

	if _, ok := s.Get(keys[0]); !ok {
		t.Error("recently used entry was evicted")
	}
	if _, ok := s.Get(keys[1]); ok {
		t.Error("least recently used entry survived over capacity")
	}
	_, _, evictions := s.Stats()
	if evictions == 0 {
		t.Error("eviction not counted")
	}
}

func TestStoreStats(t *testing.T) {
	s := NewStore[int](0)
	s.Put("a", 1)
	s.Get("a")
	s.Get("b")

	hits, misses, _ := s.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = (%d hits, %d misses), want (1, 1)", hits, misses)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore[int](64)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := fmt.Sprintf("asset-%d-%d", w, i%32)
				s.Put(k, i)
				s.Get(k)
			}
		}()
	}
	wg.Wait()
}
