// Package resource manages decoded game assets: a concurrency-safe keyed
// store with LRU eviction, plus helpers to decode images and to stream
// loads through the task subsystem one chunk per frame.
package resource

import (
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// shardCount spreads keys over independent locks so pool-executor
	// loads and main-thread lookups rarely contend. Power of 2 for fast
	// modulo via bitwise AND.
	shardCount = 16
	shardMask  = shardCount - 1

	// DefaultCapacity is the default number of entries kept per shard.
	DefaultCapacity = 256
)

// Store is a sharded, LRU-evicting store of decoded assets keyed by their
// resource path. Values are stored as-is, not copied; callers must not
// mutate a value after putting it in. Safe for concurrent use.
type Store[V any] struct {
	shards   [shardCount]*storeShard[V]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type storeShard[V any] struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type storeEntry[V any] struct {
	key   string
	value V
}

// NewStore creates a store keeping up to capacity entries per shard
// (total capacity is roughly 16x that). Non-positive capacity means
// DefaultCapacity.
func NewStore[V any](capacity int) *Store[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store[V]{capacity: capacity}
	for i := range s.shards {
		s.shards[i] = &storeShard[V]{
			entries: make(map[string]*list.Element),
			order:   list.New(),
		}
	}
	return s
}

func (s *Store[V]) shard(key string) *storeShard[V] {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key)) // fnv.Write never fails
	return s.shards[h.Sum64()&shardMask]
}

// Get returns the asset stored under key, marking it recently used.
func (s *Store[V]) Get(key string) (V, bool) {
	sh := s.shard(key)
	sh.mu.Lock()
	el, ok := sh.entries[key]
	if !ok {
		sh.mu.Unlock()
		s.misses.Add(1)
		var zero V
		return zero, false
	}
	sh.order.MoveToFront(el)
	v := el.Value.(*storeEntry[V]).value
	sh.mu.Unlock()
	s.hits.Add(1)
	return v, true
}

// Put stores value under key, evicting the least recently used entries of
// the key's shard if it is full.
func (s *Store[V]) Put(key string, value V) {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if el, ok := sh.entries[key]; ok {
		el.Value.(*storeEntry[V]).value = value
		sh.order.MoveToFront(el)
		return
	}
	for sh.order.Len() >= s.capacity {
		oldest := sh.order.Back()
		if oldest == nil {
			break
		}
		sh.order.Remove(oldest)
		delete(sh.entries, oldest.Value.(*storeEntry[V]).key)
		s.evictions.Add(1)
	}
	sh.entries[key] = sh.order.PushFront(&storeEntry[V]{key: key, value: value})
}

// Remove drops the asset stored under key, if any.
func (s *Store[V]) Remove(key string) {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if el, ok := sh.entries[key]; ok {
		sh.order.Remove(el)
		delete(sh.entries, key)
	}
}

// Len returns the number of stored assets.
func (s *Store[V]) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += sh.order.Len()
		sh.mu.Unlock()
	}
	return n
}

// Stats reports cumulative hit, miss and eviction counts.
func (s *Store[V]) Stats() (hits, misses, evictions uint64) {
	return s.hits.Load(), s.misses.Load(), s.evictions.Load()
}
