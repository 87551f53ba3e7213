package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

var ErrInvalidCapacity = errors.New("cache capacity must be positive")

// LRU is a bounded least-recently-used map. Lookups refresh recency, so it
// is guarded internally and safe for concurrent use.
type LRU[K comparable, V any] struct {
	inner     *lru.Cache[K, V]
	capacity  int
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Capacity  int
	Len       int
	Hits      int64
	Misses    int64
	Evictions int64
}

func NewLRU[K comparable, V any](capacity int) (*LRU[K, V], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "got %d", capacity)
	}
	c := &LRU[K, V]{capacity: capacity}
	inner, err := lru.NewWithEvict[K, V](capacity, func(K, V) { c.evictions.Add(1) })
	if err != nil {
		return nil, errors.Wrap(err, "failed to create lru")
	}
	c.inner = inner
	return c, nil
}

// Get returns the cached value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	v, ok := c.inner.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Put inserts or updates key, evicting the least recently used entry when
// the cache is full. It reports whether an eviction happened.
func (c *LRU[K, V]) Put(key K, value V) bool {
	return c.inner.Add(key, value)
}

// Contains checks membership without touching recency.
func (c *LRU[K, V]) Contains(key K) bool {
	return c.inner.Contains(key)
}

func (c *LRU[K, V]) Len() int { return c.inner.Len() }

func (c *LRU[K, V]) Capacity() int { return c.capacity }

// Purge drops every entry; each dropped entry counts as an eviction.
func (c *LRU[K, V]) Purge() {
	c.inner.Purge()
}

func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Capacity:  c.capacity,
		Len:       c.inner.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
