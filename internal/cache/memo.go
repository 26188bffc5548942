// Package cache memoizes pure, expensive computations such as grid meshes.
//
// Entries are keyed by the SHA-256 of the exact input tuple and stored whole:
// a reader sees either a complete value or a miss. Eviction is size-bounded
// LRU: values with a Size() int64 method weigh that much, others weigh one,
// and ccache prunes the least recently promoted items once the total passes
// MaxSize. An optional TTL expires entries. Failed computations are never
// stored.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/karlseguin/ccache/v3"
	"golang.org/x/sync/singleflight"
)

// Config controls a Memo's bounds
type Config struct {
	MaxSize      int64         // total weight of the entries kept
	ItemsToPrune uint32        // entries dropped per prune pass
	TTL          time.Duration // 0 keeps entries until evicted
}

// DefaultMaxSize is 2000 weight units, about two million cells for meshes
const DefaultMaxSize = 2000

// DefaultConfig returns the default bounds
func DefaultConfig() Config {
	return Config{MaxSize: DefaultMaxSize, ItemsToPrune: 8}
}

// Memo is a bounded, concurrency-safe memo table for values of type T.
// Cached values are shared between callers and must be treated as read-only.
type Memo[T any] struct {
	name     string
	cache    *ccache.Cache[T]
	inflight singleflight.Group
	ttl      time.Duration
	maxSize  int64
	dropped  atomic.Int64
}

// Stats reports cache usage
type Stats struct {
	Name    string `json:"name"`
	Items   int    `json:"items"`
	Size    int64  `json:"size"`
	MaxSize int64  `json:"max_size"`
	Dropped int64  `json:"dropped"`
}

// New creates a Memo
func New[T any](name string, cfg Config) *Memo[T] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultConfig().MaxSize
	}
	if cfg.ItemsToPrune == 0 {
		cfg.ItemsToPrune = 1
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		// ccache requires a duration; a century is effectively "until evicted".
		ttl = 100 * 365 * 24 * time.Hour
	}
	return &Memo[T]{
		name:    name,
		cache:   ccache.New(ccache.Configure[T]().MaxSize(cfg.MaxSize).ItemsToPrune(cfg.ItemsToPrune)),
		ttl:     ttl,
		maxSize: cfg.MaxSize,
	}
}

// Key hashes the given parts into a stable cache key
func Key(parts ...any) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%#v\x00", p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached value for key, computing it with fill on a miss.
// Concurrent misses for the same key share one fill call. The boolean
// reports whether the value came from the cache.
func (m *Memo[T]) Get(key string, fill func() (T, error)) (T, bool, error) {
	if item := m.cache.Get(key); item != nil && !item.Expired() {
		return item.Value(), true, nil
	}

	v, err, _ := m.inflight.Do(key, func() (any, error) {
		if item := m.cache.Get(key); item != nil && !item.Expired() {
			return item.Value(), nil
		}
		value, err := fill()
		if err != nil {
			return nil, err
		}
		m.cache.Set(key, value, m.ttl)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v.(T), false, nil
}

// Delete drops one entry
func (m *Memo[T]) Delete(key string) bool {
	return m.cache.Delete(key)
}

// Clear drops every entry
func (m *Memo[T]) Clear() {
	m.cache.Clear()
}

// Stats returns the current item count and weight, and the number of
// evictions since the Memo was created. ccache resets its own counter on
// every read, so the total is kept here.
func (m *Memo[T]) Stats() Stats {
	dropped := m.dropped.Add(int64(m.cache.GetDropped()))
	return Stats{
		Name:    m.name,
		Items:   m.cache.ItemCount(),
		Size:    m.cache.GetSize(),
		MaxSize: m.maxSize,
		Dropped: dropped,
	}
}

// Sync waits for pending promotions and evictions to be applied
func (m *Memo[T]) Sync() {
	m.cache.SyncUpdates()
}

// Stop terminates the cache's background worker
func (m *Memo[T]) Stop() {
	m.cache.Stop()
}
