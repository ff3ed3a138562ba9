package embedding

import "sync"

// Cache memoizes embeddings keyed by preprocessed text. It is unbounded,
// populated lazily, and lives for the lifetime of its Embedder; it is never
// persisted with an index. Callers that need bounded memory reset it by
// constructing a fresh Embedder.
//
// Concurrent use is safe. Two concurrent misses on the same key may both
// reach the model; that is harmless because encoding is idempotent and the
// last write wins.
type Cache struct {
	mu   sync.RWMutex
	vecs map[string][]float32
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{vecs: map[string][]float32{}}
}

// Get returns the embedding cached under key, if any.
func (c *Cache) Get(key string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.vecs[key]
	return vec, ok
}

// Put stores vec under key, replacing any previous value.
func (c *Cache) Put(key string, vec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vecs[key] = vec
}

// Len returns the number of cached embeddings.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vecs)
}
