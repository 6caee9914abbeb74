package dataset

import (
	"crypto/sha256"
	"sync"
)

// Key is the content-addressed identity of an upload.
type Key [sha256.Size]byte

// KeyOf hashes upload bytes into a cache key.
func KeyOf(data []byte) Key { return sha256.Sum256(data) }

// Cache memoizes Load results by content hash so repeated renders of the
// same upload never reparse. Tables are immutable, so sharing the cached
// pointer is safe.
type Cache struct {
	mu     sync.Mutex
	tables map[Key]*Table
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{tables: make(map[Key]*Table)}
}

// Load parses data through Load, caching by content hash. Parse failures are
// not cached.
func (c *Cache) Load(data []byte, name string) (*Table, error) {
	k := KeyOf(data)
	c.mu.Lock()
	t, ok := c.tables[k]
	c.mu.Unlock()
	if ok {
		return t, nil
	}
	t, err := Load(data, name)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.tables[k] = t
	c.mu.Unlock()
	return t, nil
}

// Len reports the number of cached tables.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tables)
}
