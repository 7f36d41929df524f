package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Cache remembers the schema built from the last document it saw. A document
// with the same digest reuses it; every refreshEveryN calls the schema is
// rebuilt regardless.
type Cache struct {
	mu            sync.RWMutex
	current       *Schema
	digest        string
	cycleCount    int
	refreshEveryN int
}

func NewCache(refreshEveryN int) *Cache {
	return &Cache{
		refreshEveryN: refreshEveryN,
	}
}

// Get returns the schema for doc and whether it had to be rebuilt.
func (c *Cache) Get(doc string, build func(string) (Schema, error)) (Schema, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cycleCount++
	digest := Digest(doc)

	if c.current != nil && digest == c.digest && c.cycleCount < c.refreshEveryN {
		return *c.current, false, nil
	}

	s, err := build(doc)
	if err != nil {
		return Schema{}, false, err
	}
	c.current = &s
	c.digest = digest
	c.cycleCount = 0

	return s, true, nil
}

func (c *Cache) Current() *Schema {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func Digest(doc string) string {
	sum := sha256.Sum256([]byte(doc))
	return hex.EncodeToString(sum[:])
}
