package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// NewLRU creates a fixed size cache, onEvict is called for entries pushed out or deleted
func NewLRU(size int, onEvict func(key, value interface{})) (*LRU, error) {
	c, err := lru.NewWithEvict(size, onEvict)
	if err != nil {
		return nil, fmt.Errorf("lru new instance of lru cache: %w", err)
	}

	return &LRU{cache: c}, nil
}

var _ Cache = (*LRU)(nil)

type LRU struct {
	cache *lru.Cache
}

func (c *LRU) Get(key interface{}) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *LRU) Add(key, value interface{}) {
	c.cache.Add(key, value)
}

func (c *LRU) Keys() []interface{} {
	return c.cache.Keys()
}

func (c *LRU) Delete(key interface{}) {
	c.cache.Remove(key)
}

func (c *LRU) Len() int {
	return c.cache.Len()
}
