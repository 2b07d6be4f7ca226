package router

import (
	"container/list"
	"sync"
	"time"
)

// boundedTTLCache is a thread-safe bounded LRU cache whose entries also
// expire after a fixed TTL. Expired entries are evicted lazily on access.
type boundedTTLCache[K comparable, V any] struct {
	mu      sync.Mutex
	cache   map[K]*list.Element
	lru     *list.List
	maxSize int
	ttl     time.Duration
	zeroVal V
}

type ttlEntry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

func newBoundedTTLCache[K comparable, V any](maxSize int, ttl time.Duration) *boundedTTLCache[K, V] {
	return &boundedTTLCache[K, V]{
		cache:   make(map[K]*list.Element, maxSize),
		lru:     list.New(),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Get retrieves an unexpired value and promotes it to most recently used.
func (c *boundedTTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.cache[key]
	if !ok {
		return c.zeroVal, false
	}
	entry := elem.Value.(*ttlEntry[K, V])
	if time.Now().After(entry.expiresAt) {
		c.lru.Remove(elem)
		delete(c.cache, key)
		return c.zeroVal, false
	}
	c.lru.MoveToFront(elem)
	return entry.value, true
}

// Set adds or refreshes a value, resetting its expiry. The least recently
// used entry is evicted when the cache is full.
func (c *boundedTTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)
	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		entry := elem.Value.(*ttlEntry[K, V])
		entry.value = value
		entry.expiresAt = expiresAt
		return
	}

	if c.lru.Len() >= c.maxSize {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*ttlEntry[K, V]).key)
		}
	}
	c.cache[key] = c.lru.PushFront(&ttlEntry[K, V]{key: key, value: value, expiresAt: expiresAt})
}

func (c *boundedTTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
