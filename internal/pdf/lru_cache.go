package pdf

import (
	"sync"
)

// lruCache is a thread-safe least recently used cache
type lruCache[V any] struct {
	mutex    sync.Mutex
	capacity int
	items    map[string]*cacheNode[V]
	head     *cacheNode[V] // Most recently used
	tail     *cacheNode[V] // Least recently used
	hits     int64
	misses   int64
}

// cacheNode is a node in the doubly-linked recency list
type cacheNode[V any] struct {
	key   string
	value V
	prev  *cacheNode[V]
	next  *cacheNode[V]
}

// newLRUCache creates a cache holding at most capacity entries
func newLRUCache[V any](capacity int) *lruCache[V] {
	if capacity <= 0 {
		capacity = DefaultFormCacheSize
	}

	c := &lruCache[V]{
		capacity: capacity,
		items:    make(map[string]*cacheNode[V]),
		head:     &cacheNode[V]{},
		tail:     &cacheNode[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key and marks it as recently used
func (c *lruCache[V]) Get(key string) (V, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if node, ok := c.items[key]; ok {
		c.moveToFront(node)
		c.hits++
		return node.value, true
	}

	c.misses++
	var zero V
	return zero, false
}

// Put adds or replaces the value for key, evicting the least recently used
// entry when full
func (c *lruCache[V]) Put(key string, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if node, ok := c.items[key]; ok {
		node.value = value
		c.moveToFront(node)
		return
	}

	node := &cacheNode[V]{key: key, value: value}
	c.addToFront(node)
	c.items[key] = node

	if len(c.items) > c.capacity {
		c.evictLRU()
	}
}

// Remove deletes key from the cache
func (c *lruCache[V]) Remove(key string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if node, ok := c.items[key]; ok {
		c.removeNode(node)
		delete(c.items, key)
		return true
	}
	return false
}

// Len returns the current number of entries
func (c *lruCache[V]) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.items)
}

// Stats returns cache statistics
func (c *lruCache[V]) Stats() CacheStats {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	total := c.hits + c.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(c.hits) / float64(total) * 100
	}

	return CacheStats{
		Hits:     c.hits,
		Misses:   c.misses,
		HitRate:  hitRate,
		Size:     len(c.items),
		Capacity: c.capacity,
	}
}

func (c *lruCache[V]) moveToFront(node *cacheNode[V]) {
	c.removeNode(node)
	c.addToFront(node)
}

func (c *lruCache[V]) addToFront(node *cacheNode[V]) {
	node.prev = c.head
	node.next = c.head.next
	c.head.next.prev = node
	c.head.next = node
}

func (c *lruCache[V]) removeNode(node *cacheNode[V]) {
	node.prev.next = node.next
	node.next.prev = node.prev
}

func (c *lruCache[V]) evictLRU() {
	lru := c.tail.prev
	if lru != c.head {
		c.removeNode(lru)
		delete(c.items, lru.key)
	}
}

// CacheStats provides statistics about cache performance
type CacheStats struct {
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	HitRate  float64 `json:"hit_rate_percent"`
	Size     int     `json:"current_size"`
	Capacity int     `json:"max_capacity"`
}
