package archon

import "fmt"

// Cache is a small fixed-capacity keyed cache: items are registered once
// under a string key and afterward looked up by dense integer index,
// adapted from the teacher library's SimpleCache. Registry uses one to
// back its component table.
type Cache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}

// NewCache creates a new Cache with the given maximum capacity.
func NewCache[T any](capacity int) *Cache[T] {
	return &Cache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: capacity,
	}
}

// GetIndex returns the dense index item key was registered under.
func (c *Cache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

// GetItem returns a pointer to the item at index, for in-place mutation.
func (c *Cache[T]) GetItem(index int) *T {
	return &c.items[index]
}

// Register stores item under key and returns its dense index. Re-
// registering an existing key is the caller's responsibility to avoid;
// Register itself always appends.
func (c *Cache[T]) Register(key string, item T) (int, error) {
	if len(c.itemIndices) >= c.maxCapacity {
		return -1, fmt.Errorf("cache at maximum capacity (%d)", c.maxCapacity)
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return idx, nil
}

// Len reports how many items have been registered.
func (c *Cache[T]) Len() int { return len(c.items) }
