package services

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the value for one named source.
type FetchFunc[T any] func(ctx context.Context, name string) (T, error)

// Cache memoizes successfully loaded sources by name. Failed loads are not
// stored, so the next Get retries. Concurrent misses for one name share a
// single fetch.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
	// generation = epoch + gens[name]; both only grow, so any Invalidate or
	// Reset after a fetch started changes it.
	gens  map[string]uint64
	epoch uint64
	group singleflight.Group
	fetch FetchFunc[T]
}

func NewCache[T any](fetch FetchFunc[T]) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]T),
		gens:    make(map[string]uint64),
		fetch:   fetch,
	}
}

func (c *Cache[T]) generation(name string) uint64 {
	return c.epoch + c.gens[name]
}

// Get returns the cached value for name, loading it on first use. A load
// that was invalidated while in flight is returned to its callers but not
// stored.
func (c *Cache[T]) Get(ctx context.Context, name string) (T, error) {
	c.mu.RLock()
	value, ok := c.entries[name]
	c.mu.RUnlock()
	if ok {
		return value, nil
	}

	res, err, _ := c.group.Do(name, func() (any, error) {
		c.mu.Lock()
		cached, ok := c.entries[name]
		// Every loaded name is registered so Reset can forget its flight.
		if _, seen := c.gens[name]; !seen {
			c.gens[name] = 0
		}
		gen := c.generation(name)
		c.mu.Unlock()
		if ok {
			return cached, nil
		}

		loaded, err := c.fetch(ctx, name)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.generation(name) == gen {
			c.entries[name] = loaded
		}
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return res.(T), nil
}

// Invalidate drops the stored value for name and any load of it in flight.
func (c *Cache[T]) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.gens[name]++
	c.mu.Unlock()
	c.group.Forget(name)
}

// Reset drops every stored value and every load in flight.
func (c *Cache[T]) Reset() {
	c.mu.Lock()
	names := make([]string, 0, len(c.gens))
	for name := range c.gens {
		names = append(names, name)
	}
	c.entries = make(map[string]T)
	c.epoch++
	c.mu.Unlock()

	for _, name := range names {
		c.group.Forget(name)
	}
}
