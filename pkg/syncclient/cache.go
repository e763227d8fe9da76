// Package syncclient keeps a client-side view of tasks in step with the
// server and applies board moves optimistically.
package syncclient

import (
	"context"
	"fmt"
	"sync"
)

// Fetcher loads the value of a query from the server.
type Fetcher[T any] func(ctx context.Context) (T, error)

type entry[T any] struct {
	value   T
	loaded  bool
	fetch   Fetcher[T]
	subs    map[int]func(T)
	nextSub int
}

// QueryCache maps query keys to their last known value. Every write goes
// through the cache mutex and subscribers are told about each new value.
type QueryCache[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
}

// NewQueryCache returns an empty cache.
func NewQueryCache[T any]() *QueryCache[T] {
	return &QueryCache[T]{entries: make(map[string]*entry[T])}
}

func (c *QueryCache[T]) entry(key string) *entry[T] {
	e, ok := c.entries[key]
	if !ok {
		e = &entry[T]{subs: make(map[int]func(T))}
		c.entries[key] = e
	}
	return e
}

// Register sets the fetcher used to refresh key.
func (c *QueryCache[T]) Register(key string, fetch Fetcher[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry(key).fetch = fetch
}

// Get returns the cached value of key.
func (c *QueryCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !e.loaded {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set replaces the value of key and notifies its subscribers.
func (c *QueryCache[T]) Set(key string, v T) {
	c.Update(key, func(T) T { return v })
}

// Update replaces the value of key with fn of the current value while holding
// the cache lock, then notifies subscribers.
func (c *QueryCache[T]) Update(key string, fn func(T) T) {
	c.mu.Lock()
	e := c.entry(key)
	v := fn(e.value)
	e.value = v
	e.loaded = true
	subs := make([]func(T), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe calls fn with every new value of key. The returned function
// removes the subscription.
func (c *QueryCache[T]) Subscribe(key string, fn func(T)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(e.subs, id)
	}
}

// Fetch refreshes key from the server and stores the result.
func (c *QueryCache[T]) Fetch(ctx context.Context, key string) (T, error) {
	c.mu.Lock()
	var fetch Fetcher[T]
	if e, ok := c.entries[key]; ok {
		fetch = e.fetch
	}
	c.mu.Unlock()

	if fetch == nil {
		var zero T
		return zero, fmt.Errorf("no fetcher registered for %q", key)
	}
	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, v)
	return v, nil
}

// Invalidate refetches key when anyone subscribes to it. Otherwise the cached
// value is dropped and the next Fetch loads it.
func (c *QueryCache[T]) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	e, ok := c.entries[key]
	watched := ok && len(e.subs) > 0
	if ok && !watched {
		var zero T
		e.value, e.loaded = zero, false
	}
	c.mu.Unlock()

	if !watched {
		return nil
	}
	_, err := c.Fetch(ctx, key)
	return err
}
