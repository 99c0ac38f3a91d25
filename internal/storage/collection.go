package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Collection is a JSON array of T stored under a single key. Every mutation
// is a read-modify-write of the whole array, serialized inside this process;
// writers in other processes still race with last-write-wins.
type Collection[T any] struct {
	store Store
	key   string
	less  func(a, b T) bool
	mu    sync.Mutex
}

// NewCollection binds a collection to key. When less is non-nil every read
// is returned sorted by it.
func NewCollection[T any](store Store, key string, less func(a, b T) bool) *Collection[T] {
	return &Collection[T]{store: store, key: key, less: less}
}

func (c *Collection[T]) Key() string { return c.key }

// All returns every item, resorted.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.sort(items)
	return items, nil
}

// Find returns the first item (in read order) matching fn.
func (c *Collection[T]) Find(ctx context.Context, fn func(T) bool) (T, bool, error) {
	var zero T
	items, err := c.All(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, it := range items {
		if fn(it) {
			return it, true, nil
		}
	}
	return zero, false, nil
}

func (c *Collection[T]) Append(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	return c.save(ctx, append(items, item))
}

// Upsert replaces the first item matching fn in place, or appends item.
// It reports whether an existing item was replaced.
func (c *Collection[T]) Upsert(ctx context.Context, item T, fn func(T) bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range items {
		if fn(items[i]) {
			items[i] = item
			return true, c.save(ctx, items)
		}
	}
	return false, c.save(ctx, append(items, item))
}

// RemoveOne deletes the first item matching fn and leaves any other match.
func (c *Collection[T]) RemoveOne(ctx context.Context, fn func(T) bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range items {
		if fn(items[i]) {
			items = append(items[:i], items[i+1:]...)
			return true, c.save(ctx, items)
		}
	}
	return false, nil
}

// RemoveAll deletes every item matching fn and returns how many went.
func (c *Collection[T]) RemoveAll(ctx context.Context, fn func(T) bool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return 0, err
	}
	kept := items[:0]
	for _, it := range items {
		if !fn(it) {
			kept = append(kept, it)
		}
	}
	removed := len(items) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, c.save(ctx, kept)
}

// Replace overwrites the whole collection, stored in sorted order.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort(items)
	return c.save(ctx, items)
}

// Exists reports whether the key has ever been written.
func (c *Collection[T]) Exists(ctx context.Context) (bool, error) {
	_, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (c *Collection[T]) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Delete(ctx, c.key)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", c.key, err)
	}
	return c.store.Set(ctx, c.key, raw)
}

func (c *Collection[T]) sort(items []T) {
	if c.less == nil {
		return
	}
	sort.SliceStable(items, func(i, j int) bool { return c.less(items[i], items[j]) })
}
