// Package cache implements the collection-synchronization contract every
// mutating caller follows against a server-backed collection: snapshot,
// optimistic apply, bounded network call, rollback on failure, secondary
// invalidation on success, and an always-on settle step that schedules a
// background revalidation.
package cache

import "sync"

// Collection holds the client-side mirror of one server-backed collection.
// The server remains the source of truth; the mirror is advisory.
//
// A clone function is required so snapshots and reads are isolated from
// later in-place mutation. Rollback must restore the pre-mutation value
// exactly, not a value sharing slices with the optimistic one.
type Collection[T any] struct {
	mu    sync.Mutex
	value T
	stale bool
	clone func(T) T
}

func NewCollection[T any](initial T, clone func(T) T) *Collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Collection[T]{value: clone(initial), clone: clone}
}

// Get returns an isolated copy of the current cached value.
func (c *Collection[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clone(c.value)
}

// Stale reports whether the collection is waiting for a background
// revalidation.
func (c *Collection[T]) Stale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale
}

// MarkStale schedules a revalidation on the next natural refetch trigger.
// It never refetches by itself: a correct optimistic value must not be
// overwritten by a slower refetch racing it.
func (c *Collection[T]) MarkStale() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = true
}

// Revalidate is the natural refetch trigger (window refocus, reconnect).
// It fetches only when the collection is stale.
func (c *Collection[T]) Revalidate(fetch func() (T, error)) error {
	c.mu.Lock()
	if !c.stale {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	fresh, err := fetch()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = c.clone(fresh)
	c.stale = false
	return nil
}

func (c *Collection[T]) snapshot() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clone(c.value)
}

func (c *Collection[T]) apply(transform func(T) T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = transform(c.clone(c.value))
}

func (c *Collection[T]) restore(snapshot T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = snapshot
}

// CloneSlice is the clone function for slice-valued collections of value
// types.
func CloneSlice[E any](items []E) []E {
	if items == nil {
		return nil
	}
	return append([]E(nil), items...)
}
