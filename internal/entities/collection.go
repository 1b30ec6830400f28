package entities

import (
	"context"
	"fmt"
)

// Loader fetches the children of the word a collection belongs to.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Collection is the parent-side view of a one-to-many association. The
// children's foreign keys are authoritative; a collection only caches the
// result of asking the store for them.
//
// A collection is either unresolved (nothing fetched yet) or resolved. A
// collection handed out by a repository is bound to a Loader, so resolving
// it later can still fail if the store has gone away in the meantime.
type Collection[T any] struct {
	items    []T
	resolved bool
	loader   Loader[T]
}

// ResolvedCollection returns a collection that already holds items.
func ResolvedCollection[T any](items []T) Collection[T] {
	if items == nil {
		items = []T{}
	}
	return Collection[T]{items: items, resolved: true}
}

// BoundCollection returns an unresolved collection that will call load on
// first access.
func BoundCollection[T any](load Loader[T]) Collection[T] {
	return Collection[T]{loader: load}
}

// Items returns the cached children and whether the collection is resolved.
// It never touches the store.
func (c *Collection[T]) Items() ([]T, bool) {
	return c.items, c.resolved
}

func (c *Collection[T]) IsResolved() bool {
	return c.resolved
}

// Load resolves the collection on first call and returns the cached result
// afterwards. A failed load leaves the collection unresolved.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	if c.resolved {
		return c.items, nil
	}
	if c.loader == nil {
		return nil, fmt.Errorf("%w: %w", ErrDataAccess, ErrDetachedCollection)
	}
	items, err := c.loader(ctx)
	if err != nil {
		return nil, err
	}
	c.Set(items)
	return c.items, nil
}

// Set replaces the cached children and marks the collection resolved.
func (c *Collection[T]) Set(items []T) {
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.resolved = true
}

// Reset drops the cached children so the next Load hits the store again.
func (c *Collection[T]) Reset() {
	c.items = nil
	c.resolved = false
}

func (c *Collection[T]) add(item T) {
	if c.resolved {
		c.items = append(c.items, item)
	}
}
