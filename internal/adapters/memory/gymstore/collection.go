package gymstore

import (
	"slices"

	"github.com/ironhouse-gym/gym-admin/internal/ports/out/gymstore"
)

// collection is the slice-backed gymstore.Collection used for every entity kind.
// It does no locking of its own; Store serializes access.
type collection[T gymstore.Record[T]] struct {
	items []T
}

func newCollection[T gymstore.Record[T]](items []T) *collection[T] {
	return &collection[T]{items: slices.Clone(items)}
}

func (c *collection[T]) NextID() int {
	if len(c.items) == 0 {
		return 1
	}
	maxID := c.items[0].RecordID()
	for _, it := range c.items[1:] {
		if id := it.RecordID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func (c *collection[T]) Insert(rec T) T {
	rec = rec.WithRecordID(c.NextID())
	c.items = append(c.items, rec)
	return rec
}

func (c *collection[T]) Replace(rec T) error {
	i := c.index(rec.RecordID())
	if i < 0 {
		return gymstore.ErrNotFound
	}
	c.items[i] = rec
	return nil
}

func (c *collection[T]) Remove(id int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

func (c *collection[T]) Get(id int) (T, bool) {
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

func (c *collection[T]) All() []T {
	return slices.Clone(c.items)
}

func (c *collection[T]) Find(pred func(T) bool) []T {
	out := make([]T, 0)
	for _, it := range c.items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

func (c *collection[T]) Any(pred func(T) bool) bool {
	return slices.ContainsFunc(c.items, pred)
}

func (c *collection[T]) Len() int { return len(c.items) }

func (c *collection[T]) index(id int) int {
	return slices.IndexFunc(c.items, func(it T) bool { return it.RecordID() == id })
}
