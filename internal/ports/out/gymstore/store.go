package gymstore

import (
	"context"

	"github.com/ironhouse-gym/gym-admin/internal/domain"
)

// Record is any entity held by a Collection.
type Record[T any] interface {
	RecordID() int
	WithRecordID(id int) T
}

// Collection is an ordered set of records of one entity kind.
//
// All reads are linear scans in insertion order; callers rely on that order for stable
// report tie-breaking. Records are passed by value, so mutating a returned record never
// changes stored state.
type Collection[T Record[T]] interface {
	// NextID returns max(existing ids)+1, or 1 when the collection is empty. It is
	// recomputed on every call, so deleting the highest-id record makes its id available again.
	NextID() int

	// Insert assigns rec an id from NextID, appends it, and returns the stored record.
	Insert(rec T) T

	// Replace overwrites every field except the id of the record with rec's id.
	// ErrNotFound is returned (and nothing changes) when no such record exists.
	Replace(rec T) error

	// Remove deletes the record with the given id and reports whether one was removed.
	Remove(id int) bool

	Get(id int) (T, bool)
	All() []T
	Find(pred func(T) bool) []T
	Any(pred func(T) bool) bool
	Len() int
}

// Tx is a consistent view over all six collections.
// It is only valid inside the closure passed to Store.View or Store.Update.
type Tx interface {
	Memberships() Collection[domain.Membership]
	Members() Collection[domain.Member]
	Trainers() Collection[domain.Trainer]
	Classes() Collection[domain.Class]
	Enrollments() Collection[domain.Enrollment]
	Payments() Collection[domain.Payment]
}

// Store owns the entity collections.
//
// View runs fn with shared read access; fn must not mutate. Update runs fn with exclusive
// access; if fn returns an error every collection is restored to its state before the call.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
}
