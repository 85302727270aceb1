package gymstore

import (
	"context"
	"sync"

	"github.com/ironhouse-gym/gym-admin/internal/domain"
	"github.com/ironhouse-gym/gym-admin/internal/ports/out/gymstore"
)

// Snapshot is a plain copy of every collection, in collection order.
type Snapshot struct {
	Memberships []domain.Membership
	Members     []domain.Member
	Trainers    []domain.Trainer
	Classes     []domain.Class
	Enrollments []domain.Enrollment
	Payments    []domain.Payment
}

// Store is an in-memory implementation of gymstore.Store.
// It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	tx *tx
}

func NewStore() *Store {
	return &Store{tx: newTx(Snapshot{})}
}

// NewSeededStore returns a store loaded with SeedData.
func NewSeededStore() *Store {
	return &Store{tx: newTx(SeedData())}
}

// Load replaces all state with snap.
func (s *Store) Load(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tx = newTx(snap)
}

// Reset reloads the fixed sample data.
func (s *Store) Reset() { s.Load(SeedData()) }

// Export returns a copy of the current state.
func (s *Store) Export() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tx.snapshot()
}

// View hands fn a private copy of the current state, so nothing fn does is visible to others.
func (s *Store) View(ctx context.Context, fn func(tx gymstore.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	view := newTx(s.tx.snapshot())
	s.mu.RUnlock()
	return fn(view)
}

func (s *Store) Update(ctx context.Context, fn func(tx gymstore.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.tx.snapshot()
	if err := fn(s.tx); err != nil {
		s.tx = newTx(before)
		return err
	}
	return nil
}

type tx struct {
	memberships *collection[domain.Membership]
	members     *collection[domain.Member]
	trainers    *collection[domain.Trainer]
	classes     *collection[domain.Class]
	enrollments *collection[domain.Enrollment]
	payments    *collection[domain.Payment]
}

func newTx(snap Snapshot) *tx {
	return &tx{
		memberships: newCollection(snap.Memberships),
		members:     newCollection(snap.Members),
		trainers:    newCollection(snap.Trainers),
		classes:     newCollection(snap.Classes),
		enrollments: newCollection(snap.Enrollments),
		payments:    newCollection(snap.Payments),
	}
}

func (t *tx) snapshot() Snapshot {
	return Snapshot{
		Memberships: t.memberships.All(),
		Members:     t.members.All(),
		Trainers:    t.trainers.All(),
		Classes:     t.classes.All(),
		Enrollments: t.enrollments.All(),
		Payments:    t.payments.All(),
	}
}

func (t *tx) Memberships() gymstore.Collection[domain.Membership] { return t.memberships }
func (t *tx) Members() gymstore.Collection[domain.Member] { return t.members }
func (t *tx) Trainers() gymstore.Collection[domain.Trainer] { return t.trainers }
func (t *tx) Classes() gymstore.Collection[domain.Class] { return t.classes }
func (t *tx) Enrollments() gymstore.Collection[domain.Enrollment] { return t.enrollments }
func (t *tx) Payments() gymstore.Collection[domain.Payment] { return t.payments }
