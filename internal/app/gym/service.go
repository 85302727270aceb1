package gym

import (
	"context"
	"errors"
	"time"

	"github.com/ironhouse-gym/gym-admin/internal/app/integrity"
	"github.com/ironhouse-gym/gym-admin/internal/domain"
	clockport "github.com/ironhouse-gym/gym-admin/internal/ports/out/clock"
	"github.com/ironhouse-gym/gym-admin/internal/ports/out/gymstore"
)

type Service struct {
	store gymstore.Store
	clk   clockport.Clock

	// Location decides which calendar day "today" is for defaulted dates.
	Location *time.Location
}

func NewService(store gymstore.Store, clk clockport.Clock) *Service {
	return &Service{
		store:    store,
		clk:      clk,
		Location: time.Local,
	}
}

// Today is the current calendar date in s.Location.
func (s *Service) Today() domain.Date {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return domain.DateOf(s.clk.Now().In(loc))
}

// Catalog is every collection read under one consistent view.
type Catalog struct {
	Memberships []domain.Membership
	Members     []domain.Member
	Trainers    []domain.Trainer
	Classes     []domain.Class
	Enrollments []domain.Enrollment
	Payments    []domain.Payment
}

func (s *Service) Catalog(ctx context.Context) (Catalog, error) {
	var c Catalog
	err := s.store.View(ctx, func(tx gymstore.Tx) error {
		c = Catalog{
			Memberships: tx.Memberships().All(),
			Members:     tx.Members().All(),
			Trainers:    tx.Trainers().All(),
			Classes:     tx.Classes().All(),
			Enrollments: tx.Enrollments().All(),
			Payments:    tx.Payments().All(),
		}
		return nil
	})
	return c, err
}

// Memberships

func (s *Service) GetMembership(ctx context.Context, id domain.MembershipID) (domain.Membership, error) {
	return memberships.get(ctx, s.store, int(id))
}

func (s *Service) CreateMembership(ctx context.Context, m domain.Membership) (domain.Membership, error) {
	return memberships.create(ctx, s.store, m)
}

func (s *Service) UpdateMembership(ctx context.Context, m domain.Membership) (domain.Membership, error) {
	return memberships.update(ctx, s.store, m)
}

func (s *Service) DeleteMembership(ctx context.Context, id domain.MembershipID) error {
	return memberships.remove(ctx, s.store, int(id))
}

// Members

func (s *Service) GetMember(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	return members.get(ctx, s.store, int(id))
}

func (s *Service) CreateMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	if m.RegistrationDate.IsZero() {
		m.RegistrationDate = s.Today()
	}
	return members.create(ctx, s.store, m)
}

func (s *Service) UpdateMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	return members.update(ctx, s.store, m)
}

func (s *Service) DeleteMember(ctx context.Context, id domain.MemberID) error {
	return members.remove(ctx, s.store, int(id))
}

// Trainers

func (s *Service) GetTrainer(ctx context.Context, id domain.TrainerID) (domain.Trainer, error) {
	return trainers.get(ctx, s.store, int(id))
}

func (s *Service) CreateTrainer(ctx context.Context, t domain.Trainer) (domain.Trainer, error) {
	return trainers.create(ctx, s.store, t)
}

func (s *Service) UpdateTrainer(ctx context.Context, t domain.Trainer) (domain.Trainer, error) {
	return trainers.update(ctx, s.store, t)
}

func (s *Service) DeleteTrainer(ctx context.Context, id domain.TrainerID) error {
	return trainers.remove(ctx, s.store, int(id))
}

// Classes

func (s *Service) GetClass(ctx context.Context, id domain.ClassID) (domain.Class, error) {
	return classes.get(ctx, s.store, int(id))
}

func (s *Service) CreateClass(ctx context.Context, c domain.Class) (domain.Class, error) {
	return classes.create(ctx, s.store, c)
}

func (s *Service) UpdateClass(ctx context.Context, c domain.Class) (domain.Class, error) {
	return classes.update(ctx, s.store, c)
}

func (s *Service) DeleteClass(ctx context.Context, id domain.ClassID) error {
	return classes.remove(ctx, s.store, int(id))
}

// Enrollments

func (s *Service) GetEnrollment(ctx context.Context, id domain.EnrollmentID) (domain.Enrollment, error) {
	return enrollments.get(ctx, s.store, int(id))
}

func (s *Service) CreateEnrollment(ctx context.Context, e domain.Enrollment) (domain.Enrollment, error) {
	if e.EnrollmentDate.IsZero() {
		e.EnrollmentDate = s.Today()
	}
	return enrollments.create(ctx, s.store, e)
}

func (s *Service) UpdateEnrollment(ctx context.Context, e domain.Enrollment) (domain.Enrollment, error) {
	return enrollments.update(ctx, s.store, e)
}

func (s *Service) DeleteEnrollment(ctx context.Context, id domain.EnrollmentID) error {
	return enrollments.remove(ctx, s.store, int(id))
}

// Payments

func (s *Service) GetPayment(ctx context.Context, id domain.PaymentID) (domain.Payment, error) {
	return payments.get(ctx, s.store, int(id))
}

func (s *Service) CreatePayment(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	if p.PaymentDate.IsZero() {
		p.PaymentDate = s.Today()
	}
	return payments.create(ctx, s.store, p)
}

func (s *Service) UpdatePayment(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	return payments.update(ctx, s.store, p)
}

func (s *Service) DeletePayment(ctx context.Context, id domain.PaymentID) error {
	return payments.remove(ctx, s.store, int(id))
}

// entity binds one kind's collection to its reference rules so create/update/delete are
// written once for all six kinds.
type entity[T gymstore.Record[T]] struct {
	kind     domain.Kind
	coll     func(gymstore.Tx) gymstore.Collection[T]
	validate func(tx gymstore.Tx, rec T) error
}

var (
	memberships = entity[domain.Membership]{kind: domain.KindMembership, coll: gymstore.Tx.Memberships}
	members     = entity[domain.Member]{kind: domain.KindMember, coll: gymstore.Tx.Members, validate: validateMember}
	trainers    = entity[domain.Trainer]{kind: domain.KindTrainer, coll: gymstore.Tx.Trainers}
	classes     = entity[domain.Class]{kind: domain.KindClass, coll: gymstore.Tx.Classes, validate: validateClass}
	enrollments = entity[domain.Enrollment]{kind: domain.KindEnrollment, coll: gymstore.Tx.Enrollments, validate: validateEnrollment}
	payments    = entity[domain.Payment]{kind: domain.KindPayment, coll: gymstore.Tx.Payments, validate: validatePayment}
)

func (e entity[T]) get(ctx context.Context, store gymstore.Store, id int) (T, error) {
	var out T
	err := store.View(ctx, func(tx gymstore.Tx) error {
		rec, ok := e.coll(tx).Get(id)
		if !ok {
			return notFound(e.kind, id)
		}
		out = rec
		return nil
	})
	return out, err
}

func (e entity[T]) create(ctx context.Context, store gymstore.Store, rec T) (T, error) {
	// Id 0 is never assigned, so validation can't mistake the new record for an existing one.
	rec = rec.WithRecordID(0)
	var out T
	err := store.Update(ctx, func(tx gymstore.Tx) error {
		if e.validate != nil {
			if err := e.validate(tx, rec); err != nil {
				return err
			}
		}
		out = e.coll(tx).Insert(rec)
		return nil
	})
	return out, err
}

// update replaces rec by id. A missing id is reported as NOT_FOUND before any reference is
// checked; nothing is mutated in either case.
func (e entity[T]) update(ctx context.Context, store gymstore.Store, rec T) (T, error) {
	var out T
	err := store.Update(ctx, func(tx gymstore.Tx) error {
		c := e.coll(tx)
		if _, ok := c.Get(rec.RecordID()); !ok {
			return notFound(e.kind, rec.RecordID())
		}
		if e.validate != nil {
			if err := e.validate(tx, rec); err != nil {
				return err
			}
		}
		if err := c.Replace(rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	return out, err
}

// remove deletes the record once the integrity checks pass. Deleting a missing id is a no-op.
func (e entity[T]) remove(ctx context.Context, store gymstore.Store, id int) error {
	return store.Update(ctx, func(tx gymstore.Tx) error {
		if err := integrity.CheckDelete(tx, e.kind, id); err != nil {
			v := (*integrity.Violation)(nil)
			if errors.As(err, &v) {
				return constraintViolation(v)
			}
			return err
		}
		e.coll(tx).Remove(id)
		return nil
	})
}

func validateMember(tx gymstore.Tx, m domain.Member) error {
	if _, ok := tx.Memberships().Get(int(m.MembershipID)); !ok {
		return invalidReference("membership_id", "Invalid Membership Selected")
	}
	return nil
}

func validateClass(tx gymstore.Tx, c domain.Class) error {
	if _, ok := tx.Trainers().Get(int(c.TrainerID)); !ok {
		return invalidReference("trainer_id", "Invalid Trainer Selected")
	}
	return nil
}

func validateEnrollment(tx gymstore.Tx, e domain.Enrollment) error {
	_, memberOK := tx.Members().Get(int(e.MemberID))
	_, classOK := tx.Classes().Get(int(e.ClassID))
	if !memberOK || !classOK {
		field := "member_id"
		if memberOK {
			field = "class_id"
		}
		return invalidReference(field, "Invalid Member or Class")
	}
	dup := tx.Enrollments().Any(func(x domain.Enrollment) bool {
		return x.ID != e.ID && x.MemberID == e.MemberID && x.ClassID == e.ClassID
	})
	if dup {
		return duplicateEnrollment(e.MemberID, e.ClassID)
	}
	return nil
}

func validatePayment(tx gymstore.Tx, p domain.Payment) error {
	if _, ok := tx.Members().Get(int(p.MemberID)); !ok {
		return invalidReference("member_id", "Invalid Member")
	}
	return nil
}
