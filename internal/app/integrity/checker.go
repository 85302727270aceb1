// Package integrity holds the pre-delete referential checks between entity kinds.
//
// Checks only read; they never cascade. Callers run them inside the same gymstore.Store.Update
// closure as the delete they guard so nothing can change in between.
package integrity

import (
	"fmt"

	"github.com/ironhouse-gym/gym-admin/internal/domain"
	"github.com/ironhouse-gym/gym-admin/internal/ports/out/gymstore"
)

// Violation reports a delete refused because dependent records still reference the target.
type Violation struct {
	Kind   domain.Kind
	ID     int
	Reason string
}

func (v *Violation) Error() string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%s %d: %s", v.Kind, v.ID, v.Reason)
}

// User-facing refusal reasons.
const (
	ReasonMembershipInUse = "Cannot delete membership assigned to members."
	ReasonTrainerInUse    = "Cannot delete trainer assigned to classes."
	ReasonClassInUse      = "Cannot delete class with active enrollments."
	ReasonMemberInUse     = "Cannot delete member with associated enrollments or payments."
)

// CanDeleteMembership is false while any member holds the membership.
func CanDeleteMembership(tx gymstore.Tx, id domain.MembershipID) bool {
	return !tx.Members().Any(func(m domain.Member) bool { return m.MembershipID == id })
}

// CanDeleteTrainer is false while any class is led by the trainer.
func CanDeleteTrainer(tx gymstore.Tx, id domain.TrainerID) bool {
	return !tx.Classes().Any(func(c domain.Class) bool { return c.TrainerID == id })
}

// CanDeleteClass is false while any enrollment points at the class.
func CanDeleteClass(tx gymstore.Tx, id domain.ClassID) bool {
	return !tx.Enrollments().Any(func(e domain.Enrollment) bool { return e.ClassID == id })
}

// CanDeleteMember is false while the member has any enrollment or payment.
func CanDeleteMember(tx gymstore.Tx, id domain.MemberID) bool {
	if tx.Enrollments().Any(func(e domain.Enrollment) bool { return e.MemberID == id }) {
		return false
	}
	return !tx.Payments().Any(func(p domain.Payment) bool { return p.MemberID == id })
}

// CheckDelete returns a *Violation when deleting the record of the given kind would orphan
// dependents. Enrollments and payments have no dependents and always pass.
func CheckDelete(tx gymstore.Tx, kind domain.Kind, id int) error {
	var ok bool
	var reason string
	switch kind {
	case domain.KindMembership:
		ok, reason = CanDeleteMembership(tx, domain.MembershipID(id)), ReasonMembershipInUse
	case domain.KindTrainer:
		ok, reason = CanDeleteTrainer(tx, domain.TrainerID(id)), ReasonTrainerInUse
	case domain.KindClass:
		ok, reason = CanDeleteClass(tx, domain.ClassID(id)), ReasonClassInUse
	case domain.KindMember:
		ok, reason = CanDeleteMember(tx, domain.MemberID(id)), ReasonMemberInUse
	case domain.KindEnrollment, domain.KindPayment:
		return nil
	default:
		return fmt.Errorf("integrity: unknown entity kind %q", kind)
	}
	if ok {
		return nil
	}
	return &Violation{Kind: kind, ID: id, Reason: reason}
}
