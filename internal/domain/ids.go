package domain

// MembershipID identifies a membership plan.
type MembershipID int

// MemberID identifies a gym member.
type MemberID int

// TrainerID identifies a trainer.
type TrainerID int

// ClassID identifies a scheduled class.
type ClassID int

// EnrollmentID identifies a member's enrollment in a class.
type EnrollmentID int

// PaymentID identifies a recorded payment.
type PaymentID int

// Kind names one of the six entity collections.
type Kind string

const (
	KindMembership Kind = "membership"
	KindMember     Kind = "member"
	KindTrainer    Kind = "trainer"
	KindClass      Kind = "class"
	KindEnrollment Kind = "enrollment"
	KindPayment    Kind = "payment"
)

// Kinds lists every entity kind in dependency order (referenced kinds first).
var Kinds = []Kind{KindMembership, KindMember, KindTrainer, KindClass, KindEnrollment, KindPayment}
