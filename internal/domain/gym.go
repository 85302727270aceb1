package domain

// Membership is a purchasable membership plan.
type Membership struct {
	ID MembershipID
	// Type is the plan's display label (e.g. "Gold").
	Type     string
	Duration int // days
	Price    float64
}

type Member struct {
	ID               MemberID
	FirstName        string
	LastName         string
	Gender           string
	DateOfBirth      Date
	RegistrationDate Date
	MembershipID     MembershipID
	Phone            string
	Email            string
}

// FullName is "First Last", the form used throughout reports and activity text.
func (m Member) FullName() string { return m.FirstName + " " + m.LastName }

type Trainer struct {
	ID             TrainerID
	FirstName      string
	LastName       string
	Specialization string
	Phone          string
	Email          string
}

func (t Trainer) FullName() string { return t.FirstName + " " + t.LastName }

// Class is a scheduled group session led by a single trainer.
type Class struct {
	ID        ClassID
	Name      string
	Schedule  Date
	Capacity  int
	TrainerID TrainerID
}

// Enrollment records a member's place in a class. (MemberID, ClassID) is unique.
type Enrollment struct {
	ID             EnrollmentID
	MemberID       MemberID
	ClassID        ClassID
	EnrollmentDate Date
}

type Payment struct {
	ID          PaymentID
	MemberID    MemberID
	Amount      float64
	PaymentDate Date
	Method      string
}

// Records expose their integer key so a single generic collection can hold any kind.

func (m Membership) RecordID() int { return int(m.ID) }
func (m Membership) WithRecordID(id int) Membership { m.ID = MembershipID(id); return m }
func (m Member) RecordID() int { return int(m.ID) }
func (m Member) WithRecordID(id int) Member { m.ID = MemberID(id); return m }
func (t Trainer) RecordID() int { return int(t.ID) }
func (t Trainer) WithRecordID(id int) Trainer { t.ID = TrainerID(id); return t }
func (c Class) RecordID() int { return int(c.ID) }
func (c Class) WithRecordID(id int) Class { c.ID = ClassID(id); return c }
func (e Enrollment) RecordID() int { return int(e.ID) }
func (e Enrollment) WithRecordID(id int) Enrollment { e.ID = EnrollmentID(id); return e }
func (p Payment) RecordID() int { return int(p.ID) }
func (p Payment) WithRecordID(id int) Payment { p.ID = PaymentID(id); return p }
