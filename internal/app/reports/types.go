package reports

import "github.com/ironhouse-gym/gym-admin/internal/domain"

// PopularClass is the class with the most enrollments.
type PopularClass struct {
	Class domain.Class
	Count int
}

// LabelCount is one membership label and how many members hold it.
type LabelCount struct {
	Label string
	Count int
}

type TrainerLoad struct {
	TrainerID  domain.TrainerID
	Name       string
	ClassCount int
}

// Summary is the full reports page.
type Summary struct {
	OldestMember    *domain.Member
	PopularClass    *PopularClass
	TotalRevenue    float64
	Distribution    []LabelCount
	TrainerWorkload []TrainerLoad
	InactiveMembers []domain.Member

	// Members feeds the lifetime-value member picker.
	Members []domain.Member
}

// LifetimeValue is the per-member payment aggregate.
// LastPaymentDate is nil when the member has never paid.
type LifetimeValue struct {
	MemberID        domain.MemberID
	MemberName      string
	TotalPaid       float64
	PaymentCount    int
	LastPaymentDate *domain.Date
}

type DashboardStats struct {
	TotalMembers  int
	ActiveClasses int
	Revenue       float64
}

type ActivityType string

const (
	ActivityPayment    ActivityType = "Payment"
	ActivityEnrollment ActivityType = "Enrollment"
)

type Activity struct {
	Type ActivityType
	Date domain.Date
	Text string
}

type Dashboard struct {
	Stats          DashboardStats
	RecentActivity []Activity
}
