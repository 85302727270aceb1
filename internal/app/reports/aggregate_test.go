package reports

import (
	"testing"

	"github.com/ironhouse-gym/gym-admin/internal/domain"
)

var d = domain.MustDate

func TestTotalRevenue(t *testing.T) {
	t.Parallel()

	got := TotalRevenue([]domain.Payment{{ID: 1, Amount: 800}, {ID: 2, Amount: 300}})
	if got != 1100 {
		t.Fatalf("TotalRevenue()=%v, want 1100", got)
	}
	if got := TotalRevenue(nil); got != 0 {
		t.Fatalf("TotalRevenue(nil)=%v, want 0", got)
	}
}

func TestOldestMember(t *testing.T) {
	t.Parallel()

	members := []domain.Member{
		{ID: 1, DateOfBirth: d("1990-05-15")},
		{ID: 2, DateOfBirth: d("1985-08-22")},
		{ID: 3, DateOfBirth: d("2000-01-10")},
	}
	got, ok := OldestMember(members)
	if !ok || got.ID != 2 {
		t.Fatalf("OldestMember()=%+v ok=%v, want member 2", got, ok)
	}
	if members[0].ID != 1 {
		t.Fatalf("OldestMember reordered its input")
	}

	if _, ok := OldestMember(nil); ok {
		t.Fatalf("OldestMember(nil) ok=true, want false")
	}
}

func TestOldestMember_TieKeepsCollectionOrder(t *testing.T) {
	t.Parallel()

	members := []domain.Member{
		{ID: 7, DateOfBirth: d("1980-01-01")},
		{ID: 3, DateOfBirth: d("1970-06-06")},
		{ID: 5, DateOfBirth: d("1970-06-06")},
	}
	if got, _ := OldestMember(members); got.ID != 3 {
		t.Fatalf("OldestMember().ID=%d, want 3", got.ID)
	}
}

func TestMostPopularClass(t *testing.T) {
	t.Parallel()

	classes := []domain.Class{{ID: 1, Name: "Morning Boxing"}, {ID: 2, Name: "Evening Yoga"}}
	enrollments := []domain.Enrollment{
		{ID: 1, MemberID: 1, ClassID: 1},
		{ID: 2, MemberID: 2, ClassID: 1},
	}
	got, ok := MostPopularClass(enrollments, classes)
	if !ok || got.Class.ID != 1 || got.Count != 2 {
		t.Fatalf("MostPopularClass()=%+v ok=%v, want class 1 count 2", got, ok)
	}

	if _, ok := MostPopularClass(nil, classes); ok {
		t.Fatalf("MostPopularClass(no enrollments) ok=true, want false")
	}
}

func TestMostPopularClass_TieGoesToFirstSeen(t *testing.T) {
	t.Parallel()

	classes := []domain.Class{{ID: 1}, {ID: 2}, {ID: 3}}
	enrollments := []domain.Enrollment{
		{ClassID: 3}, {ClassID: 2}, {ClassID: 2}, {ClassID: 3}, {ClassID: 1},
	}
	got, _ := MostPopularClass(enrollments, classes)
	if got.Class.ID != 3 || got.Count != 2 {
		t.Fatalf("MostPopularClass()=%+v, want class 3 count 2", got)
	}
}

func TestMostPopularClass_WinnerMissing(t *testing.T) {
	t.Parallel()

	enrollments := []domain.Enrollment{{ClassID: 9}, {ClassID: 9}, {ClassID: 1}}
	if got, ok := MostPopularClass(enrollments, []domain.Class{{ID: 1}}); ok {
		t.Fatalf("MostPopularClass()=%+v ok=true, want absent", got)
	}
}

func TestMembershipDistribution(t *testing.T) {
	t.Parallel()

	memberships := []domain.Membership{{ID: 1, Type: "Silver"}, {ID: 2, Type: "Gold"}}
	members := []domain.Member{
		{ID: 1, MembershipID: 2},
		{ID: 2, MembershipID: 1},
		{ID: 3, MembershipID: 2},
		{ID: 4, MembershipID: 99},
	}
	got := MembershipDistribution(members, memberships)
	want := []LabelCount{{"Gold", 2}, {"Silver", 1}, {"Unknown", 1}}
	if len(got) != len(want) {
		t.Fatalf("MembershipDistribution()=%+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MembershipDistribution()[%d]=%+v, want %+v", i, got[i], want[i])
		}
	}

	m := DistributionMap(got)
	if m["Gold"] != 2 || m["Unknown"] != 1 || len(m) != 3 {
		t.Fatalf("DistributionMap()=%v", m)
	}
}

func TestTrainerWorkload(t *testing.T) {
	t.Parallel()

	trainers := []domain.Trainer{
		{ID: 2, FirstName: "Sarah", LastName: "Connor"},
		{ID: 1, FirstName: "Mike", LastName: "Tyson"},
		{ID: 3, FirstName: "Idle", LastName: "Coach"},
	}
	classes := []domain.Class{{ID: 1, TrainerID: 1}, {ID: 2, TrainerID: 2}, {ID: 3, TrainerID: 1}}

	got := TrainerWorkload(trainers, classes)
	if len(got) != 3 {
		t.Fatalf("TrainerWorkload() len=%d, want 3", len(got))
	}
	if got[0].Name != "Sarah Connor" || got[0].ClassCount != 1 ||
		got[1].Name != "Mike Tyson" || got[1].ClassCount != 2 ||
		got[2].ClassCount != 0 {
		t.Fatalf("TrainerWorkload()=%+v", got)
	}
}

func TestInactiveMembers(t *testing.T) {
	t.Parallel()

	members := []domain.Member{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	enrollments := []domain.Enrollment{{MemberID: 2}, {MemberID: 4}, {MemberID: 2}}

	got := InactiveMembers(members, enrollments)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("InactiveMembers()=%+v, want members 1 and 3", got)
	}
	if got := InactiveMembers(nil, nil); got == nil || len(got) != 0 {
		t.Fatalf("InactiveMembers(nil)=%#v, want empty slice", got)
	}
}

func TestMemberLifetimeValue(t *testing.T) {
	t.Parallel()

	member := domain.Member{ID: 1, FirstName: "John", LastName: "Doe"}
	payments := []domain.Payment{
		{ID: 1, MemberID: 1, Amount: 800, PaymentDate: d("2025-11-20")},
		{ID: 2, MemberID: 2, Amount: 300, PaymentDate: d("2025-11-21")},
	}
	got := MemberLifetimeValue(member, payments)
	if got.MemberName != "John Doe" || got.TotalPaid != 800 || got.PaymentCount != 1 {
		t.Fatalf("MemberLifetimeValue()=%+v", got)
	}
	if got.LastPaymentDate == nil || domain.ISODate(*got.LastPaymentDate) != "2025-11-20" {
		t.Fatalf("LastPaymentDate=%v, want 2025-11-20", got.LastPaymentDate)
	}

	none := MemberLifetimeValue(domain.Member{ID: 3}, payments)
	if none.TotalPaid != 0 || none.PaymentCount != 0 || none.LastPaymentDate != nil {
		t.Fatalf("MemberLifetimeValue(no payments)=%+v", none)
	}
}

func TestMemberLifetimeValue_LatestDateWins(t *testing.T) {
	t.Parallel()

	payments := []domain.Payment{
		{ID: 1, MemberID: 1, Amount: 10, PaymentDate: d("2025-01-05")},
		{ID: 2, MemberID: 1, Amount: 20, PaymentDate: d("2025-03-01")},
		{ID: 3, MemberID: 1, Amount: 30, PaymentDate: d("2025-02-14")},
	}
	got := MemberLifetimeValue(domain.Member{ID: 1}, payments)
	if got.TotalPaid != 60 || got.PaymentCount != 3 || domain.ISODate(*got.LastPaymentDate) != "2025-03-01" {
		t.Fatalf("MemberLifetimeValue()=%+v", got)
	}
	if payments[0].ID != 1 || payments[1].ID != 2 {
		t.Fatalf("MemberLifetimeValue reordered its input")
	}
}

func TestRecentActivity(t *testing.T) {
	t.Parallel()

	members := []domain.Member{{ID: 1, FirstName: "John", LastName: "Doe"}, {ID: 2, FirstName: "Jane", LastName: "Smith"}}
	classes := []domain.Class{{ID: 1, Name: "Morning Boxing"}}
	enrollments := []domain.Enrollment{
		{ID: 1, MemberID: 1, ClassID: 1, EnrollmentDate: d("2025-12-01")},
		{ID: 2, MemberID: 2, ClassID: 7, EnrollmentDate: d("2025-12-02")},
	}
	payments := []domain.Payment{
		{ID: 1, MemberID: 1, Amount: 800, PaymentDate: d("2025-11-20")},
		{ID: 2, MemberID: 9, Amount: 300.5, PaymentDate: d("2025-11-21")},
	}

	got := RecentActivity(members, classes, enrollments, payments)
	want := []Activity{
		{Type: ActivityPayment, Date: d("2025-11-21"), Text: "Unknown Member paid $300.5"},
		{Type: ActivityPayment, Date: d("2025-11-20"), Text: "John Doe paid $800"},
		{Type: ActivityEnrollment, Date: d("2025-12-02"), Text: "Jane Smith enrolled in Class"},
		{Type: ActivityEnrollment, Date: d("2025-12-01"), Text: "John Doe enrolled in Morning Boxing"},
	}
	if len(got) != len(want) {
		t.Fatalf("RecentActivity() len=%d, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Type != want[i].Type || got[i].Text != want[i].Text || !got[i].Date.Equal(want[i].Date.Time) {
			t.Fatalf("RecentActivity()[%d]=%+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRecentActivity_CapsAtFivePaymentsFirst(t *testing.T) {
	t.Parallel()

	var payments []domain.Payment
	for i := 1; i <= 6; i++ {
		payments = append(payments, domain.Payment{ID: domain.PaymentID(i), MemberID: 1, Amount: float64(i), PaymentDate: d("2025-10-01")})
	}
	enrollments := []domain.Enrollment{{ID: 1, MemberID: 1, ClassID: 1, EnrollmentDate: d("2026-01-01")}}

	got := RecentActivity(nil, nil, enrollments, payments)
	if len(got) != 5 {
		t.Fatalf("RecentActivity() len=%d, want 5", len(got))
	}
	// Same date: higher ids first.
	if got[0].Text != "Unknown Member paid $6" || got[4].Text != "Unknown Member paid $2" {
		t.Fatalf("RecentActivity()=%+v", got)
	}
	for _, a := range got {
		if a.Type != ActivityPayment {
			t.Fatalf("RecentActivity() contains %s, want only payments", a.Type)
		}
	}
}

func TestDashboardStatsOf(t *testing.T) {
	t.Parallel()

	got := DashboardStatsOf(
		[]domain.Member{{ID: 1}, {ID: 2}, {ID: 3}},
		[]domain.Class{{ID: 1}, {ID: 2}},
		[]domain.Payment{{Amount: 800}, {Amount: 300}},
	)
	if got != (DashboardStats{TotalMembers: 3, ActiveClasses: 2, Revenue: 1100}) {
		t.Fatalf("DashboardStatsOf()=%+v", got)
	}
}
