// Package reports computes read-only statistics over the gym's collections.
//
// The aggregate functions take plain slices and never mutate them; Service
// feeds them from a single consistent store view. Every date ordering uses a
// stable sort so that equal dates keep collection order.
package reports

import (
	"slices"
	"sort"
	"strconv"

	"github.com/ironhouse-gym/gym-admin/internal/domain"
)

const (
	unknownMembership = "Unknown"
	unknownMember     = "Unknown Member"
	unknownClass      = "Class"

	recentActivityLimit = 5
)

// OldestMember returns the member with the earliest date of birth. The first
// such member in collection order wins ties.
func OldestMember(members []domain.Member) (domain.Member, bool) {
	if len(members) == 0 {
		return domain.Member{}, false
	}
	sorted := slices.Clone(members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateOfBirth.Before(sorted[j].DateOfBirth.Time)
	})
	return sorted[0], true
}

// MostPopularClass groups enrollments by class in first-seen order and picks
// the largest group; earlier groups win ties. The result is absent when there
// are no enrollments or the winning class no longer exists.
func MostPopularClass(enrollments []domain.Enrollment, classes []domain.Class) (PopularClass, bool) {
	type group struct {
		id    domain.ClassID
		count int
	}
	var groups []group
	index := make(map[domain.ClassID]int)
	for _, e := range enrollments {
		i, ok := index[e.ClassID]
		if !ok {
			i = len(groups)
			index[e.ClassID] = i
			groups = append(groups, group{id: e.ClassID})
		}
		groups[i].count++
	}
	if len(groups) == 0 {
		return PopularClass{}, false
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].count > groups[j].count })

	top := groups[0]
	i := slices.IndexFunc(classes, func(c domain.Class) bool { return c.ID == top.id })
	if i < 0 {
		return PopularClass{}, false
	}
	return PopularClass{Class: classes[i], Count: top.count}, true
}

func TotalRevenue(payments []domain.Payment) float64 {
	var sum float64
	for _, p := range payments {
		sum += p.Amount
	}
	return sum
}

// MembershipDistribution counts members per membership label, in the order
// labels are first seen. Members whose membership is missing count as "Unknown".
func MembershipDistribution(members []domain.Member, memberships []domain.Membership) []LabelCount {
	labels := make(map[domain.MembershipID]string, len(memberships))
	for _, ms := range memberships {
		if _, ok := labels[ms.ID]; !ok {
			labels[ms.ID] = ms.Type
		}
	}

	var out []LabelCount
	index := make(map[string]int)
	for _, m := range members {
		label, ok := labels[m.MembershipID]
		if !ok {
			label = unknownMembership
		}
		i, seen := index[label]
		if !seen {
			i = len(out)
			index[label] = i
			out = append(out, LabelCount{Label: label})
		}
		out[i].Count++
	}
	return out
}

// DistributionMap is MembershipDistribution keyed by label.
func DistributionMap(dist []LabelCount) map[string]int {
	out := make(map[string]int, len(dist))
	for _, lc := range dist {
		out[lc.Label] = lc.Count
	}
	return out
}

func TrainerWorkload(trainers []domain.Trainer, classes []domain.Class) []TrainerLoad {
	out := make([]TrainerLoad, 0, len(trainers))
	for _, t := range trainers {
		n := 0
		for _, c := range classes {
			if c.TrainerID == t.ID {
				n++
			}
		}
		out = append(out, TrainerLoad{TrainerID: t.ID, Name: t.FullName(), ClassCount: n})
	}
	return out
}

// InactiveMembers returns members without a single enrollment, in collection order.
func InactiveMembers(members []domain.Member, enrollments []domain.Enrollment) []domain.Member {
	enrolled := make(map[domain.MemberID]bool, len(enrollments))
	for _, e := range enrollments {
		enrolled[e.MemberID] = true
	}
	out := make([]domain.Member, 0)
	for _, m := range members {
		if !enrolled[m.ID] {
			out = append(out, m)
		}
	}
	return out
}

// MemberLifetimeValue aggregates member's payments. The last payment is the
// first one after a stable sort by date descending, so among payments on the
// same latest date the earliest recorded wins.
func MemberLifetimeValue(member domain.Member, payments []domain.Payment) LifetimeValue {
	lv := LifetimeValue{MemberID: member.ID, MemberName: member.FullName()}

	var mine []domain.Payment
	for _, p := range payments {
		if p.MemberID == member.ID {
			mine = append(mine, p)
			lv.TotalPaid += p.Amount
		}
	}
	lv.PaymentCount = len(mine)
	if len(mine) == 0 {
		return lv
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].PaymentDate.After(mine[j].PaymentDate.Time)
	})
	last := mine[0].PaymentDate
	lv.LastPaymentDate = &last
	return lv
}

func DashboardStatsOf(members []domain.Member, classes []domain.Class, payments []domain.Payment) DashboardStats {
	return DashboardStats{
		TotalMembers:  len(members),
		ActiveClasses: len(classes),
		Revenue:       TotalRevenue(payments),
	}
}

// RecentActivity lists the newest payments followed by the newest enrollments,
// each ordered by date then id (both descending), capped at five entries overall.
func RecentActivity(members []domain.Member, classes []domain.Class, enrollments []domain.Enrollment, payments []domain.Payment) []Activity {
	memberName := func(id domain.MemberID) string {
		i := slices.IndexFunc(members, func(m domain.Member) bool { return m.ID == id })
		if i < 0 {
			return unknownMember
		}
		return members[i].FullName()
	}
	className := func(id domain.ClassID) string {
		i := slices.IndexFunc(classes, func(c domain.Class) bool { return c.ID == id })
		if i < 0 {
			return unknownClass
		}
		return classes[i].Name
	}

	ps := slices.Clone(payments)
	sort.SliceStable(ps, func(i, j int) bool {
		if !ps[i].PaymentDate.Equal(ps[j].PaymentDate.Time) {
			return ps[i].PaymentDate.After(ps[j].PaymentDate.Time)
		}
		return ps[i].ID > ps[j].ID
	})
	es := slices.Clone(enrollments)
	sort.SliceStable(es, func(i, j int) bool {
		if !es[i].EnrollmentDate.Equal(es[j].EnrollmentDate.Time) {
			return es[i].EnrollmentDate.After(es[j].EnrollmentDate.Time)
		}
		return es[i].ID > es[j].ID
	})

	out := make([]Activity, 0, recentActivityLimit)
	for _, p := range ps[:min(len(ps), recentActivityLimit)] {
		out = append(out, Activity{
			Type: ActivityPayment,
			Date: p.PaymentDate,
			Text: memberName(p.MemberID) + " paid $" + strconv.FormatFloat(p.Amount, 'f', -1, 64),
		})
	}
	for _, e := range es[:min(len(es), recentActivityLimit)] {
		out = append(out, Activity{
			Type: ActivityEnrollment,
			Date: e.EnrollmentDate,
			Text: memberName(e.MemberID) + " enrolled in " + className(e.ClassID),
		})
	}
	return out[:min(len(out), recentActivityLimit)]
}
