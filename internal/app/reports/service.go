package reports

import (
	"context"

	"github.com/ironhouse-gym/gym-admin/internal/domain"
	"github.com/ironhouse-gym/gym-admin/internal/ports/out/gymstore"
)

type Service struct {
	store gymstore.Store
}

func NewService(store gymstore.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var out Summary
	err := s.store.View(ctx, func(tx gymstore.Tx) error {
		members := tx.Members().All()
		enrollments := tx.Enrollments().All()
		classes := tx.Classes().All()

		if m, ok := OldestMember(members); ok {
			out.OldestMember = &m
		}
		if pc, ok := MostPopularClass(enrollments, classes); ok {
			out.PopularClass = &pc
		}
		out.TotalRevenue = TotalRevenue(tx.Payments().All())
		out.Distribution = MembershipDistribution(members, tx.Memberships().All())
		out.TrainerWorkload = TrainerWorkload(tx.Trainers().All(), classes)
		out.InactiveMembers = InactiveMembers(members, enrollments)
		out.Members = members
		return nil
	})
	return out, err
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var out Dashboard
	err := s.store.View(ctx, func(tx gymstore.Tx) error {
		members := tx.Members().All()
		classes := tx.Classes().All()
		payments := tx.Payments().All()
		out = Dashboard{
			Stats:          DashboardStatsOf(members, classes, payments),
			RecentActivity: RecentActivity(members, classes, tx.Enrollments().All(), payments),
		}
		return nil
	})
	return out, err
}

// MemberLifetimeValue fails with NOT_FOUND for an unknown member; a member
// without payments gets a zero report with no last payment date.
func (s *Service) MemberLifetimeValue(ctx context.Context, id domain.MemberID) (LifetimeValue, error) {
	var out LifetimeValue
	err := s.store.View(ctx, func(tx gymstore.Tx) error {
		m, ok := tx.Members().Get(int(id))
		if !ok {
			return memberNotFound(id)
		}
		out = MemberLifetimeValue(m, tx.Payments().Find(func(p domain.Payment) bool { return p.MemberID == id }))
		return nil
	})
	return out, err
}
