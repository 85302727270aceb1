package reports

import (
	"context"
	"errors"
	"testing"

	memgymstore "github.com/ironhouse-gym/gym-admin/internal/adapters/memory/gymstore"
	"github.com/ironhouse-gym/gym-admin/internal/domain"
)

func TestService_SummaryOverSeedData(t *testing.T) {
	t.Parallel()

	svc := NewService(memgymstore.NewSeededStore())
	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() err=%v", err)
	}
	if got.OldestMember == nil || got.OldestMember.FirstName != "Jane" {
		t.Fatalf("OldestMember=%+v, want Jane", got.OldestMember)
	}
	if got.PopularClass == nil || got.PopularClass.Class.Name != "Morning Boxing" || got.PopularClass.Count != 2 {
		t.Fatalf("PopularClass=%+v, want Morning Boxing x2", got.PopularClass)
	}
	if got.TotalRevenue != 1100 {
		t.Fatalf("TotalRevenue=%v, want 1100", got.TotalRevenue)
	}
	if len(got.Distribution) != 3 || got.Distribution[0] != (LabelCount{"Gold", 1}) {
		t.Fatalf("Distribution=%+v", got.Distribution)
	}
	if len(got.TrainerWorkload) != 2 || got.TrainerWorkload[0].ClassCount != 1 {
		t.Fatalf("TrainerWorkload=%+v", got.TrainerWorkload)
	}
	if len(got.InactiveMembers) != 1 || got.InactiveMembers[0].FirstName != "Ali" {
		t.Fatalf("InactiveMembers=%+v, want Ali", got.InactiveMembers)
	}
	if len(got.Members) != 3 {
		t.Fatalf("Members len=%d, want 3", len(got.Members))
	}
}

func TestService_SummaryEmptyStore(t *testing.T) {
	t.Parallel()

	got, err := NewService(memgymstore.NewStore()).Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() err=%v", err)
	}
	if got.OldestMember != nil || got.PopularClass != nil || got.TotalRevenue != 0 || len(got.InactiveMembers) != 0 {
		t.Fatalf("Summary() on empty store=%+v", got)
	}
}

func TestService_MemberLifetimeValue(t *testing.T) {
	t.Parallel()

	svc := NewService(memgymstore.NewSeededStore())
	ctx := context.Background()

	got, err := svc.MemberLifetimeValue(ctx, 1)
	if err != nil {
		t.Fatalf("MemberLifetimeValue(1) err=%v", err)
	}
	if got.TotalPaid != 800 || got.PaymentCount != 1 || got.LastPaymentDate == nil ||
		domain.ISODate(*got.LastPaymentDate) != "2025-11-20" {
		t.Fatalf("MemberLifetimeValue(1)=%+v", got)
	}

	got, err = svc.MemberLifetimeValue(ctx, 3)
	if err != nil || got.PaymentCount != 0 || got.LastPaymentDate != nil || got.MemberName != "Ali Veli" {
		t.Fatalf("MemberLifetimeValue(3)=%+v err=%v", got, err)
	}

	_, err = svc.MemberLifetimeValue(ctx, 404)
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Code != CodeNotFound || ae.Status != 404 {
		t.Fatalf("MemberLifetimeValue(404) err=%v, want NOT_FOUND", err)
	}
}

func TestService_Dashboard(t *testing.T) {
	t.Parallel()

	got, err := NewService(memgymstore.NewSeededStore()).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard() err=%v", err)
	}
	if got.Stats != (DashboardStats{TotalMembers: 3, ActiveClasses: 2, Revenue: 1100}) {
		t.Fatalf("Stats=%+v", got.Stats)
	}
	if len(got.RecentActivity) != 4 || got.RecentActivity[0].Text != "Jane Smith paid $300" {
		t.Fatalf("RecentActivity=%+v", got.RecentActivity)
	}
}
