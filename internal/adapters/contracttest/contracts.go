package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ironhouse-gym/gym-admin/internal/domain"
	gymstoreport "github.com/ironhouse-gym/gym-admin/internal/ports/out/gymstore"
	idempotencyport "github.com/ironhouse-gym/gym-admin/internal/ports/out/idempotency"
)

type CleanupFunc = func()

type GymStoreFactory func(t *testing.T) (gymstoreport.Store, CleanupFunc)
type IdemStoreFactory func(t *testing.T) (idempotencyport.Store, CleanupFunc)

func RunIdempotencyStore(t *testing.T, newStore IdemStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	fp := idempotencyport.Fingerprint{
		Key:    idempotencyport.Key(uuid.NewString()),
		Method: "POST",
		Route:  "/payments/create",
	}
	rec := idempotencyport.Record{
		BodyHash:   "hash-abc",
		StatusCode: 303,
		Location:   "/payments?success=Payment+Recorded+Successfully",
		CreatedAt:  time.Unix(123, 0).UTC(),
	}
	if err := store.Put(ctx, fp, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := store.Get(ctx, fp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if got.BodyHash != "hash-abc" || got.Location != rec.Location || got.StatusCode != 303 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Same key on another route is a different submission.
	other := fp
	other.Route = "/members/create"
	if _, ok, err := store.Get(ctx, other); err != nil || ok {
		t.Fatalf("Get(other route) ok=%v err=%v, want ok=false", ok, err)
	}

	// Overwrite semantics.
	rec2 := rec
	rec2.BodyHash = "hash-def"
	if err := store.Put(ctx, fp, rec2); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, ok, err = store.Get(ctx, fp)
	if err != nil || !ok || got.BodyHash != "hash-def" {
		t.Fatalf("expected overwritten record, got ok=%v err=%v hash=%q", ok, err, got.BodyHash)
	}
}

// RunGymStore exercises a store that starts empty.
func RunGymStore(t *testing.T, newStore GymStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	// Sequential ids with no deletions.
	var ids []domain.MembershipID
	err := store.Update(ctx, func(tx gymstoreport.Tx) error {
		if got := tx.Memberships().NextID(); got != 1 {
			t.Fatalf("NextID() on empty=%d, want 1", got)
		}
		for _, label := range []string{"Silver", "Gold", "Platinum"} {
			m := tx.Memberships().Insert(domain.Membership{Type: label, Duration: 30, Price: 100})
			ids = append(ids, m.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update insert: %v", err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("ids=%v, want [1 2 3]", ids)
	}

	// Deleting the highest id makes it available again.
	err = store.Update(ctx, func(tx gymstoreport.Tx) error {
		if !tx.Memberships().Remove(3) {
			t.Fatalf("Remove(3)=false, want true")
		}
		if got := tx.Memberships().NextID(); got != 3 {
			t.Fatalf("NextID() after removing max=%d, want 3", got)
		}
		if tx.Memberships().Remove(3) {
			t.Fatalf("Remove(3) twice=true, want false")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update remove: %v", err)
	}

	// Gaps below the max are not reused.
	err = store.Update(ctx, func(tx gymstoreport.Tx) error {
		tx.Memberships().Remove(1)
		if got := tx.Memberships().NextID(); got != 3 {
			t.Fatalf("NextID() with gap=%d, want 3", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update gap: %v", err)
	}

	// Replace on a missing id is ErrNotFound and changes nothing.
	err = store.Update(ctx, func(tx gymstoreport.Tx) error {
		if err := tx.Memberships().Replace(domain.Membership{ID: 42, Type: "Ghost"}); !errors.Is(err, gymstoreport.ErrNotFound) {
			t.Fatalf("Replace(missing) err=%v, want %v", err, gymstoreport.ErrNotFound)
		}
		if err := tx.Memberships().Replace(domain.Membership{ID: 2, Type: "Gold+", Duration: 60, Price: 900}); err != nil {
			t.Fatalf("Replace(2) err=%v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update replace: %v", err)
	}

	err = store.View(ctx, func(tx gymstoreport.Tx) error {
		all := tx.Memberships().All()
		if len(all) != 1 {
			t.Fatalf("All() len=%d, want 1", len(all))
		}
		got, ok := tx.Memberships().Get(2)
		if !ok || got != (domain.Membership{ID: 2, Type: "Gold+", Duration: 60, Price: 900}) {
			t.Fatalf("Get(2)=%+v ok=%v", got, ok)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}

	// A failing Update leaves every collection as it was.
	boom := errors.New("boom")
	err = store.Update(ctx, func(tx gymstoreport.Tx) error {
		tx.Trainers().Insert(domain.Trainer{FirstName: "Temp"})
		tx.Memberships().Remove(2)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update err=%v, want %v", err, boom)
	}
	err = store.View(ctx, func(tx gymstoreport.Tx) error {
		if n := tx.Trainers().Len(); n != 0 {
			t.Fatalf("Trainers().Len() after rollback=%d, want 0", n)
		}
		if _, ok := tx.Memberships().Get(2); !ok {
			t.Fatalf("membership 2 missing after rollback")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View after rollback: %v", err)
	}

	// Find and Any scan in insertion order.
	err = store.Update(ctx, func(tx gymstoreport.Tx) error {
		tx.Payments().Insert(domain.Payment{MemberID: 7, Amount: 10})
		tx.Payments().Insert(domain.Payment{MemberID: 8, Amount: 20})
		tx.Payments().Insert(domain.Payment{MemberID: 7, Amount: 30})
		return nil
	})
	if err != nil {
		t.Fatalf("Update payments: %v", err)
	}
	err = store.View(ctx, func(tx gymstoreport.Tx) error {
		got := tx.Payments().Find(func(p domain.Payment) bool { return p.MemberID == 7 })
		if len(got) != 2 || got[0].Amount != 10 || got[1].Amount != 30 {
			t.Fatalf("Find(member 7)=%+v", got)
		}
		if !tx.Payments().Any(func(p domain.Payment) bool { return p.MemberID == 8 }) {
			t.Fatalf("Any(member 8)=false, want true")
		}
		if tx.Payments().Any(func(p domain.Payment) bool { return p.MemberID == 9 }) {
			t.Fatalf("Any(member 9)=true, want false")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View payments: %v", err)
	}

	// Cancelled contexts are refused before fn runs.
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	ran := false
	if err := store.Update(cctx, func(gymstoreport.Tx) error { ran = true; return nil }); err == nil || ran {
		t.Fatalf("Update(canceled) err=%v ran=%v, want error and not run", err, ran)
	}
}
