package httpapi

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/ironhouse-gym/gym-admin/internal/domain"
)

func TestFormCoercion(t *testing.T) {
	t.Parallel()

	f := url.Values{
		"capacity": {" 20 "},
		"price":    {"99.5"},
		"duration": {"thirty"},
		"amount":   {""},
		"schedule": {"2025-13-40"},
		"dob":      {"1990-05-15"},
	}
	if got := formInt(f, "capacity"); got != 20 {
		t.Fatalf("formInt(capacity)=%d, want 20", got)
	}
	if got := formInt(f, "duration"); got != 0 {
		t.Fatalf("formInt(duration)=%d, want 0", got)
	}
	if got := formInt(f, "missing"); got != 0 {
		t.Fatalf("formInt(missing)=%d, want 0", got)
	}
	if got := formFloat(f, "price"); got != 99.5 {
		t.Fatalf("formFloat(price)=%v, want 99.5", got)
	}
	if got := formFloat(f, "amount"); got != 0 {
		t.Fatalf("formFloat(amount)=%v, want 0", got)
	}
	if got := formDate(f, "schedule"); !got.IsZero() {
		t.Fatalf("formDate(schedule)=%v, want zero", got)
	}
	if got := formDate(f, "dob"); got != domain.MustDate("1990-05-15") {
		t.Fatalf("formDate(dob)=%v, want 1990-05-15", got)
	}
}

func TestHashForm_IgnoresTokens(t *testing.T) {
	t.Parallel()

	a := url.Values{"amount": {"50"}, idempotencyField: {"k1"}, csrfField: {"t1"}}
	b := url.Values{"amount": {"50"}, idempotencyField: {"k2"}}
	c := url.Values{"amount": {"51"}, idempotencyField: {"k1"}}

	if hashForm(a) != hashForm(b) {
		t.Fatalf("hashForm differs on token fields only")
	}
	if hashForm(a) == hashForm(c) {
		t.Fatalf("hashForm equal for different amounts")
	}
	if _, ok := a[idempotencyField]; !ok {
		t.Fatalf("hashForm mutated its input")
	}
}

func TestFormEntry_RoundTripsThroughForm(t *testing.T) {
	t.Parallel()

	want := domain.Class{
		ID:        7,
		Name:      "Spin",
		Schedule:  domain.MustDate("2026-01-05"),
		Capacity:  12,
		TrainerID: 2,
	}
	f := url.Values{}
	for k, v := range formEntry(want) {
		switch x := v.(type) {
		case string:
			f.Set(k, x)
		case int:
			f.Set(k, strconv.Itoa(x))
		case domain.ClassID:
			f.Set(k, strconv.Itoa(int(x)))
		case domain.TrainerID:
			f.Set(k, strconv.Itoa(int(x)))
		default:
			t.Fatalf("formEntry(%s) has unexpected type %T", k, v)
		}
	}
	if got := classFromForm(f); got != want {
		t.Fatalf("classFromForm(formEntry())=%+v, want %+v", got, want)
	}

	m := formEntry(domain.Member{ID: 1})
	if m["date_of_birth"] != "" || m["registration_date"] != "" {
		t.Fatalf("zero dates=%q/%q, want empty", m["date_of_birth"], m["registration_date"])
	}
	if formEntry("nope") != nil {
		t.Fatalf("formEntry(string) should be nil")
	}
}
