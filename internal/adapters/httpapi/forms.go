package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"github.com/ironhouse-gym/gym-admin/internal/domain"
)

const (
	idempotencyField = "idempotency_key"
	csrfField        = "gorilla.csrf.Token"
)

// formInt coerces a form value to int; anything unparsable is 0, which never
// resolves as a record id.
func formInt(f url.Values, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(f.Get(key)))
	if err != nil {
		return 0
	}
	return n
}

func formFloat(f url.Values, key string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(f.Get(key)), 64)
	if err != nil {
		return 0
	}
	return v
}

// formDate parses YYYY-MM-DD. Empty or invalid input yields the zero date;
// create operations replace a zero registration, enrollment or payment date
// with today.
func formDate(f url.Values, key string) domain.Date {
	d, err := domain.ParseDate(strings.TrimSpace(f.Get(key)))
	if err != nil {
		return domain.Date{}
	}
	return d
}

// hashForm fingerprints a submission, ignoring the per-render tokens.
func hashForm(f url.Values) string {
	c := make(url.Values, len(f))
	for k, v := range f {
		if k == idempotencyField || k == csrfField {
			continue
		}
		c[k] = v
	}
	sum := sha256.Sum256([]byte(c.Encode()))
	return hex.EncodeToString(sum[:])
}

func membershipFromForm(f url.Values) domain.Membership {
	return domain.Membership{
		ID:       domain.MembershipID(formInt(f, "membership_id")),
		Type:     f.Get("type"),
		Duration: formInt(f, "duration"),
		Price:    formFloat(f, "price"),
	}
}

func memberFromForm(f url.Values) domain.Member {
	return domain.Member{
		ID:               domain.MemberID(formInt(f, "member_id")),
		FirstName:        f.Get("first_name"),
		LastName:         f.Get("last_name"),
		Gender:           f.Get("gender"),
		DateOfBirth:      formDate(f, "date_of_birth"),
		RegistrationDate: formDate(f, "registration_date"),
		MembershipID:     domain.MembershipID(formInt(f, "membership_id")),
		Phone:            f.Get("phone"),
		Email:            f.Get("email"),
	}
}

func trainerFromForm(f url.Values) domain.Trainer {
	return domain.Trainer{
		ID:             domain.TrainerID(formInt(f, "trainer_id")),
		FirstName:      f.Get("first_name"),
		LastName:       f.Get("last_name"),
		Specialization: f.Get("specialization"),
		Phone:          f.Get("phone"),
		Email:          f.Get("email"),
	}
}

func classFromForm(f url.Values) domain.Class {
	return domain.Class{
		ID:        domain.ClassID(formInt(f, "class_id")),
		Name:      f.Get("class_name"),
		Schedule:  formDate(f, "schedule"),
		Capacity:  formInt(f, "capacity"),
		TrainerID: domain.TrainerID(formInt(f, "trainer_id")),
	}
}

func enrollmentFromForm(f url.Values) domain.Enrollment {
	return domain.Enrollment{
		ID:             domain.EnrollmentID(formInt(f, "enrollment_id")),
		MemberID:       domain.MemberID(formInt(f, "member_id")),
		ClassID:        domain.ClassID(formInt(f, "class_id")),
		EnrollmentDate: formDate(f, "enrollment_date"),
	}
}

func paymentFromForm(f url.Values) domain.Payment {
	return domain.Payment{
		ID:          domain.PaymentID(formInt(f, "payment_id")),
		MemberID:    domain.MemberID(formInt(f, "member_id")),
		Amount:      formFloat(f, "amount"),
		PaymentDate: formDate(f, "payment_date"),
		Method:      f.Get("payment_method"),
	}
}

// formEntry is the inverse of the *FromForm functions: field name to current
// value, used by the edit dialogs to pre-fill their inputs.
func formEntry(v any) map[string]any {
	switch r := v.(type) {
	case domain.Membership:
		return map[string]any{
			"membership_id": r.ID,
			"type":          r.Type,
			"duration":      r.Duration,
			"price":         r.Price,
		}
	case domain.Member:
		return map[string]any{
			"member_id":         r.ID,
			"first_name":        r.FirstName,
			"last_name":         r.LastName,
			"gender":            r.Gender,
			"date_of_birth":     domain.ISODate(r.DateOfBirth),
			"registration_date": domain.ISODate(r.RegistrationDate),
			"membership_id":     r.MembershipID,
			"phone":             r.Phone,
			"email":             r.Email,
		}
	case domain.Trainer:
		return map[string]any{
			"trainer_id":     r.ID,
			"first_name":     r.FirstName,
			"last_name":      r.LastName,
			"specialization": r.Specialization,
			"phone":          r.Phone,
			"email":          r.Email,
		}
	case domain.Class:
		return map[string]any{
			"class_id":   r.ID,
			"class_name": r.Name,
			"schedule":   domain.ISODate(r.Schedule),
			"capacity":   r.Capacity,
			"trainer_id": r.TrainerID,
		}
	case domain.Enrollment:
		return map[string]any{
			"enrollment_id":   r.ID,
			"member_id":       r.MemberID,
			"class_id":        r.ClassID,
			"enrollment_date": domain.ISODate(r.EnrollmentDate),
		}
	case domain.Payment:
		return map[string]any{
			"payment_id":     r.ID,
			"member_id":      r.MemberID,
			"amount":         r.Amount,
			"payment_date":   domain.ISODate(r.PaymentDate),
			"payment_method": r.Method,
		}
	default:
		return nil
	}
}
