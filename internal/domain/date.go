package domain

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Date is a calendar date with no time-of-day component.
// It marshals to and from JSON as YYYY-MM-DD.
type Date = openapi_types.Date

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(openapi_types.DateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// MustDate is ParseDate for literals known to be valid (seed data, tests).
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ISODate renders d as YYYY-MM-DD, or "" for the zero date.
func ISODate(d Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(openapi_types.DateFormat)
}

// DisplayDate renders d as DD-MM-YYYY, or fallback for the zero date.
func DisplayDate(d Date, fallback string) string {
	if d.IsZero() {
		return fallback
	}
	return d.Format("02-01-2006")
}
