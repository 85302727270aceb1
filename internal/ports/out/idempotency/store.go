package idempotency

import (
	"context"
	"time"
)

// Key is the per-render submission key carried in the hidden idempotency_key form field.
type Key string

// Fingerprint identifies a mutating request for replay purposes.
//
// Route is the request path (e.g. "/members/create").
type Fingerprint struct {
	Key    Key
	Method string
	Route  string
}

// Record is the outcome of the first request with a given fingerprint. BodyHash covers the
// submitted form minus the key itself, so a reused key with a different body can be refused.
type Record struct {
	BodyHash   string
	StatusCode int
	Location   string
	CreatedAt  time.Time
}

// Store persists submission outcomes so a repeated submission replays the first redirect
// instead of mutating twice.
type Store interface {
	Get(ctx context.Context, fp Fingerprint) (Record, bool, error)
	Put(ctx context.Context, fp Fingerprint, rec Record) error
}
