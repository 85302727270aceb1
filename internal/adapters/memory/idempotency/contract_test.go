package idempotency

import (
	"testing"

	"github.com/ironhouse-gym/gym-admin/internal/adapters/contracttest"
	idempotencyport "github.com/ironhouse-gym/gym-admin/internal/ports/out/idempotency"
)

func TestContract_IdempotencyStore(t *testing.T) {
	contracttest.RunIdempotencyStore(t, func(t *testing.T) (idempotencyport.Store, func()) {
		t.Helper()
		return NewStore(), nil
	})
}
