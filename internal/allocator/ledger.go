package allocator

import (
	"github.com/shopspring/decimal"

	"github.com/ganorabricks/figfinder/internal/domain"
)

// Ledger records how many units of each part slot have been committed to
// accepted builds during a single allocation pass. It starts empty, only
// grows, and is discarded when the pass ends. It is never shared between
// runs; callers get a fresh one from Allocate.
type Ledger map[domain.PartRef]int

// NewLedger creates an empty ledger.
func NewLedger() Ledger {
	return make(Ledger)
}

// Committed returns the units already committed for a part slot.
func (l Ledger) Committed(ref domain.PartRef) int {
	return l[ref]
}

// Commit records qty more units as committed for a part slot.
func (l Ledger) Commit(ref domain.PartRef, qty int) {
	l[ref] += qty
}

// Remaining wraps an availability function so it reports quantities net of
// the ledger. The original inventory is never mutated; remaining
// availability is always recomputed as original minus committed.
func (l Ledger) Remaining(avail domain.Availability) domain.Availability {
	return func(ref domain.PartRef) (int, decimal.Decimal, string) {
		qty, unitPrice, remarks := avail(ref)
		return qty - l[ref], unitPrice, remarks
	}
}
