package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/ganorabricks/figfinder/internal/domain"
)

// Store is the user's parts inventory, keyed by part slot. It is populated
// once at load time and read-only afterwards: allocation state lives in the
// allocator's ledger, never here.
type Store struct {
	entries map[domain.PartRef]domain.InventoryEntry
}

// NewStore creates an empty inventory store.
func NewStore() *Store {
	return &Store{entries: make(map[domain.PartRef]domain.InventoryEntry)}
}

// AddLine merges one inventory line into the store. Duplicate lines for the
// same slot sum their quantities; unit price and remarks keep the first
// non-empty value seen. Intended for load time only.
func (s *Store) AddLine(ref domain.PartRef, quantity int, unitPrice decimal.Decimal, remarks string) {
	entry, ok := s.entries[ref]
	if !ok {
		s.entries[ref] = domain.InventoryEntry{
			Quantity:  quantity,
			UnitPrice: unitPrice,
			Remarks:   remarks,
		}
		return
	}

	entry.Quantity += quantity
	if entry.Remarks == "" && remarks != "" {
		entry.Remarks = remarks
	}
	s.entries[ref] = entry
}

// Lookup returns the entry for a part slot, if present.
func (s *Store) Lookup(ref domain.PartRef) (domain.InventoryEntry, bool) {
	entry, ok := s.entries[ref]
	return entry, ok
}

// Availability returns the store's lookup as the availability function the
// matcher consumes. Missing slots report zero quantity and price.
func (s *Store) Availability() domain.Availability {
	return func(ref domain.PartRef) (int, decimal.Decimal, string) {
		entry, ok := s.entries[ref]
		if !ok {
			return 0, decimal.Zero, ""
		}
		return entry.Quantity, entry.UnitPrice, entry.Remarks
	}
}

// UniqueParts returns the number of distinct part slots in the store.
func (s *Store) UniqueParts() int {
	return len(s.entries)
}

// TotalPieces returns the summed quantity across all slots.
func (s *Store) TotalPieces() int {
	total := 0
	for _, entry := range s.entries {
		total += entry.Quantity
	}
	return total
}
