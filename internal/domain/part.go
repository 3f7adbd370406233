package domain

import "github.com/shopspring/decimal"

// PartRef identifies a part slot: a part ID in a specific color.
// It is an immutable value and is used as a map key throughout the system.
type PartRef struct {
	PartID  string `json:"part_id"`
	ColorID int    `json:"color_id"`
}

// InventoryEntry is what the user holds for one part slot. Quantity is the
// sum of all inventory lines for that slot; unit price and remarks come from
// the first line that carried them (later duplicates never overwrite).
type InventoryEntry struct {
	Quantity  int
	UnitPrice decimal.Decimal
	Remarks   string
}

// Availability reports what the inventory holds for one part slot. A slot
// that is not present reports quantity 0, price 0 and empty remarks; it is
// never an error.
type Availability func(ref PartRef) (quantity int, unitPrice decimal.Decimal, remarks string)
