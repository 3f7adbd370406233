package domain

import "github.com/shopspring/decimal"

// MatchedPartDetail is one inventory line that satisfies a required part.
type MatchedPartDetail struct {
	PartID     string          `json:"part_id"`
	PartName   string          `json:"part_name"`
	ColorID    int             `json:"color_id"`
	ColorName  string          `json:"color_name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Remarks    string          `json:"remarks"`
}

// Ref returns the part slot this detail line draws from.
func (d MatchedPartDetail) Ref() PartRef {
	return PartRef{PartID: d.PartID, ColorID: d.ColorID}
}

// MissingPartDetail describes the shortfall for one required part.
type MissingPartDetail struct {
	PartID    string          `json:"part_id"`
	PartName  string          `json:"part_name"`
	ColorID   int             `json:"color_id"`
	ColorName string          `json:"color_name"`
	Needed    int             `json:"needed"`
	Available int             `json:"available"`
	ShortBy   int             `json:"short_by"`
	Price     decimal.Decimal `json:"price"`
	Remarks   string          `json:"remarks"`
}

// Candidate is one minifig recipe plus its match state against the
// inventory at evaluation time.
type Candidate struct {
	MinifigID       string
	MinifigName     string
	YearReleased    *int
	CategoryName    string
	TotalParts      int
	MatchedParts    int
	MissingParts    int
	MatchPercentage float64
	CanBuild        bool

	// MaxCopies is the largest number of identical complete builds the raw
	// inventory supports. Only meaningful when CanBuild is true.
	MaxCopies int

	MatchedDetails []MatchedPartDetail
	MissingDetails []MissingPartDetail

	Prices *PriceGuide

	// Profit is market value minus matched parts cost. Zero both for
	// break-even candidates and for candidates with no price data; the two
	// are deliberately indistinguishable at this layer.
	Profit decimal.Decimal
}

// SortYear returns the release year for sort purposes, with absence
// counting as 0. It never alters the displayed year.
func (c *Candidate) SortYear() int {
	if c.YearReleased == nil {
		return 0
	}
	return *c.YearReleased
}

// AcceptedBuild is one allocator output: either a complete build with the
// number of copies committed to the ledger, or an informational partial
// build re-scored against remaining availability (CopiesAllocated 0).
type AcceptedBuild struct {
	Candidate
	CopiesAllocated int
}
