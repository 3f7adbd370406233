// Package report flattens allocation results into the export layout
// consumed by the HTTP API and the CLI's JSON report. It is a pure
// transformation; no allocation or pricing logic lives here.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/ganorabricks/figfinder/internal/domain"
)

// Summary holds the headline counts for one match run.
type Summary struct {
	TotalChecked      int `json:"total_checked"`
	CompleteMatches   int `json:"complete_matches"`
	IncompleteMatches int `json:"incomplete_matches"`
}

// PriceSummary carries the 6-month average sale prices that were known for
// a minifigure. A condition is omitted when no data exists for it.
type PriceSummary struct {
	NewCondition  *float64 `json:"new_condition,omitempty"`
	UsedCondition *float64 `json:"used_condition,omitempty"`
}

// PartLine is one matched part in a build.
type PartLine struct {
	PartID     string  `json:"part_id"`
	PartName   string  `json:"part_name"`
	ColorID    int     `json:"color_id"`
	ColorName  string  `json:"color_name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	TotalPrice float64 `json:"total_price"`
	Remarks    string  `json:"remarks"`
}

// MissingLine is one part a build still needs.
type MissingLine struct {
	PartID    string  `json:"part_id"`
	PartName  string  `json:"part_name"`
	ColorID   int     `json:"color_id"`
	ColorName string  `json:"color_name"`
	Needed    int     `json:"needed"`
	Available int     `json:"available"`
	ShortBy   int     `json:"short_by"`
	Price     float64 `json:"price"`
	Remarks   string  `json:"remarks"`
}

// Build is one minifigure result, complete or partial.
type Build struct {
	MinifigID       string        `json:"minifig_id"`
	MinifigName     string        `json:"minifig_name"`
	YearReleased    *int          `json:"year_released"`
	CategoryName    string        `json:"category_name"`
	TotalParts      int           `json:"total_parts"`
	BuildableCount  int           `json:"buildable_count"`
	MatchedParts    int           `json:"matched_parts"`
	MissingParts    int           `json:"missing_parts"`
	MatchPercentage float64       `json:"match_percentage"`
	CanBuild        bool          `json:"can_build"`
	Profit          float64       `json:"profit"`
	Prices          *PriceSummary `json:"prices_6month_average"`
	AllParts        []PartLine    `json:"all_parts"`
	MissingDetails  []MissingLine `json:"missing_details"`
}

// Report is the full export document for one match run.
type Report struct {
	Summary    Summary `json:"summary"`
	Complete   []Build `json:"complete"`
	Incomplete []Build `json:"incomplete"`
}

// Assemble splits accepted builds into complete and incomplete groups and
// flattens each into the export layout. Slices are always non-nil so the
// serialized document uses [] rather than null.
func Assemble(builds []domain.AcceptedBuild) *Report {
	r := &Report{
		Complete:   make([]Build, 0, len(builds)),
		Incomplete: make([]Build, 0, len(builds)),
	}

	for _, b := range builds {
		flat := flatten(b)
		if b.CanBuild {
			r.Complete = append(r.Complete, flat)
		} else {
			r.Incomplete = append(r.Incomplete, flat)
		}
	}

	r.Summary = Summary{
		TotalChecked:      len(builds),
		CompleteMatches:   len(r.Complete),
		IncompleteMatches: len(r.Incomplete),
	}
	return r
}

func flatten(b domain.AcceptedBuild) Build {
	out := Build{
		MinifigID:       b.MinifigID,
		MinifigName:     b.MinifigName,
		YearReleased:    b.YearReleased,
		CategoryName:    b.CategoryName,
		TotalParts:      b.TotalParts,
		BuildableCount:  b.CopiesAllocated,
		MatchedParts:    b.MatchedParts,
		MissingParts:    b.MissingParts,
		MatchPercentage: b.MatchPercentage,
		CanBuild:        b.CanBuild,
		Profit:          round2(b.Profit),
		Prices:          priceSummary(b.Prices),
		AllParts:        make([]PartLine, 0, len(b.MatchedDetails)),
		MissingDetails:  make([]MissingLine, 0, len(b.MissingDetails)),
	}

	for _, d := range b.MatchedDetails {
		out.AllParts = append(out.AllParts, PartLine{
			PartID:     d.PartID,
			PartName:   d.PartName,
			ColorID:    d.ColorID,
			ColorName:  d.ColorName,
			Quantity:   d.Quantity,
			Price:      d.Price.InexactFloat64(),
			TotalPrice: d.TotalPrice.InexactFloat64(),
			Remarks:    d.Remarks,
		})
	}

	for _, d := range b.MissingDetails {
		out.MissingDetails = append(out.MissingDetails, MissingLine{
			PartID:    d.PartID,
			PartName:  d.PartName,
			ColorID:   d.ColorID,
			ColorName: d.ColorName,
			Needed:    d.Needed,
			Available: d.Available,
			ShortBy:   d.ShortBy,
			Price:     d.Price.InexactFloat64(),
			Remarks:   d.Remarks,
		})
	}

	return out
}

// priceSummary extracts 6-month averages from the ordered-sales sections of
// a price guide. Returns nil when no guide or no averages exist, which
// serializes as null to match consumers that key on its presence.
func priceSummary(g *domain.PriceGuide) *PriceSummary {
	if g == nil {
		return nil
	}

	var summary *PriceSummary
	if g.OrderedNew != nil {
		avg := g.OrderedNew.AvgPrice.InexactFloat64()
		summary = &PriceSummary{NewCondition: &avg}
	}
	if g.OrderedUsed != nil {
		avg := g.OrderedUsed.AvgPrice.InexactFloat64()
		if summary == nil {
			summary = &PriceSummary{}
		}
		summary.UsedCondition = &avg
	}
	return summary
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
