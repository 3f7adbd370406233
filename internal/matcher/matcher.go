// Package matcher evaluates a single minifig recipe against the inventory
// and computes the sort metrics used by the allocator.
package matcher

import (
	"github.com/ganorabricks/figfinder/internal/domain"
)

// Match evaluates one minifig against the given availability and returns its
// candidate match state. Only regular parts (neither alternate nor
// counterpart) participate. It returns nil when the recipe has no regular
// parts, or when any regular part declares a non-positive quantity: such
// recipes are malformed and silently excluded from candidacy.
func Match(fig *domain.Minifig, avail domain.Availability, prices *domain.PriceGuide) *domain.Candidate {
	regular := fig.RegularParts()
	if len(regular) == 0 {
		return nil
	}
	for _, part := range regular {
		if part.Quantity <= 0 {
			return nil
		}
	}

	matched := make([]domain.MatchedPartDetail, 0, len(regular))
	missing := make([]domain.MissingPartDetail, 0)
	maxCopies := -1

	for _, part := range regular {
		available, price, remarks := avail(part.Ref())

		// The binding constraint across all required parts caps how many
		// identical copies the stock supports.
		copies := available / part.Quantity
		if maxCopies < 0 || copies < maxCopies {
			maxCopies = copies
		}

		if available >= part.Quantity {
			matched = append(matched, domain.MatchedPartDetail{
				PartID:     part.PartID,
				PartName:   part.PartName,
				ColorID:    part.ColorID,
				ColorName:  part.ColorName,
				Quantity:   part.Quantity,
				Price:      price,
				TotalPrice: price.Mul(decimalFromInt(part.Quantity)),
				Remarks:    remarks,
			})
		} else {
			if available <= 0 {
				remarks = ""
			}
			missing = append(missing, domain.MissingPartDetail{
				PartID:    part.PartID,
				PartName:  part.PartName,
				ColorID:   part.ColorID,
				ColorName: part.ColorName,
				Needed:    part.Quantity,
				Available: available,
				ShortBy:   part.Quantity - available,
				Price:     price,
				Remarks:   remarks,
			})
		}
	}

	total := len(regular)
	return &domain.Candidate{
		MinifigID:       fig.ID,
		MinifigName:     fig.Name,
		YearReleased:    fig.YearReleased,
		CategoryName:    fig.CategoryName,
		TotalParts:      total,
		MatchedParts:    len(matched),
		MissingParts:    total - len(matched),
		MatchPercentage: float64(len(matched)) / float64(total) * 100,
		CanBuild:        len(matched) == total,
		MaxCopies:       maxCopies,
		MatchedDetails:  matched,
		MissingDetails:  missing,
		Prices:          prices,
	}
}
