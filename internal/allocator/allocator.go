// Package allocator partitions scored candidates into non-overlapping
// builds: a greedy, deterministic two-phase pass that processes complete
// builds before partial ones and never backtracks.
package allocator

import (
	"sort"

	"github.com/ganorabricks/figfinder/internal/domain"
	"github.com/ganorabricks/figfinder/internal/matcher"
)

// reservedRemark marks parts that an earlier, higher-priority build already
// claimed from the ledger.
const reservedRemark = "Parts reserved for higher-priority minifigures"

// Allocate runs the two-phase allocation over the full candidate list
// against the given availability. It returns the accepted builds in emit
// order (complete builds first, then informational partials) together with
// the ledger of committed parts, so callers can audit what was consumed.
//
// Phase 1 accepts complete builds in priority order, committing
// quantity_needed x copies per part to the ledger. Phase 2 re-scores every
// candidate with at least one matched part against the remaining
// availability and emits partial builds without committing anything.
func Allocate(candidates []*domain.Candidate, avail domain.Availability) ([]domain.AcceptedBuild, Ledger) {
	ledger := NewLedger()
	builds := make([]domain.AcceptedBuild, 0, len(candidates))

	complete := make([]*domain.Candidate, 0, len(candidates))
	partialPool := make([]*domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.CanBuild {
			complete = append(complete, c)
		}
		if c.MatchedParts > 0 {
			partialPool = append(partialPool, c)
		}
	}

	// Phase 1: complete builds by (match %, profit, year), all descending.
	// Match percentage is always 100 here, so this is effectively
	// profit-ranked with year as the final tiebreak. Stable sort keeps the
	// original enumeration order on exact ties.
	sort.SliceStable(complete, func(i, j int) bool {
		a, b := complete[i], complete[j]
		if a.MatchPercentage != b.MatchPercentage {
			return a.MatchPercentage > b.MatchPercentage
		}
		if cmp := a.Profit.Cmp(b.Profit); cmp != 0 {
			return cmp > 0
		}
		return a.SortYear() > b.SortYear()
	})

	for _, c := range complete {
		if build, ok := acceptComplete(c, avail, ledger); ok {
			builds = append(builds, build)
		}
	}

	// Phase 2: partial builds by (match %, parts cost, year), descending.
	// Parts cost ranks candidates whose profit is not computable.
	sort.SliceStable(partialPool, func(i, j int) bool {
		a, b := partialPool[i], partialPool[j]
		if a.MatchPercentage != b.MatchPercentage {
			return a.MatchPercentage > b.MatchPercentage
		}
		if cmp := matcher.PartsCost(a).Cmp(matcher.PartsCost(b)); cmp != 0 {
			return cmp > 0
		}
		return a.SortYear() > b.SortYear()
	})

	for _, c := range partialPool {
		if build, ok := emitPartial(c, avail, ledger); ok {
			builds = append(builds, build)
		}
	}

	return builds, ledger
}

// acceptComplete re-checks a complete candidate against ledger-adjusted
// availability. An earlier build may have consumed parts this one needs; if
// every required part still fits, the maximum simultaneous copy count is
// committed.
func acceptComplete(c *domain.Candidate, avail domain.Availability, ledger Ledger) (domain.AcceptedBuild, bool) {
	copies := 0
	for i, detail := range c.MatchedDetails {
		qty, _, _ := avail(detail.Ref())
		remaining := qty - ledger.Committed(detail.Ref())
		if remaining < detail.Quantity {
			return domain.AcceptedBuild{}, false
		}
		copiesForPart := remaining / detail.Quantity
		if i == 0 || copiesForPart < copies {
			copies = copiesForPart
		}
	}
	if copies < 1 {
		// Guarded by construction: a complete candidate has at least one
		// matched detail, each with remaining >= quantity.
		copies = 1
	}

	for _, detail := range c.MatchedDetails {
		ledger.Commit(detail.Ref(), detail.Quantity*copies)
	}

	return domain.AcceptedBuild{Candidate: *c, CopiesAllocated: copies}, true
}

// emitPartial partitions a candidate's matched parts into those still
// available after Phase 1 and those now reserved. The candidate is skipped
// when nothing remains available, and also when everything does: that case
// already belongs to the complete-build outcome and is not duplicated.
// Partial builds are informational and commit nothing to the ledger.
func emitPartial(c *domain.Candidate, avail domain.Availability, ledger Ledger) (domain.AcceptedBuild, bool) {
	available := make([]domain.MatchedPartDetail, 0, len(c.MatchedDetails))
	reserved := make([]domain.MissingPartDetail, 0)

	for _, detail := range c.MatchedDetails {
		qty, _, _ := avail(detail.Ref())
		remaining := qty - ledger.Committed(detail.Ref())
		if remaining >= detail.Quantity {
			available = append(available, detail)
			continue
		}
		if remaining < 0 {
			remaining = 0
		}
		reserved = append(reserved, domain.MissingPartDetail{
			PartID:    detail.PartID,
			PartName:  detail.PartName,
			ColorID:   detail.ColorID,
			ColorName: detail.ColorName,
			Needed:    detail.Quantity,
			Available: remaining,
			ShortBy:   detail.Quantity - remaining,
			Price:     detail.Price,
			Remarks:   reservedRemark,
		})
	}

	if len(available) == 0 || len(available) == c.TotalParts {
		return domain.AcceptedBuild{}, false
	}

	missing := make([]domain.MissingPartDetail, 0, len(reserved)+len(c.MissingDetails))
	missing = append(missing, reserved...)
	missing = append(missing, c.MissingDetails...)

	partial := domain.Candidate{
		MinifigID:       c.MinifigID,
		MinifigName:     c.MinifigName,
		YearReleased:    c.YearReleased,
		CategoryName:    c.CategoryName,
		TotalParts:      c.TotalParts,
		MatchedParts:    len(available),
		MissingParts:    c.TotalParts - len(available),
		MatchPercentage: float64(len(available)) / float64(c.TotalParts) * 100,
		CanBuild:        false,
		MatchedDetails:  available,
		MissingDetails:  missing,
		Prices:          c.Prices,
	}

	return domain.AcceptedBuild{Candidate: partial}, true
}
