// Package finder orchestrates a match run: it pulls recipes and prices
// from the catalog, matches each against the inventory, allocates scarce
// parts across the winners and assembles the final report.
package finder

import (
	"context"
	"errors"
	"time"

	"github.com/ganorabricks/figfinder/internal/allocator"
	"github.com/ganorabricks/figfinder/internal/domain"
	"github.com/ganorabricks/figfinder/internal/inventory"
	"github.com/ganorabricks/figfinder/internal/logger"
	"github.com/ganorabricks/figfinder/internal/matcher"
	"github.com/ganorabricks/figfinder/internal/metrics"
	"github.com/ganorabricks/figfinder/internal/report"
)

// Catalog is the slice of the catalog layer the finder needs. A recipe or
// price lookup that fails marks that minifigure as skipped rather than
// failing the whole run.
type Catalog interface {
	ListMinifigIDs(ctx context.Context) ([]string, error)
	GetMinifig(ctx context.Context, minifigID string) (*domain.Minifig, error)
	GetPriceGuide(ctx context.Context, minifigID string) (*domain.PriceGuide, error)
}

// Service defines the interface for match run operations
type Service interface {
	// Run matches the given minifig IDs against the inventory. An empty ID
	// list means every minifig the catalog knows about.
	Run(ctx context.Context, store *inventory.Store, minifigIDs []string) (*report.Report, error)
}

type service struct {
	catalog Catalog
}

// NewService creates a new finder service
func NewService(catalog Catalog) Service {
	return &service{catalog: catalog}
}

func (s *service) Run(ctx context.Context, store *inventory.Store, minifigIDs []string) (*report.Report, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	if len(minifigIDs) == 0 {
		ids, err := s.catalog.ListMinifigIDs(ctx)
		if err != nil {
			return nil, err
		}
		minifigIDs = ids
	}

	log.Info("starting match run",
		"minifig_count", len(minifigIDs),
		"unique_parts", store.UniqueParts(),
		"total_pieces", store.TotalPieces())

	avail := store.Availability()
	candidates := make([]*domain.Candidate, 0, len(minifigIDs))
	skipped := 0

	for _, id := range minifigIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, err := s.check(ctx, id, avail)
		if err != nil {
			log.Warn("skipping minifig", "minifig_id", id, "error", err)
			skipped++
			continue
		}
		if c != nil {
			candidates = append(candidates, c)
		}
	}

	metrics.MinifigsChecked.Add(float64(len(minifigIDs) - skipped))

	builds, _ := allocator.Allocate(candidates, avail)
	result := report.Assemble(builds)

	metrics.MatchRunsTotal.Inc()
	metrics.MatchRunDuration.Observe(time.Since(start).Seconds())
	metrics.CompleteBuildsFound.Add(float64(result.Summary.CompleteMatches))
	metrics.PartialBuildsFound.Add(float64(result.Summary.IncompleteMatches))
	for _, b := range result.Complete {
		metrics.CopiesAllocated.Add(float64(b.BuildableCount))
	}

	log.Info("match run finished",
		"checked", result.Summary.TotalChecked,
		"complete", result.Summary.CompleteMatches,
		"incomplete", result.Summary.IncompleteMatches,
		"skipped", skipped,
		"duration", time.Since(start))

	return result, nil
}

// check evaluates a single minifig. A nil candidate with nil error means
// the recipe exists but is not worth reporting (no regular parts, or a
// non-positive required quantity).
func (s *service) check(ctx context.Context, minifigID string, avail domain.Availability) (*domain.Candidate, error) {
	fig, err := s.catalog.GetMinifig(ctx, minifigID)
	if err != nil {
		return nil, err
	}

	guide, err := s.catalog.GetPriceGuide(ctx, minifigID)
	if err != nil {
		// Prices are an enrichment. A missing guide degrades the candidate
		// to zero profit instead of dropping it.
		if !errors.Is(err, domain.ErrPriceGuideNotFound) {
			logger.FromContext(ctx).Debug("price guide unavailable", "minifig_id", minifigID, "error", err)
		}
		guide = nil
	}

	c := matcher.Match(fig, avail, guide)
	if c == nil {
		return nil, nil
	}
	if c.CanBuild {
		c.Profit = matcher.Profit(c)
	}
	return c, nil
}
