// Package catalog serves minifigure recipes and price guides through a
// layered cache: in-process LRU, then the database, then BrickLink. The
// finder only ever talks to this package, never to BrickLink directly.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ganorabricks/figfinder/internal/domain"
	"github.com/ganorabricks/figfinder/internal/logger"
	"github.com/ganorabricks/figfinder/internal/metrics"
	"github.com/ganorabricks/figfinder/internal/repository"
)

// Fetcher pulls catalog data from the upstream source. A nil Fetcher puts
// the service in cache-only mode: misses become not-found errors instead
// of remote calls.
type Fetcher interface {
	GetMinifig(ctx context.Context, minifigID string) (*domain.Minifig, error)
	GetPriceGuide(ctx context.Context, minifigID string) (*domain.PriceGuide, error)
}

// RefreshResult reports the outcome of a Refresh call.
type RefreshResult struct {
	Requested int      `json:"requested"`
	Fetched   int      `json:"fetched"`
	Failed    []string `json:"failed"`
}

// Service defines the interface for catalog operations
type Service interface {
	GetMinifig(ctx context.Context, minifigID string) (*domain.Minifig, error)
	GetPriceGuide(ctx context.Context, minifigID string) (*domain.PriceGuide, error)
	ListMinifigIDs(ctx context.Context) ([]string, error)

	// Refresh re-fetches the given minifigs from upstream and rewrites the
	// cache. An empty ID list refreshes everything currently cached.
	Refresh(ctx context.Context, minifigIDs []string) (*RefreshResult, error)
	Status(ctx context.Context) (*domain.CacheStatus, error)
}

// Config controls the in-memory cache layer.
type Config struct {
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultConfig returns the cache settings used when none are configured.
func DefaultConfig() Config {
	return Config{
		CacheSize: 2048,
		CacheTTL:  15 * time.Minute,
	}
}

type service struct {
	repo    repository.Catalog
	fetcher Fetcher
	cache   *memoryCache
}

// NewService creates a new catalog service. fetcher may be nil for
// cache-only operation.
func NewService(repo repository.Catalog, fetcher Fetcher, cfg Config) Service {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultConfig().CacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}
	return &service{
		repo:    repo,
		fetcher: fetcher,
		cache:   newMemoryCache(cfg.CacheSize, cfg.CacheTTL),
	}
}

func (s *service) GetMinifig(ctx context.Context, minifigID string) (*domain.Minifig, error) {
	if fig, ok := s.cache.GetMinifig(minifigID); ok {
		metrics.CatalogLookups.WithLabelValues(metrics.KindMinifig, metrics.SourceMemory).Inc()
		return fig, nil
	}

	fig, err := s.repo.GetMinifig(ctx, minifigID)
	if err == nil {
		metrics.CatalogLookups.WithLabelValues(metrics.KindMinifig, metrics.SourceDatabase).Inc()
		s.cache.SetMinifig(fig)
		return fig, nil
	}
	if !errors.Is(err, domain.ErrMinifigNotFound) {
		metrics.CatalogLookupErrors.WithLabelValues(metrics.KindMinifig).Inc()
		return nil, fmt.Errorf("failed to load minifig %s: %w", minifigID, err)
	}

	if s.fetcher == nil {
		return nil, fmt.Errorf("minifig %s: %w", minifigID, domain.ErrMinifigNotFound)
	}

	fig, err = s.fetcher.GetMinifig(ctx, minifigID)
	if err != nil {
		metrics.CatalogLookupErrors.WithLabelValues(metrics.KindMinifig).Inc()
		return nil, fmt.Errorf("failed to fetch minifig %s: %w", minifigID, err)
	}
	metrics.CatalogLookups.WithLabelValues(metrics.KindMinifig, metrics.SourceRemote).Inc()

	if err := s.repo.UpsertMinifig(ctx, fig); err != nil {
		// The recipe is still usable this run even if persisting it failed.
		logger.FromContext(ctx).Warn("failed to persist minifig", "minifig_id", minifigID, "error", err)
	}
	s.cache.SetMinifig(fig)
	return fig, nil
}

func (s *service) GetPriceGuide(ctx context.Context, minifigID string) (*domain.PriceGuide, error) {
	if guide, ok := s.cache.GetGuide(minifigID); ok {
		metrics.CatalogLookups.WithLabelValues(metrics.KindPriceGuide, metrics.SourceMemory).Inc()
		if guide == nil {
			return nil, fmt.Errorf("minifig %s: %w", minifigID, domain.ErrPriceGuideNotFound)
		}
		return guide, nil
	}

	guide, err := s.repo.GetPriceGuide(ctx, minifigID)
	if err == nil {
		metrics.CatalogLookups.WithLabelValues(metrics.KindPriceGuide, metrics.SourceDatabase).Inc()
		s.cache.SetGuide(minifigID, guide)
		return guide, nil
	}
	if !errors.Is(err, domain.ErrPriceGuideNotFound) {
		metrics.CatalogLookupErrors.WithLabelValues(metrics.KindPriceGuide).Inc()
		return nil, fmt.Errorf("failed to load price guide %s: %w", minifigID, err)
	}

	if s.fetcher == nil {
		return nil, fmt.Errorf("minifig %s: %w", minifigID, domain.ErrPriceGuideNotFound)
	}

	guide, err = s.fetcher.GetPriceGuide(ctx, minifigID)
	if err != nil {
		if errors.Is(err, domain.ErrPriceGuideNotFound) {
			// Remember the empty result so the next lookup stays local.
			s.cache.SetGuide(minifigID, nil)
			return nil, err
		}
		metrics.CatalogLookupErrors.WithLabelValues(metrics.KindPriceGuide).Inc()
		return nil, fmt.Errorf("failed to fetch price guide %s: %w", minifigID, err)
	}
	metrics.CatalogLookups.WithLabelValues(metrics.KindPriceGuide, metrics.SourceRemote).Inc()

	if err := s.repo.UpsertPriceGuide(ctx, minifigID, guide); err != nil {
		logger.FromContext(ctx).Warn("failed to persist price guide", "minifig_id", minifigID, "error", err)
	}
	s.cache.SetGuide(minifigID, guide)
	return guide, nil
}

func (s *service) ListMinifigIDs(ctx context.Context) ([]string, error) {
	ids, err := s.repo.ListMinifigIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached minifigs: %w", err)
	}
	return ids, nil
}

func (s *service) Refresh(ctx context.Context, minifigIDs []string) (*RefreshResult, error) {
	if s.fetcher == nil {
		return nil, domain.ErrRefreshUnavailable
	}

	log := logger.FromContext(ctx)

	if len(minifigIDs) == 0 {
		ids, err := s.repo.ListMinifigIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list cached minifigs: %w", err)
		}
		minifigIDs = ids
	}

	result := &RefreshResult{Requested: len(minifigIDs)}
	for _, id := range minifigIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.refreshOne(ctx, id); err != nil {
			log.Warn("refresh failed", "minifig_id", id, "error", err)
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Fetched++
	}

	metrics.CatalogRefreshes.Inc()
	log.Info("catalog refresh finished", "requested", result.Requested, "fetched", result.Fetched, "failed", len(result.Failed))
	return result, nil
}

func (s *service) refreshOne(ctx context.Context, minifigID string) error {
	s.cache.Invalidate(minifigID)

	fig, err := s.fetcher.GetMinifig(ctx, minifigID)
	if err != nil {
		return err
	}
	if err := s.repo.UpsertMinifig(ctx, fig); err != nil {
		return err
	}
	s.cache.SetMinifig(fig)

	guide, err := s.fetcher.GetPriceGuide(ctx, minifigID)
	if err != nil {
		// Recipes without price data stay useful; only real failures abort.
		if errors.Is(err, domain.ErrPriceGuideNotFound) {
			s.cache.SetGuide(minifigID, nil)
			return nil
		}
		return err
	}
	if err := s.repo.UpsertPriceGuide(ctx, minifigID, guide); err != nil {
		return err
	}
	s.cache.SetGuide(minifigID, guide)
	return nil
}

func (s *service) Status(ctx context.Context) (*domain.CacheStatus, error) {
	status, err := s.repo.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache status: %w", err)
	}
	return status, nil
}
