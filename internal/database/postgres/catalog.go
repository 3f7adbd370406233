package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ganorabricks/figfinder/internal/domain"
	"github.com/ganorabricks/figfinder/internal/repository"
)

// CatalogRepository implements repository.Catalog for PostgreSQL.
// Recipes and price guides are stored as JSONB documents keyed by
// minifig ID; the relational columns exist for listing and status queries.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(pool *pgxpool.Pool) repository.Catalog {
	return &CatalogRepository{pool: pool}
}

// GetMinifig retrieves a cached recipe by ID
func (r *CatalogRepository) GetMinifig(ctx context.Context, minifigID string) (*domain.Minifig, error) {
	var (
		fig   domain.Minifig
		parts []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT minifig_id, name, year_released, category_name, parts
		 FROM minifig_cache WHERE minifig_id = $1`, minifigID).
		Scan(&fig.ID, &fig.Name, &fig.YearReleased, &fig.CategoryName, &parts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMinifigNotFound
		}
		return nil, fmt.Errorf("failed to get minifig: %w", err)
	}

	if err := json.Unmarshal(parts, &fig.Parts); err != nil {
		return nil, fmt.Errorf("failed to decode parts for %s: %w", minifigID, err)
	}
	return &fig, nil
}

// UpsertMinifig inserts or replaces a cached recipe
func (r *CatalogRepository) UpsertMinifig(ctx context.Context, fig *domain.Minifig) error {
	parts, err := json.Marshal(fig.Parts)
	if err != nil {
		return fmt.Errorf("failed to encode parts for %s: %w", fig.ID, err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO minifig_cache (minifig_id, name, year_released, category_name, parts, fetched_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (minifig_id) DO UPDATE SET
		     name = EXCLUDED.name,
		     year_released = EXCLUDED.year_released,
		     category_name = EXCLUDED.category_name,
		     parts = EXCLUDED.parts,
		     fetched_at = NOW()`,
		fig.ID, fig.Name, fig.YearReleased, fig.CategoryName, parts)
	if err != nil {
		return fmt.Errorf("failed to upsert minifig %s: %w", fig.ID, err)
	}
	return nil
}

// ListMinifigIDs returns all cached minifig IDs in lexical order
func (r *CatalogRepository) ListMinifigIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT minifig_id FROM minifig_cache ORDER BY minifig_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list minifigs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan minifig id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read minifig ids: %w", err)
	}
	return ids, nil
}

// GetPriceGuide retrieves a cached price guide by minifig ID
func (r *CatalogRepository) GetPriceGuide(ctx context.Context, minifigID string) (*domain.PriceGuide, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT guide FROM price_guide_cache WHERE minifig_id = $1`, minifigID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPriceGuideNotFound
		}
		return nil, fmt.Errorf("failed to get price guide: %w", err)
	}

	var guide domain.PriceGuide
	if err := json.Unmarshal(raw, &guide); err != nil {
		return nil, fmt.Errorf("failed to decode price guide for %s: %w", minifigID, err)
	}
	return &guide, nil
}

// UpsertPriceGuide inserts or replaces a cached price guide
func (r *CatalogRepository) UpsertPriceGuide(ctx context.Context, minifigID string, guide *domain.PriceGuide) error {
	raw, err := json.Marshal(guide)
	if err != nil {
		return fmt.Errorf("failed to encode price guide for %s: %w", minifigID, err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO price_guide_cache (minifig_id, guide, fetched_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (minifig_id) DO UPDATE SET
		     guide = EXCLUDED.guide,
		     fetched_at = NOW()`,
		minifigID, raw)
	if err != nil {
		return fmt.Errorf("failed to upsert price guide %s: %w", minifigID, err)
	}
	return nil
}

// Status reports row counts and fetch-time bounds across both cache tables
func (r *CatalogRepository) Status(ctx context.Context) (*domain.CacheStatus, error) {
	var status domain.CacheStatus
	err := r.pool.QueryRow(ctx,
		`SELECT
		     (SELECT COUNT(*) FROM minifig_cache),
		     (SELECT COUNT(*) FROM price_guide_cache),
		     (SELECT MIN(fetched_at) FROM (
		         SELECT fetched_at FROM minifig_cache
		         UNION ALL SELECT fetched_at FROM price_guide_cache) t),
		     (SELECT MAX(fetched_at) FROM (
		         SELECT fetched_at FROM minifig_cache
		         UNION ALL SELECT fetched_at FROM price_guide_cache) t)`).
		Scan(&status.MinifigCount, &status.PriceGuideCount, &status.OldestFetchedAt, &status.NewestFetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache status: %w", err)
	}
	return &status, nil
}
