package repository

import (
	"context"

	"github.com/ganorabricks/figfinder/internal/domain"
)

// Catalog defines the interface for minifigure catalog persistence
type Catalog interface {
	// Minifig operations
	GetMinifig(ctx context.Context, minifigID string) (*domain.Minifig, error)
	UpsertMinifig(ctx context.Context, fig *domain.Minifig) error
	ListMinifigIDs(ctx context.Context) ([]string, error)

	// Price guide operations
	GetPriceGuide(ctx context.Context, minifigID string) (*domain.PriceGuide, error)
	UpsertPriceGuide(ctx context.Context, minifigID string, guide *domain.PriceGuide) error

	// Status reports cache freshness for the ops endpoints
	Status(ctx context.Context) (*domain.CacheStatus, error)
}
