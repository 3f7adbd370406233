package finder

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganorabricks/figfinder/internal/domain"
	"github.com/ganorabricks/figfinder/internal/inventory"
)

// fakeCatalog serves canned recipes and price guides for tests.
type fakeCatalog struct {
	figs   map[string]*domain.Minifig
	guides map[string]*domain.PriceGuide
	ids    []string

	listErr error
	figErr  map[string]error
}

func (f *fakeCatalog) ListMinifigIDs(_ context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ids, nil
}

func (f *fakeCatalog) GetMinifig(_ context.Context, id string) (*domain.Minifig, error) {
	if err := f.figErr[id]; err != nil {
		return nil, err
	}
	fig, ok := f.figs[id]
	if !ok {
		return nil, domain.ErrMinifigNotFound
	}
	return fig, nil
}

func (f *fakeCatalog) GetPriceGuide(_ context.Context, id string) (*domain.PriceGuide, error) {
	guide, ok := f.guides[id]
	if !ok {
		return nil, domain.ErrPriceGuideNotFound
	}
	return guide, nil
}

func intPtr(n int) *int { return &n }

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func stockedStore() *inventory.Store {
	store := inventory.NewStore()
	store.AddLine(domain.PartRef{PartID: "3626", ColorID: 4}, 1, price("0.25"), "bin 1")
	store.AddLine(domain.PartRef{PartID: "973", ColorID: 15}, 1, price("1.50"), "")
	return store
}

func cloneTrooper() *domain.Minifig {
	return &domain.Minifig{
		ID:           "sw0036",
		Name:         "Clone Trooper",
		YearReleased: intPtr(2002),
		CategoryName: "Star Wars",
		Parts: []domain.RequiredPart{
			{PartID: "3626", ColorID: 4, PartName: "Head", ColorName: "Red", Quantity: 1},
			{PartID: "973", ColorID: 15, PartName: "Torso", ColorName: "White", Quantity: 1},
		},
	}
}

func TestRun_CompleteMatchWithProfit(t *testing.T) {
	cat := &fakeCatalog{
		figs:   map[string]*domain.Minifig{"sw0036": cloneTrooper()},
		guides: map[string]*domain.PriceGuide{"sw0036": {OrderedUsed: &domain.PriceDetail{AvgPrice: price("9.75")}}},
	}
	svc := NewService(cat)

	r, err := svc.Run(context.Background(), stockedStore(), []string{"sw0036"})
	require.NoError(t, err)

	assert.Equal(t, 1, r.Summary.TotalChecked)
	assert.Equal(t, 1, r.Summary.CompleteMatches)
	require.Len(t, r.Complete, 1)

	b := r.Complete[0]
	assert.Equal(t, "sw0036", b.MinifigID)
	assert.Equal(t, 1, b.BuildableCount, "torso limits to one copy")
	// 9.75 market - (0.25 + 1.50) parts cost
	assert.Equal(t, 8.00, b.Profit)
}

func TestRun_DefaultsToAllCatalogIDs(t *testing.T) {
	cat := &fakeCatalog{
		ids:  []string{"sw0036"},
		figs: map[string]*domain.Minifig{"sw0036": cloneTrooper()},
	}
	svc := NewService(cat)

	r, err := svc.Run(context.Background(), stockedStore(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Summary.TotalChecked)
}

func TestRun_ListFailurePropagates(t *testing.T) {
	cat := &fakeCatalog{listErr: errors.New("db down")}
	svc := NewService(cat)

	_, err := svc.Run(context.Background(), stockedStore(), nil)
	assert.Error(t, err)
}

func TestRun_UnknownMinifigSkipped(t *testing.T) {
	cat := &fakeCatalog{
		figs: map[string]*domain.Minifig{"sw0036": cloneTrooper()},
	}
	svc := NewService(cat)

	r, err := svc.Run(context.Background(), stockedStore(), []string{"sw9999", "sw0036"})
	require.NoError(t, err)

	// The unknown ID is skipped, not fatal, and not counted as checked.
	assert.Equal(t, 1, r.Summary.TotalChecked)
	assert.Equal(t, "sw0036", r.Complete[0].MinifigID)
}

func TestRun_MissingPriceGuideDegradesToZeroProfit(t *testing.T) {
	cat := &fakeCatalog{
		figs: map[string]*domain.Minifig{"sw0036": cloneTrooper()},
	}
	svc := NewService(cat)

	r, err := svc.Run(context.Background(), stockedStore(), []string{"sw0036"})
	require.NoError(t, err)
	require.Len(t, r.Complete, 1)
	assert.Equal(t, 0.0, r.Complete[0].Profit)
	assert.Nil(t, r.Complete[0].Prices)
}

func TestRun_EmptyInventoryYieldsNoBuilds(t *testing.T) {
	cat := &fakeCatalog{
		figs: map[string]*domain.Minifig{"sw0036": cloneTrooper()},
	}
	svc := NewService(cat)

	r, err := svc.Run(context.Background(), inventory.NewStore(), []string{"sw0036"})
	require.NoError(t, err)

	// All parts missing: the candidate has zero matched parts and never
	// surfaces in either group.
	assert.Equal(t, 0, r.Summary.CompleteMatches)
	assert.Empty(t, r.Incomplete)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cat := &fakeCatalog{figs: map[string]*domain.Minifig{"sw0036": cloneTrooper()}}
	svc := NewService(cat)

	_, err := svc.Run(ctx, stockedStore(), []string{"sw0036"})
	assert.ErrorIs(t, err, context.Canceled)
}
