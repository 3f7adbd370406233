package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganorabricks/figfinder/internal/domain"
)

// fakeRepo is an in-memory repository.Catalog.
type fakeRepo struct {
	figs   map[string]*domain.Minifig
	guides map[string]*domain.PriceGuide

	figReads   int
	guideReads int
	upserts    int

	failGet error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		figs:   make(map[string]*domain.Minifig),
		guides: make(map[string]*domain.PriceGuide),
	}
}

func (r *fakeRepo) GetMinifig(_ context.Context, id string) (*domain.Minifig, error) {
	r.figReads++
	if r.failGet != nil {
		return nil, r.failGet
	}
	fig, ok := r.figs[id]
	if !ok {
		return nil, domain.ErrMinifigNotFound
	}
	return fig, nil
}

func (r *fakeRepo) UpsertMinifig(_ context.Context, fig *domain.Minifig) error {
	r.upserts++
	r.figs[fig.ID] = fig
	return nil
}

func (r *fakeRepo) ListMinifigIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(r.figs))
	for id := range r.figs {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *fakeRepo) GetPriceGuide(_ context.Context, id string) (*domain.PriceGuide, error) {
	r.guideReads++
	guide, ok := r.guides[id]
	if !ok {
		return nil, domain.ErrPriceGuideNotFound
	}
	return guide, nil
}

func (r *fakeRepo) UpsertPriceGuide(_ context.Context, id string, guide *domain.PriceGuide) error {
	r.guides[id] = guide
	return nil
}

func (r *fakeRepo) Status(_ context.Context) (*domain.CacheStatus, error) {
	return &domain.CacheStatus{MinifigCount: len(r.figs), PriceGuideCount: len(r.guides)}, nil
}

// fakeFetcher is a canned upstream source.
type fakeFetcher struct {
	figs    map[string]*domain.Minifig
	guides  map[string]*domain.PriceGuide
	fetches int
}

func (f *fakeFetcher) GetMinifig(_ context.Context, id string) (*domain.Minifig, error) {
	f.fetches++
	fig, ok := f.figs[id]
	if !ok {
		return nil, domain.ErrMinifigNotFound
	}
	return fig, nil
}

func (f *fakeFetcher) GetPriceGuide(_ context.Context, id string) (*domain.PriceGuide, error) {
	f.fetches++
	guide, ok := f.guides[id]
	if !ok {
		return nil, domain.ErrPriceGuideNotFound
	}
	return guide, nil
}

func testFig(id string) *domain.Minifig {
	return &domain.Minifig{
		ID:   id,
		Name: "Fig " + id,
		Parts: []domain.RequiredPart{
			{PartID: "3626", ColorID: 4, Quantity: 1},
		},
	}
}

func testConfig() Config {
	return Config{CacheSize: 16, CacheTTL: time.Minute}
}

func TestGetMinifig_ReadThrough(t *testing.T) {
	repo := newFakeRepo()
	fetcher := &fakeFetcher{figs: map[string]*domain.Minifig{"sw0036": testFig("sw0036")}}
	svc := NewService(repo, fetcher, testConfig())

	// Miss everywhere but upstream: fetched once, persisted, cached.
	fig, err := svc.GetMinifig(context.Background(), "sw0036")
	require.NoError(t, err)
	assert.Equal(t, "sw0036", fig.ID)
	assert.Equal(t, 1, fetcher.fetches)
	assert.Equal(t, 1, repo.upserts)

	// Second lookup is served from memory.
	_, err = svc.GetMinifig(context.Background(), "sw0036")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.fetches)
	assert.Equal(t, 1, repo.figReads)
}

func TestGetMinifig_DatabaseHitSkipsUpstream(t *testing.T) {
	repo := newFakeRepo()
	repo.figs["sw0036"] = testFig("sw0036")
	fetcher := &fakeFetcher{}
	svc := NewService(repo, fetcher, testConfig())

	_, err := svc.GetMinifig(context.Background(), "sw0036")
	require.NoError(t, err)
	assert.Zero(t, fetcher.fetches)
}

func TestGetMinifig_CacheOnlyMode(t *testing.T) {
	repo := newFakeRepo()
	repo.figs["sw0036"] = testFig("sw0036")
	svc := NewService(repo, nil, testConfig())

	_, err := svc.GetMinifig(context.Background(), "sw0036")
	require.NoError(t, err)

	_, err = svc.GetMinifig(context.Background(), "sw9999")
	assert.ErrorIs(t, err, domain.ErrMinifigNotFound)
}

func TestGetMinifig_RepoFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.failGet = errors.New("connection refused")
	svc := NewService(repo, &fakeFetcher{}, testConfig())

	_, err := svc.GetMinifig(context.Background(), "sw0036")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrMinifigNotFound)
}

func TestGetPriceGuide_NegativeResultCached(t *testing.T) {
	repo := newFakeRepo()
	fetcher := &fakeFetcher{}
	svc := NewService(repo, fetcher, testConfig())

	_, err := svc.GetPriceGuide(context.Background(), "sw0036")
	assert.ErrorIs(t, err, domain.ErrPriceGuideNotFound)
	upstreamCalls := fetcher.fetches

	// The empty result is remembered; no second upstream scrape.
	_, err = svc.GetPriceGuide(context.Background(), "sw0036")
	assert.ErrorIs(t, err, domain.ErrPriceGuideNotFound)
	assert.Equal(t, upstreamCalls, fetcher.fetches)
}

func TestGetPriceGuide_ReadThrough(t *testing.T) {
	guide := &domain.PriceGuide{OrderedUsed: &domain.PriceDetail{Lots: 3}}
	repo := newFakeRepo()
	fetcher := &fakeFetcher{guides: map[string]*domain.PriceGuide{"sw0036": guide}}
	svc := NewService(repo, fetcher, testConfig())

	got, err := svc.GetPriceGuide(context.Background(), "sw0036")
	require.NoError(t, err)
	assert.Equal(t, 3, got.OrderedUsed.Lots)
	assert.Contains(t, repo.guides, "sw0036")
}

func TestRefresh_FetchesAndRewrites(t *testing.T) {
	repo := newFakeRepo()
	repo.figs["sw0036"] = &domain.Minifig{ID: "sw0036", Name: "Stale"}
	fetcher := &fakeFetcher{
		figs:   map[string]*domain.Minifig{"sw0036": testFig("sw0036")},
		guides: map[string]*domain.PriceGuide{"sw0036": {OrderedNew: &domain.PriceDetail{Lots: 1}}},
	}
	svc := NewService(repo, fetcher, testConfig())

	result, err := svc.Refresh(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Requested)
	assert.Equal(t, 1, result.Fetched)
	assert.Empty(t, result.Failed)
	assert.Equal(t, "Fig sw0036", repo.figs["sw0036"].Name)
}

func TestRefresh_MissingGuideIsNotFailure(t *testing.T) {
	repo := newFakeRepo()
	fetcher := &fakeFetcher{figs: map[string]*domain.Minifig{"sw0036": testFig("sw0036")}}
	svc := NewService(repo, fetcher, testConfig())

	result, err := svc.Refresh(context.Background(), []string{"sw0036"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Fetched)
	assert.Empty(t, result.Failed)
}

func TestRefresh_UnknownIDReported(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeFetcher{}, testConfig())

	result, err := svc.Refresh(context.Background(), []string{"sw9999"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Fetched)
	assert.Equal(t, []string{"sw9999"}, result.Failed)
}

func TestRefresh_CacheOnlyModeRejected(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, testConfig())

	_, err := svc.Refresh(context.Background(), []string{"sw0036"})
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.figs["sw0036"] = testFig("sw0036")
	svc := NewService(repo, nil, testConfig())

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, status.MinifigCount)
	assert.Equal(t, 0, status.PriceGuideCount)
}

func TestMemoryCache_VersionInvalidation(t *testing.T) {
	cache := newMemoryCache(4, time.Minute)
	cache.figs.Add("sw0036", &cachedMinifig{Version: "0.9", Fig: testFig("sw0036")})

	_, ok := cache.GetMinifig("sw0036")
	assert.False(t, ok, "stale schema version must miss")
	assert.False(t, cache.figs.Contains("sw0036"), "stale entry removed on access")
}
