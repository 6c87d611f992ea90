package benchmark

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/pkg/config"
)

// fakeStore is an in-memory BenchmarkStore
type fakeStore struct {
	rows      map[string]contracts.BenchmarkSet
	insertErr error
	inserts   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]contracts.BenchmarkSet)}
}

func (s *fakeStore) key(sector, stage string) string {
	return sector + "/" + stage
}

func (s *fakeStore) Get(ctx context.Context, sector, stage string) (*contracts.BenchmarkSet, error) {
	if row, ok := s.rows[s.key(sector, stage)]; ok {
		copied := row
		return &copied, nil
	}
	return nil, nil
}

func (s *fakeStore) Insert(ctx context.Context, sector, stage string, benchmarks contracts.BenchmarkSet) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserts++
	s.rows[s.key(sector, stage)] = benchmarks
	return nil
}

func (s *fakeStore) ListStale(ctx context.Context, olderThan time.Duration) ([]contracts.SectorStage, error) {
	return nil, nil
}

// fakeProvider returns a fixed snippet for every query
type fakeProvider struct {
	name    string
	results []contracts.SearchResult
	err     error
	calls   int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Search(ctx context.Context, query string) ([]contracts.SearchResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.results, nil
}

// fakeExtractor returns a fixed candidate regardless of input text
type fakeExtractor struct {
	candidate *contracts.BenchmarkCandidate
	err       error
}

func (e *fakeExtractor) Extract(ctx context.Context, text, sector, stage string) (*contracts.BenchmarkCandidate, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.candidate, nil
}

func resolverConfig() *config.Config {
	return &config.Config{
		LogLevel:  "error",
		LogFormat: "json",
		Env:       "development",
		Search: config.SearchConfig{
			Timeout:          time.Second,
			QueriesPerSecond: 1000,
		},
		Benchmark: config.BenchmarkConfig{
			CacheTTL: time.Hour,
		},
	}
}

func validCandidate() *contracts.BenchmarkCandidate {
	return &contracts.BenchmarkCandidate{
		AvgRevenueMultiple: fptr(8.0),
		AvgLTVCACRatio:     fptr(4.0),
		TypicalRunway:      fptr(18.0),
		AcceptableBurnRate: fptr(50000.0),
		ValuationRange:     &contracts.ValuationRange{Min: 1000000, Max: 4000000},
	}
}

func searchResults() []contracts.SearchResult {
	return []contracts.SearchResult{{Title: "Benchmarks 2024", Snippet: "seed stage figures"}}
}

func TestResolve_StoreExactMatch(t *testing.T) {
	store := newFakeStore()
	store.rows["SaaS/seed"] = contracts.BenchmarkSet{
		AvgRevenueMultiple: 9.0,
		AvgLTVCACRatio:     4.5,
		AcceptableBurnRate: 40000,
		TypicalRunway:      20,
	}
	provider := &fakeProvider{name: "primary", results: searchResults()}

	r := NewResolver(store, []contracts.SearchProvider{provider}, &fakeExtractor{candidate: validCandidate()}, nil, resolverConfig(), testLogger())

	set, err := r.Resolve(context.Background(), "SaaS", "seed")
	require.NoError(t, err)

	assert.Equal(t, contracts.SourceStoreExactMatch, set.DataSource)
	assert.Equal(t, 9.0, set.AvgRevenueMultiple)
	assert.Zero(t, provider.calls, "store hit must not trigger search")
	require.NotNil(t, set.QueryContext)
	assert.Equal(t, contracts.SourceStoreExactMatch, set.QueryContext.BenchmarkSource)
}

func TestResolve_WebSearchWriteThrough(t *testing.T) {
	store := newFakeStore()
	provider := &fakeProvider{name: "primary", results: searchResults()}

	r := NewResolver(store, []contracts.SearchProvider{provider}, &fakeExtractor{candidate: validCandidate()}, nil, resolverConfig(), testLogger())

	set, err := r.Resolve(context.Background(), "SaaS", "seed")
	require.NoError(t, err)

	assert.Equal(t, contracts.SourceWebSearchInserted, set.DataSource)
	assert.Equal(t, 8.0, set.AvgRevenueMultiple)
	assert.Equal(t, 1, store.inserts)

	// The persisted row serves the next call as an exact match
	set2, err := r.Resolve(context.Background(), "SaaS", "seed")
	require.NoError(t, err)
	assert.Equal(t, contracts.SourceStoreExactMatch, set2.DataSource)
	assert.Equal(t, set.AvgRevenueMultiple, set2.AvgRevenueMultiple)
}

func TestResolve_InsertFailureDegradesTag(t *testing.T) {
	store := newFakeStore()
	store.insertErr = errors.New("connection refused")
	provider := &fakeProvider{name: "primary", results: searchResults()}

	r := NewResolver(store, []contracts.SearchProvider{provider}, &fakeExtractor{candidate: validCandidate()}, nil, resolverConfig(), testLogger())

	set, err := r.Resolve(context.Background(), "SaaS", "seed")
	require.NoError(t, err, "persistence failure must not fail the resolution")
	assert.Equal(t, contracts.SourceWebSearch, set.DataSource)
}

func TestResolve_InvalidCandidateFallsBackToCurated(t *testing.T) {
	// Extractor produces an absurd multiple that fails validation
	badCandidate := &contracts.BenchmarkCandidate{
		AvgRevenueMultiple: fptr(500.0),
		AvgLTVCACRatio:     fptr(0.1),
	}
	provider := &fakeProvider{name: "primary", results: searchResults()}

	r := NewResolver(newFakeStore(), []contracts.SearchProvider{provider}, &fakeExtractor{candidate: badCandidate}, nil, resolverConfig(), testLogger())

	set, err := r.Resolve(context.Background(), "SaaS", "seed")
	require.NoError(t, err)
	assert.Equal(t, contracts.SourceCuratedFallback, set.DataSource)
	assert.Equal(t, 8.5, set.AvgRevenueMultiple)
}

func TestResolve_SecondaryProviderAfterPrimaryFailure(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("quota exceeded")}
	secondary := &fakeProvider{name: "secondary", results: searchResults()}

	r := NewResolver(newFakeStore(), []contracts.SearchProvider{primary, secondary}, &fakeExtractor{candidate: validCandidate()}, nil, resolverConfig(), testLogger())

	set, err := r.Resolve(context.Background(), "SaaS", "seed")
	require.NoError(t, err)
	assert.Equal(t, contracts.SourceWebSearchInserted, set.DataSource)
	assert.Positive(t, secondary.calls)
}

func TestResolve_NoProvidersUsesCurated(t *testing.T) {
	r := NewResolver(newFakeStore(), nil, NewPatternExtractor(), nil, resolverConfig(), testLogger())

	set, err := r.Resolve(context.Background(), "FinTech", "series_a")
	require.NoError(t, err)
	assert.Equal(t, contracts.SourceCuratedFallback, set.DataSource)
	assert.Equal(t, 15.0, set.AvgRevenueMultiple)
}

func TestResolve_QueryContext(t *testing.T) {
	r := NewResolver(newFakeStore(), nil, NewPatternExtractor(), nil, resolverConfig(), testLogger())

	// Missing sector is echoed as not_provided
	set, err := r.Resolve(context.Background(), "", "Series A")
	require.NoError(t, err)
	require.NotNil(t, set.QueryContext)
	assert.Equal(t, "not_provided", set.QueryContext.SectorUsed)
	assert.Equal(t, "series_a", set.QueryContext.StageUsed)
	assert.Equal(t, contracts.SourceCuratedFallback, set.QueryContext.BenchmarkSource)

	// Missing stage defaults to seed
	set, err = r.Resolve(context.Background(), "SaaS", "")
	require.NoError(t, err)
	assert.Equal(t, "seed", set.QueryContext.StageUsed)
}

func TestResolve_MissingSearchFieldsFilledWithDefaults(t *testing.T) {
	// Candidate carries only the two required metrics
	partial := &contracts.BenchmarkCandidate{
		AvgRevenueMultiple: fptr(8.0),
		AvgLTVCACRatio:     fptr(4.0),
	}
	provider := &fakeProvider{name: "primary", results: searchResults()}

	r := NewResolver(newFakeStore(), []contracts.SearchProvider{provider}, &fakeExtractor{candidate: partial}, nil, resolverConfig(), testLogger())

	set, err := r.Resolve(context.Background(), "SaaS", "seed")
	require.NoError(t, err)

	assert.Equal(t, 8.0, set.AvgRevenueMultiple)
	assert.Equal(t, 50000.0, set.AcceptableBurnRate)
	assert.Equal(t, 18.0, set.TypicalRunway)
	require.NotNil(t, set.ValuationRange)
	assert.Less(t, set.ValuationRange.Min, set.ValuationRange.Max)
}
