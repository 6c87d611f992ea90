package benchmark

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
	"github.com/saisirisha1111/pitchlens/pkg/redis"
)

// Query battery used against each search provider. %[1]s is the sector,
// %[2]s the stage. Site filters keep results on sources that actually
// publish startup benchmark figures.
var queryTemplates = []string{
	"%[1]s startup %[2]s stage average revenue multiple 2024 site:crunchbase.com OR site:cbinsights.com OR site:techcrunch.com",
	"%[1]s startup %[2]s stage valuation benchmarks 2024 site:tracxn.com OR site:dealroom.co OR site:angel.co",
	"%[1]s %[2]s startup average LTV CAC ratio metrics site:saastr.com OR site:forentrepreneurs.com",
	"%[1]s %[2]s stage startup typical runway and monthly burn rate benchmarks site:medium.com OR site:startupschool.org",
	"%[1]s %[2]s stage valuation range pre-money post-money 2024 site:techcrunch.com OR site:dealroom.co",
	"%[1]s startup %[2]s KPIs benchmarks 2024 site:crunchbase.com OR site:cbinsights.com",
}

// Top results per query fed into the extractor
const snippetsPerQuery = 5

// Resolver obtains industry benchmarks through an ordered fallback chain:
// redis cache, exact-match store lookup, external search with validation,
// then the curated tables. The curated tier always succeeds, so Resolve
// only errors when the chain itself is misconfigured.
type Resolver struct {
	store     contracts.BenchmarkStore
	providers []contracts.SearchProvider
	extractor contracts.BenchmarkExtractor
	validator *Validator
	cache     *redis.Cache
	logger    *logger.Logger

	cacheTTL      time.Duration
	searchTimeout time.Duration
	limiter       *rate.Limiter
}

// NewResolver wires the resolver with its injected collaborators. Both
// store and cache may be nil-behaviored (disabled) without breaking the
// chain; providers are tried in order.
func NewResolver(
	store contracts.BenchmarkStore,
	providers []contracts.SearchProvider,
	extractor contracts.BenchmarkExtractor,
	cache *redis.Cache,
	cfg *config.Config,
	log *logger.Logger,
) *Resolver {
	qps := cfg.Search.QueriesPerSecond
	if qps <= 0 {
		qps = 1
	}

	return &Resolver{
		store:         store,
		providers:     providers,
		extractor:     extractor,
		validator:     NewValidator(log),
		cache:         cache,
		logger:        log,
		cacheTTL:      cfg.Benchmark.CacheTTL,
		searchTimeout: cfg.Search.Timeout,
		limiter:       rate.NewLimiter(rate.Limit(qps), 1),
	}
}

// Resolve returns the benchmark set for a sector/stage pair. The returned
// set always carries a data_source tag and the query context it was
// resolved for.
func (r *Resolver) Resolve(ctx context.Context, sector, stage string) (contracts.BenchmarkSet, error) {
	stage = contracts.NormalizeStage(stage)
	if stage == "" {
		stage = contracts.StageSeed
	}

	queryCtx := &contracts.QueryContext{
		SectorUsed: sector,
		StageUsed:  stage,
	}
	if sector == "" {
		queryCtx.SectorUsed = "not_provided"
	}

	// Tier 0: cache
	if cached := r.fromCache(ctx, sector, stage); cached != nil {
		queryCtx.BenchmarkSource = contracts.SourceCache
		cached.QueryContext = queryCtx
		return *cached, nil
	}

	// Tier 1: exact-match store lookup
	if stored := r.fromStore(ctx, sector, stage); stored != nil {
		stored.DataSource = contracts.SourceStoreExactMatch
		queryCtx.BenchmarkSource = contracts.SourceStoreExactMatch
		stored.QueryContext = queryCtx
		r.toCache(ctx, sector, stage, *stored)
		return *stored, nil
	}

	// Tier 2: external search with validation gate
	if candidate := r.fromSearch(ctx, sector, stage); candidate != nil {
		benchmarks := toBenchmarkSet(candidate, sector, stage)
		benchmarks.DataSource = contracts.SourceWebSearch

		// Write-through: persist for future exact-match hits. Insert
		// failure degrades the tag but never fails the resolution.
		if sector != "" && r.store != nil {
			if err := r.store.Insert(ctx, sector, stage, benchmarks); err != nil {
				r.logger.WithError(err).WithFields(map[string]interface{}{
					"sector": sector,
					"stage":  stage,
				}).Warn("Benchmark write-through insert failed")
			} else {
				benchmarks.DataSource = contracts.SourceWebSearchInserted
			}
		}

		queryCtx.BenchmarkSource = benchmarks.DataSource
		benchmarks.QueryContext = queryCtx
		r.toCache(ctx, sector, stage, benchmarks)
		return benchmarks, nil
	}

	// Tier 3: curated fallback, always succeeds
	benchmarks := Curated(sector, stage)
	queryCtx.BenchmarkSource = contracts.SourceCuratedFallback
	benchmarks.QueryContext = queryCtx

	r.logger.WithFields(map[string]interface{}{
		"sector": sector,
		"stage":  stage,
	}).Info("Benchmarks resolved from curated fallback")

	return benchmarks, nil
}

// Refresh re-runs the external search for a pair that already has a stored
// row, bypassing the cache and store tiers. A candidate that fails the
// validation gate leaves the existing row untouched.
func (r *Resolver) Refresh(ctx context.Context, sector, stage string) error {
	stage = contracts.NormalizeStage(stage)

	candidate := r.fromSearch(ctx, sector, stage)
	if candidate == nil {
		r.logger.WithFields(map[string]interface{}{
			"sector": sector,
			"stage":  stage,
		}).Debug("Benchmark refresh found no valid replacement, keeping stored row")
		return nil
	}

	benchmarks := toBenchmarkSet(candidate, sector, stage)
	benchmarks.DataSource = contracts.SourceWebSearchInserted

	if r.store != nil {
		if err := r.store.Insert(ctx, sector, stage, benchmarks); err != nil {
			return fmt.Errorf("refresh insert for %s/%s: %w", sector, stage, err)
		}
	}

	r.toCache(ctx, sector, stage, benchmarks)
	return nil
}

// fromCache is tier 0. Cache errors are treated as misses.
func (r *Resolver) fromCache(ctx context.Context, sector, stage string) *contracts.BenchmarkSet {
	if r.cache == nil {
		return nil
	}

	var cached contracts.BenchmarkSet
	found, err := r.cache.Get(ctx, redis.BenchmarkKey(sector, stage), &cached)
	if err != nil {
		r.logger.WithError(err).Warn("Benchmark cache read failed")
		return nil
	}
	if !found {
		return nil
	}
	return &cached
}

// toCache stores a resolved set; failures are logged and ignored
func (r *Resolver) toCache(ctx context.Context, sector, stage string, benchmarks contracts.BenchmarkSet) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, redis.BenchmarkKey(sector, stage), benchmarks, r.cacheTTL); err != nil {
		r.logger.WithError(err).Warn("Benchmark cache write failed")
	}
}

// fromStore is tier 1. Store errors fall through to the next tier.
func (r *Resolver) fromStore(ctx context.Context, sector, stage string) *contracts.BenchmarkSet {
	if r.store == nil || sector == "" {
		return nil
	}

	stored, err := r.store.Get(ctx, sector, stage)
	if err != nil {
		r.logger.WithError(err).WithFields(map[string]interface{}{
			"sector": sector,
			"stage":  stage,
		}).Warn("Benchmark store lookup failed")
		return nil
	}
	return stored
}

// fromSearch is tier 2: run the query battery against each provider in
// order, aggregate extracted fields, and accept the first candidate that
// passes the validation gate.
func (r *Resolver) fromSearch(ctx context.Context, sector, stage string) *contracts.BenchmarkCandidate {
	if r.extractor == nil || len(r.providers) == 0 {
		return nil
	}

	for _, provider := range r.providers {
		candidate := r.runBattery(ctx, provider, sector, stage)
		if candidate.IsEmpty() {
			r.logger.WithFields(map[string]interface{}{
				"provider": provider.Name(),
				"sector":   sector,
				"stage":    stage,
			}).Debug("Search provider yielded no benchmark fields")
			continue
		}

		report := r.validator.Validate(candidate, stage)
		if report.Passed {
			r.logger.WithFields(map[string]interface{}{
				"provider": provider.Name(),
				"sector":   sector,
				"stage":    stage,
			}).Info("Benchmarks resolved from web search")
			return candidate
		}

		r.logger.WithFields(map[string]interface{}{
			"provider":           provider.Name(),
			"range_passed":       report.RangePassed,
			"range_checks":       report.RangeChecks,
			"consistency_passed": report.ConsistencyPassed,
			"consistency_checks": report.ConsistencyChecks,
		}).Warn("Search benchmarks failed validation, trying next provider")
	}

	return nil
}

// runBattery executes every query template against one provider and merges
// the per-query extractions into a single candidate. Provider failures on
// individual queries are logged and skipped.
func (r *Resolver) runBattery(ctx context.Context, provider contracts.SearchProvider, sector, stage string) *contracts.BenchmarkCandidate {
	aggregate := &contracts.BenchmarkCandidate{}

	for _, template := range queryTemplates {
		if err := r.limiter.Wait(ctx); err != nil {
			return aggregate
		}

		query := fmt.Sprintf(template, sector, stage)
		results, err := r.searchWithTimeout(ctx, provider, query)
		if err != nil {
			r.logger.WithError(err).WithFields(map[string]interface{}{
				"provider": provider.Name(),
				"query":    query,
			}).Warn("Search query failed")
			continue
		}
		if len(results) == 0 {
			continue
		}

		text := combineSnippets(results)
		extracted, err := r.extractor.Extract(ctx, text, sector, stage)
		if err != nil {
			r.logger.WithError(err).WithFields(map[string]interface{}{
				"provider": provider.Name(),
				"query":    query,
			}).Warn("Benchmark extraction failed")
			continue
		}

		aggregate.Merge(extracted)
	}

	return aggregate
}

// searchWithTimeout bounds each external call independently
func (r *Resolver) searchWithTimeout(ctx context.Context, provider contracts.SearchProvider, query string) ([]contracts.SearchResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.searchTimeout)
	defer cancel()
	return provider.Search(callCtx, query)
}

// combineSnippets joins the top titles and snippets into extractor input
func combineSnippets(results []contracts.SearchResult) string {
	limit := len(results)
	if limit > snippetsPerQuery {
		limit = snippetsPerQuery
	}

	parts := make([]string, 0, limit)
	for _, result := range results[:limit] {
		parts = append(parts, fmt.Sprintf("%s. %s", result.Title, result.Snippet))
	}
	return strings.Join(parts, " ")
}

// toBenchmarkSet converts a validated candidate into a full benchmark set,
// filling the fields the search battery did not find with the generic
// defaults used throughout the warehouse.
func toBenchmarkSet(candidate *contracts.BenchmarkCandidate, sector, stage string) contracts.BenchmarkSet {
	benchmarks := contracts.BenchmarkSet{
		AvgRevenueMultiple: defaultRevenueMultiple,
		AvgLTVCACRatio:     defaultLTVCACRatio,
		AcceptableBurnRate: defaultBurnRate,
		TypicalRunway:      defaultRunway,
	}

	if candidate.AvgRevenueMultiple != nil {
		benchmarks.AvgRevenueMultiple = *candidate.AvgRevenueMultiple
	}
	if candidate.AvgLTVCACRatio != nil {
		benchmarks.AvgLTVCACRatio = *candidate.AvgLTVCACRatio
	}
	if candidate.AcceptableBurnRate != nil {
		benchmarks.AcceptableBurnRate = *candidate.AcceptableBurnRate
	}
	if candidate.TypicalRunway != nil {
		benchmarks.TypicalRunway = *candidate.TypicalRunway
	}

	if candidate.ValuationRange != nil {
		vr := *candidate.ValuationRange
		benchmarks.ValuationRange = &vr
	} else {
		vr := DefaultValuationRange(sector, stage)
		benchmarks.ValuationRange = &vr
	}

	return benchmarks
}
