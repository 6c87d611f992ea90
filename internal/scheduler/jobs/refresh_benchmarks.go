package jobs

import (
	"context"
	"time"

	"github.com/saisirisha1111/pitchlens/internal/benchmark"
	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
)

// RefreshBenchmarksJob re-runs the external search for benchmark rows whose
// last update is older than the configured refresh window. Rows without a
// valid replacement keep their current values.
type RefreshBenchmarksJob struct {
	store        contracts.BenchmarkStore
	resolver     *benchmark.Resolver
	refreshAfter time.Duration
	schedule     string
	logger       *logger.Logger
}

// NewRefreshBenchmarksJob creates the stale-benchmark refresh job
func NewRefreshBenchmarksJob(store contracts.BenchmarkStore, resolver *benchmark.Resolver, cfg *config.Config, log *logger.Logger) *RefreshBenchmarksJob {
	return &RefreshBenchmarksJob{
		store:        store,
		resolver:     resolver,
		refreshAfter: cfg.Benchmark.RefreshAfter,
		schedule:     cfg.Benchmark.RefreshSchedule,
		logger:       log,
	}
}

// Name returns the job name
func (j *RefreshBenchmarksJob) Name() string {
	return "refresh_benchmarks"
}

// Schedule returns the cron expression
func (j *RefreshBenchmarksJob) Schedule() string {
	return j.schedule
}

// Run refreshes every stale row. Individual failures are logged and counted
// but do not abort the batch; the job only errors when the stale listing
// itself fails.
func (j *RefreshBenchmarksJob) Run(ctx context.Context) error {
	stale, err := j.store.ListStale(ctx, j.refreshAfter)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		j.logger.Debug("No stale benchmarks to refresh")
		return nil
	}

	refreshed, failed := 0, 0
	for _, pair := range stale {
		if err := j.resolver.Refresh(ctx, pair.Sector, pair.Stage); err != nil {
			failed++
			j.logger.WithError(err).WithFields(map[string]interface{}{
				"sector": pair.Sector,
				"stage":  pair.Stage,
			}).Warn("Benchmark refresh failed")
			continue
		}
		refreshed++
	}

	j.logger.WithFields(map[string]interface{}{
		"stale":     len(stale),
		"refreshed": refreshed,
		"failed":    failed,
	}).Info("Benchmark refresh batch completed")

	return nil
}
