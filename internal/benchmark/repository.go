package benchmark

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
)

// Repository implements contracts.BenchmarkStore on PostgreSQL.
// The table mirrors the warehouse schema the ingestion pipeline reads, so
// the data_source tag keeps its historical bigquery_exact_match value.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new benchmark repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ contracts.BenchmarkStore = (*Repository)(nil)

// Get retrieves the benchmark row for an exact (sector, stage) match.
// Returns (nil, nil) when no row exists.
func (r *Repository) Get(ctx context.Context, sector, stage string) (*contracts.BenchmarkSet, error) {
	query := `
		SELECT avg_revenue_multiple, avg_ltv_cac_ratio,
		       acceptable_burn_rate, typical_runway,
		       min_valuation, max_valuation
		FROM benchmarks.industry_benchmarks
		WHERE sector = $1 AND stage = $2
		LIMIT 1
	`

	var b contracts.BenchmarkSet
	var minVal, maxVal float64
	err := r.pool.QueryRow(ctx, query, sector, stage).Scan(
		&b.AvgRevenueMultiple, &b.AvgLTVCACRatio,
		&b.AcceptableBurnRate, &b.TypicalRunway,
		&minVal, &maxVal,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	b.ValuationRange = &contracts.ValuationRange{Min: minVal, Max: maxVal}
	return &b, nil
}

// Insert upserts a benchmark row. Concurrent writers for the same key are
// a harmless overwrite, matching the resolver's write-through semantics.
func (r *Repository) Insert(ctx context.Context, sector, stage string, benchmarks contracts.BenchmarkSet) error {
	query := `
		INSERT INTO benchmarks.industry_benchmarks
			(sector, stage, avg_revenue_multiple, avg_ltv_cac_ratio,
			 acceptable_burn_rate, typical_runway,
			 min_valuation, max_valuation, data_source, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (sector, stage) DO UPDATE SET
			avg_revenue_multiple = EXCLUDED.avg_revenue_multiple,
			avg_ltv_cac_ratio    = EXCLUDED.avg_ltv_cac_ratio,
			acceptable_burn_rate = EXCLUDED.acceptable_burn_rate,
			typical_runway       = EXCLUDED.typical_runway,
			min_valuation        = EXCLUDED.min_valuation,
			max_valuation        = EXCLUDED.max_valuation,
			data_source          = EXCLUDED.data_source,
			last_updated         = NOW()
	`

	minVal, maxVal := 500000.0, 5000000.0
	if benchmarks.ValuationRange != nil {
		minVal = benchmarks.ValuationRange.Min
		maxVal = benchmarks.ValuationRange.Max
	}

	dataSource := benchmarks.DataSource
	if dataSource == "" {
		dataSource = contracts.SourceWebSearch
	}

	_, err := r.pool.Exec(ctx, query,
		sector, stage,
		benchmarks.AvgRevenueMultiple, benchmarks.AvgLTVCACRatio,
		benchmarks.AcceptableBurnRate, benchmarks.TypicalRunway,
		minVal, maxVal, dataSource,
	)
	return err
}

// ListStale returns the (sector, stage) pairs whose rows have not been
// refreshed within the given window. Used by the scheduler.
func (r *Repository) ListStale(ctx context.Context, olderThan time.Duration) ([]contracts.SectorStage, error) {
	query := `
		SELECT sector, stage
		FROM benchmarks.industry_benchmarks
		WHERE last_updated < $1
		ORDER BY last_updated ASC
	`

	rows, err := r.pool.Query(ctx, query, time.Now().Add(-olderThan))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stale []contracts.SectorStage
	for rows.Next() {
		var ss contracts.SectorStage
		if err := rows.Scan(&ss.Sector, &ss.Stage); err != nil {
			return nil, err
		}
		stale = append(stale, ss)
	}
	return stale, rows.Err()
}
