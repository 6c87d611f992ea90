package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
)

// Repository persists completed evaluations for later review and for the
// benchmark refresh job's usage statistics.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new evaluation history repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveEvaluation writes one evaluation row. The full result is stored as
// JSONB alongside the headline columns used for filtering.
func (r *Repository) SaveEvaluation(ctx context.Context, record *contracts.StartupRecord, result *contracts.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO analysis.evaluations
			(startup_name, sector, stage, final_score, verdict,
			 benchmark_source, result, evaluated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err = r.pool.Exec(ctx, query,
		record.StartupName,
		record.Sector,
		record.StageOrDefault(),
		result.InvestmentAnalysis.FinalScore,
		result.InvestmentAnalysis.Verdict,
		result.IndustryBenchmarks.DataSource,
		payload,
	)
	return err
}

// EvaluationSummary is one row of recent evaluation history
type EvaluationSummary struct {
	StartupName string    `json:"startup_name"`
	Sector      string    `json:"sector"`
	Stage       string    `json:"stage"`
	FinalScore  float64   `json:"final_score"`
	Verdict     string    `json:"verdict"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// RecentEvaluations returns the newest evaluations, most recent first
func (r *Repository) RecentEvaluations(ctx context.Context, limit int) ([]EvaluationSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT startup_name, sector, stage, final_score, verdict, evaluated_at
		FROM analysis.evaluations
		ORDER BY evaluated_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []EvaluationSummary
	for rows.Next() {
		var s EvaluationSummary
		if err := rows.Scan(&s.StartupName, &s.Sector, &s.Stage, &s.FinalScore, &s.Verdict, &s.EvaluatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
