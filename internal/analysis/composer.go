package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/saisirisha1111/pitchlens/internal/benchmark"
	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/internal/metrics"
	"github.com/saisirisha1111/pitchlens/internal/scoring"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
)

// Composer orchestrates the evaluation pipeline: metric calculation,
// benchmark resolution and scoring. Each call is independent; the composer
// holds no per-evaluation state.
type Composer struct {
	resolver *benchmark.Resolver
	engine   *scoring.Engine
	history  *Repository
	logger   *logger.Logger
}

// NewComposer wires the pipeline. history may be nil when no warehouse is
// configured; evaluation results are then simply not recorded.
func NewComposer(resolver *benchmark.Resolver, engine *scoring.Engine, history *Repository, log *logger.Logger) *Composer {
	return &Composer{
		resolver: resolver,
		engine:   engine,
		history:  history,
		logger:   log,
	}
}

// Analyze runs the full evaluation for one startup record. Any failure in
// the pipeline, panics included, is converted into an error so callers can
// emit the {"error": ...} envelope instead of a partial result.
func (c *Composer) Analyze(ctx context.Context, record *contracts.StartupRecord) (result *contracts.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("Financial analysis failed: %v", r)
		}
	}()

	calculated := metrics.Calculate(record.Financials, record.Traction)

	benchmarks, err := c.resolver.Resolve(ctx, record.Sector, record.StageOrDefault())
	if err != nil {
		return nil, fmt.Errorf("Financial analysis failed: %w", err)
	}

	investment := c.engine.Score(calculated, benchmarks)

	result = &contracts.AnalysisResult{
		CalculatedMetrics:  calculated,
		IndustryBenchmarks: benchmarks,
		InvestmentAnalysis: investment,
		AnalysisConclusion: conclusion(calculated, benchmarks, record),
		Recommendation:     recommendation(calculated, benchmarks),
	}

	c.recordEvaluation(ctx, record, result)

	c.logger.WithFields(map[string]interface{}{
		"startup":     record.StartupName,
		"sector":      record.Sector,
		"stage":       record.StageOrDefault(),
		"final_score": investment.FinalScore,
		"verdict":     investment.Verdict,
	}).Info("Evaluation completed")

	return result, nil
}

// recordEvaluation persists the outcome to the evaluation warehouse.
// Best effort: a write failure is logged, never surfaced to the caller.
func (c *Composer) recordEvaluation(ctx context.Context, record *contracts.StartupRecord, result *contracts.AnalysisResult) {
	if c.history == nil {
		return
	}
	if err := c.history.SaveEvaluation(ctx, record, result); err != nil {
		c.logger.WithError(err).WithField("startup", record.StartupName).Warn("Evaluation history write failed")
	}
}

// conclusion builds the narrative summary from the same comparisons the
// scoring engine makes, in investor-memo phrasing.
func conclusion(calculated contracts.MetricSet, benchmarks contracts.BenchmarkSet, record *contracts.StartupRecord) string {
	var conclusions []string

	if multiple, ok := calculated.Get(contracts.MetricRevenueMultiple); ok {
		avg := benchmarks.AvgRevenueMultiple
		switch {
		case multiple > avg*1.5:
			conclusions = append(conclusions, fmt.Sprintf("High valuation multiple (%.1fx vs industry avg %.1fx)", multiple, avg))
		case multiple < avg*0.7:
			conclusions = append(conclusions, fmt.Sprintf("Conservative valuation multiple (%.1fx)", multiple))
		default:
			conclusions = append(conclusions, fmt.Sprintf("Reasonable valuation multiple (%.1fx)", multiple))
		}
	}

	if runway, ok := calculated.Get(contracts.MetricRunwayMonths); ok {
		switch {
		case runway < 12:
			conclusions = append(conclusions, fmt.Sprintf("Short runway (%.1f months) - urgent need for funding", runway))
		case runway > 24:
			conclusions = append(conclusions, fmt.Sprintf("Comfortable runway (%.1f months)", runway))
		default:
			conclusions = append(conclusions, fmt.Sprintf("Adequate runway (%.1f months)", runway))
		}
	}

	switch record.Traction.MRRGrowthTrend {
	case "steep":
		conclusions = append(conclusions, "Strong growth trajectory indicated")
	case "flat":
		conclusions = append(conclusions, "Flat growth trajectory - requires investigation")
	}

	if len(conclusions) == 0 {
		return "Insufficient data for detailed analysis."
	}
	return strings.Join(conclusions, ". ") + "."
}

// recommendation is the short valuation-focused call, keyed off the revenue
// multiple alone.
func recommendation(calculated contracts.MetricSet, benchmarks contracts.BenchmarkSet) string {
	multiple, ok := calculated.Get(contracts.MetricRevenueMultiple)
	if !ok {
		return "Cannot assess valuation without revenue data"
	}

	switch {
	case multiple <= benchmarks.AvgRevenueMultiple:
		return "Valuation appears reasonable based on revenue multiples"
	case multiple <= benchmarks.AvgRevenueMultiple*1.3:
		return "Slightly premium valuation, justified by strong growth"
	default:
		return "High valuation multiple - requires exceptional growth justification"
	}
}
