package scoring

import (
	"math"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
)

// Fixed dimension weights. They sum to 1.0 so the final score stays on the
// same 0-10 scale as the per-dimension scores.
var dimensionWeights = map[string]float64{
	contracts.DimLTVCACRatio:         0.25,
	contracts.DimRunway:              0.20,
	contracts.DimBurnEfficiency:      0.15,
	contracts.DimRevenueMultiple:     0.10,
	contracts.DimValuationRange:      0.10,
	contracts.DimGrowthTraction:      0.10,
	contracts.DimMarketingEfficiency: 0.10,
}

// Engine scores derived metrics against industry benchmarks and renders the
// verdict. Pure function over its inputs; safe for concurrent use.
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates a scoring engine
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Score evaluates the seven dimensions, aggregates the weighted final score
// and applies the verdict decision table. A dimension whose metric is
// missing scores 0 but still carries its weight, pulling the final score
// down rather than inflating it.
func (e *Engine) Score(metrics contracts.MetricSet, benchmarks contracts.BenchmarkSet) contracts.InvestmentAnalysis {
	breakdown := contracts.ScoreBreakdown{
		contracts.DimLTVCACRatio:         e.scoreLTVCAC(metrics, benchmarks),
		contracts.DimValuationRange:      e.scoreValuation(metrics, benchmarks),
		contracts.DimRunway:              e.scoreRunway(metrics, benchmarks),
		contracts.DimRevenueMultiple:     e.scoreRevenueMultiple(metrics, benchmarks),
		contracts.DimBurnEfficiency:      e.scoreBurnEfficiency(metrics, benchmarks),
		contracts.DimGrowthTraction:      e.scoreGrowthTraction(metrics),
		contracts.DimMarketingEfficiency: e.scoreMarketingEfficiency(metrics),
	}

	finalScore := 0.0
	for dim, score := range breakdown {
		finalScore += float64(score) * dimensionWeights[dim]
	}
	finalScore = math.Round(finalScore*100) / 100

	verdict := e.verdict(finalScore, metrics, benchmarks)

	strengths, weaknesses, risks := findings(metrics, benchmarks)

	analysis := contracts.InvestmentAnalysis{
		ScoreBreakdown:         breakdown,
		Strengths:              strengths,
		Weaknesses:             weaknesses,
		RiskFactors:            risks,
		FinalScore:             finalScore,
		Verdict:                verdict,
		DetailedRecommendation: detailedRecommendation(breakdown, metrics, benchmarks, verdict),
	}

	e.logger.WithFields(map[string]interface{}{
		"final_score": finalScore,
		"verdict":     verdict,
	}).Debug("Investment analysis scored")

	return analysis
}

// verdict applies the decision table. Hard overrides fire in order before
// the score bands; an override only applies when its metric is present.
func (e *Engine) verdict(finalScore float64, metrics contracts.MetricSet, benchmarks contracts.BenchmarkSet) string {
	if runway, ok := metrics.Get(contracts.MetricRunwayMonths); ok && runway < 3 {
		return contracts.VerdictFailCriticalRunway
	}
	if ratio, ok := metrics.Get(contracts.MetricLTVCACRatio); ok && ratio < 1.0 {
		return contracts.VerdictFailUnitEconomics
	}
	if valuation, ok := metrics.Get(contracts.MetricImpliedValuation); ok && benchmarks.ValuationRange != nil {
		if valuation > benchmarks.ValuationRange.Max*1.5 {
			return contracts.VerdictFailOvervalued
		}
	}

	switch {
	case finalScore >= 8.5:
		return contracts.VerdictStrongPass
	case finalScore >= 7.0:
		return contracts.VerdictPass
	case finalScore >= 5.5:
		return contracts.VerdictWeakPass
	case finalScore >= 4.0:
		return contracts.VerdictHold
	default:
		return contracts.VerdictFail
	}
}

func (e *Engine) scoreLTVCAC(metrics contracts.MetricSet, benchmarks contracts.BenchmarkSet) int {
	ratio, ok := metrics.Get(contracts.MetricLTVCACRatio)
	if !ok {
		return 0
	}
	switch {
	case ratio >= 5:
		return 10
	case ratio >= benchmarks.AvgLTVCACRatio:
		return 8
	case ratio >= 2.5:
		return 6
	case ratio >= 1.5:
		return 4
	default:
		return 2
	}
}

func (e *Engine) scoreValuation(metrics contracts.MetricSet, benchmarks contracts.BenchmarkSet) int {
	valuation, ok := metrics.Get(contracts.MetricImpliedValuation)
	if !ok || benchmarks.ValuationRange == nil {
		return 0
	}
	vr := benchmarks.ValuationRange
	switch {
	case valuation >= vr.Min && valuation <= vr.Max:
		return 10
	case valuation >= vr.Min/1.2 && valuation < vr.Min:
		return 8
	case valuation > vr.Max && valuation <= vr.Max*1.2:
		return 6
	case valuation > vr.Max && valuation <= vr.Max*1.5:
		return 4
	default:
		return 2
	}
}

func (e *Engine) scoreRunway(metrics contracts.MetricSet, benchmarks contracts.BenchmarkSet) int {
	runway, ok := metrics.Get(contracts.MetricRunwayMonths)
	if !ok {
		return 0
	}
	switch {
	case runway >= 24:
		return 10
	case runway >= benchmarks.TypicalRunway:
		return 8
	case runway >= 12:
		return 6
	case runway >= 6:
		return 4
	default:
		return 2
	}
}

// Lower is better: a cheap revenue multiple relative to the sector average
// means the ask is conservative.
func (e *Engine) scoreRevenueMultiple(metrics contracts.MetricSet, benchmarks contracts.BenchmarkSet) int {
	multiple, ok := metrics.Get(contracts.MetricRevenueMultiple)
	if !ok || benchmarks.AvgRevenueMultiple <= 0 {
		return 0
	}
	avg := benchmarks.AvgRevenueMultiple
	switch {
	case multiple <= avg*0.8:
		return 10
	case multiple <= avg:
		return 8
	case multiple <= avg*1.2:
		return 6
	case multiple <= avg*1.5:
		return 4
	default:
		return 2
	}
}

func (e *Engine) scoreBurnEfficiency(metrics contracts.MetricSet, benchmarks contracts.BenchmarkSet) int {
	burn, ok := metrics.Get(contracts.MetricMonthlyNetBurn)
	if !ok || benchmarks.AcceptableBurnRate <= 0 {
		return 0
	}
	acceptable := benchmarks.AcceptableBurnRate
	burn = math.Abs(burn)
	switch {
	case burn <= acceptable*0.5:
		return 10
	case burn <= acceptable:
		return 8
	case burn <= acceptable*1.5:
		return 6
	case burn <= acceptable*2:
		return 4
	default:
		return 2
	}
}

func (e *Engine) scoreGrowthTraction(metrics contracts.MetricSet) int {
	growth, ok := metrics.Get(contracts.MetricCustomerGrowthRate)
	if !ok {
		return 0
	}
	switch {
	case growth >= 20:
		return 10
	case growth >= 10:
		return 8
	case growth >= 5:
		return 6
	case growth >= 2:
		return 4
	default:
		return 2
	}
}

func (e *Engine) scoreMarketingEfficiency(metrics contracts.MetricSet) int {
	efficiency, ok := metrics.Get(contracts.MetricMarketingEfficiency)
	if !ok {
		return 0
	}
	switch {
	case efficiency >= 5:
		return 10
	case efficiency >= 3:
		return 8
	case efficiency >= 1.5:
		return 6
	case efficiency >= 1:
		return 4
	default:
		return 2
	}
}
