package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
)

func testEngine() *Engine {
	return NewEngine(logger.New(&config.Config{LogLevel: "error", LogFormat: "json", Env: "development"}))
}

func testBenchmarks() contracts.BenchmarkSet {
	return contracts.BenchmarkSet{
		AvgRevenueMultiple: 8.0,
		AvgLTVCACRatio:     4.0,
		AcceptableBurnRate: 50000,
		TypicalRunway:      18,
		ValuationRange:     &contracts.ValuationRange{Min: 1000000, Max: 5000000},
	}
}

func TestScore_DimensionThresholds(t *testing.T) {
	e := testEngine()
	benchmarks := testBenchmarks()

	tests := []struct {
		name     string
		metric   string
		value    float64
		dim      string
		expected int
	}{
		{"ltv_cac top band", contracts.MetricLTVCACRatio, 5.5, contracts.DimLTVCACRatio, 10},
		{"ltv_cac above benchmark", contracts.MetricLTVCACRatio, 4.2, contracts.DimLTVCACRatio, 8},
		{"ltv_cac mid band", contracts.MetricLTVCACRatio, 2.8, contracts.DimLTVCACRatio, 6},
		{"ltv_cac low band", contracts.MetricLTVCACRatio, 1.8, contracts.DimLTVCACRatio, 4},
		{"ltv_cac floor", contracts.MetricLTVCACRatio, 0.5, contracts.DimLTVCACRatio, 2},

		{"runway 24 plus", contracts.MetricRunwayMonths, 30, contracts.DimRunway, 10},
		{"runway above benchmark", contracts.MetricRunwayMonths, 20, contracts.DimRunway, 8},
		{"runway above 12", contracts.MetricRunwayMonths, 14, contracts.DimRunway, 6},
		{"runway above 6", contracts.MetricRunwayMonths, 8, contracts.DimRunway, 4},
		{"runway floor", contracts.MetricRunwayMonths, 4, contracts.DimRunway, 2},

		{"multiple cheap", contracts.MetricRevenueMultiple, 6.0, contracts.DimRevenueMultiple, 10},
		{"multiple at benchmark", contracts.MetricRevenueMultiple, 8.0, contracts.DimRevenueMultiple, 8},
		{"multiple slightly above", contracts.MetricRevenueMultiple, 9.0, contracts.DimRevenueMultiple, 6},
		{"multiple premium", contracts.MetricRevenueMultiple, 11.0, contracts.DimRevenueMultiple, 4},
		{"multiple excessive", contracts.MetricRevenueMultiple, 20.0, contracts.DimRevenueMultiple, 2},

		{"burn lean", contracts.MetricMonthlyNetBurn, 20000, contracts.DimBurnEfficiency, 10},
		{"burn acceptable", contracts.MetricMonthlyNetBurn, 45000, contracts.DimBurnEfficiency, 8},
		{"burn elevated", contracts.MetricMonthlyNetBurn, 70000, contracts.DimBurnEfficiency, 6},
		{"burn high", contracts.MetricMonthlyNetBurn, 95000, contracts.DimBurnEfficiency, 4},
		{"burn excessive", contracts.MetricMonthlyNetBurn, 150000, contracts.DimBurnEfficiency, 2},

		{"growth hyper", contracts.MetricCustomerGrowthRate, 25, contracts.DimGrowthTraction, 10},
		{"growth strong", contracts.MetricCustomerGrowthRate, 12, contracts.DimGrowthTraction, 8},
		{"growth moderate", contracts.MetricCustomerGrowthRate, 6, contracts.DimGrowthTraction, 6},
		{"growth slow", contracts.MetricCustomerGrowthRate, 3, contracts.DimGrowthTraction, 4},
		{"growth flat", contracts.MetricCustomerGrowthRate, 1, contracts.DimGrowthTraction, 2},

		{"marketing excellent", contracts.MetricMarketingEfficiency, 6, contracts.DimMarketingEfficiency, 10},
		{"marketing good", contracts.MetricMarketingEfficiency, 3.5, contracts.DimMarketingEfficiency, 8},
		{"marketing fair", contracts.MetricMarketingEfficiency, 2, contracts.DimMarketingEfficiency, 6},
		{"marketing breakeven", contracts.MetricMarketingEfficiency, 1, contracts.DimMarketingEfficiency, 4},
		{"marketing poor", contracts.MetricMarketingEfficiency, 0.5, contracts.DimMarketingEfficiency, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := e.Score(contracts.MetricSet{tt.metric: tt.value}, benchmarks)
			assert.Equal(t, tt.expected, analysis.ScoreBreakdown[tt.dim])
		})
	}
}

func TestScore_ValuationBands(t *testing.T) {
	e := testEngine()
	benchmarks := testBenchmarks()

	tests := []struct {
		name      string
		valuation float64
		expected  int
	}{
		{"inside range", 3000000, 10},
		{"slightly below min", 900000, 8},
		{"slightly above max", 5500000, 6},
		{"well above max", 7000000, 4},
		{"far outside", 20000000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := e.Score(contracts.MetricSet{contracts.MetricImpliedValuation: tt.valuation}, benchmarks)
			assert.Equal(t, tt.expected, analysis.ScoreBreakdown[contracts.DimValuationRange])
		})
	}
}

func TestScore_MissingMetricScoresZero(t *testing.T) {
	e := testEngine()

	analysis := e.Score(contracts.MetricSet{}, testBenchmarks())

	for dim, score := range analysis.ScoreBreakdown {
		assert.Zero(t, score, "dimension %s", dim)
	}
	assert.Zero(t, analysis.FinalScore)
}

func TestScore_LTVCACMonotonic(t *testing.T) {
	e := testEngine()
	benchmarks := testBenchmarks()

	prev := -1
	for _, ratio := range []float64{0.2, 0.9, 1.5, 2.0, 2.5, 3.5, 4.0, 4.5, 5.0, 7.0, 12.0} {
		analysis := e.Score(contracts.MetricSet{contracts.MetricLTVCACRatio: ratio}, benchmarks)
		score := analysis.ScoreBreakdown[contracts.DimLTVCACRatio]
		assert.GreaterOrEqual(t, score, prev, "ratio %.1f decreased the score", ratio)
		prev = score
	}
}

func TestScore_VerdictOverrides(t *testing.T) {
	e := testEngine()
	benchmarks := testBenchmarks()

	// Critical runway overrides everything, even otherwise perfect metrics
	analysis := e.Score(contracts.MetricSet{
		contracts.MetricRunwayMonths:        2,
		contracts.MetricLTVCACRatio:         6.0,
		contracts.MetricCustomerGrowthRate:  25,
		contracts.MetricMarketingEfficiency: 6,
		contracts.MetricMonthlyNetBurn:      10000,
		contracts.MetricRevenueMultiple:     5.0,
		contracts.MetricImpliedValuation:    3000000,
	}, benchmarks)
	assert.Equal(t, contracts.VerdictFailCriticalRunway, analysis.Verdict)

	// Unit economics override fires second
	analysis = e.Score(contracts.MetricSet{
		contracts.MetricRunwayMonths: 20,
		contracts.MetricLTVCACRatio:  0.8,
	}, benchmarks)
	assert.Equal(t, contracts.VerdictFailUnitEconomics, analysis.Verdict)

	// Overvaluation override fires third
	analysis = e.Score(contracts.MetricSet{
		contracts.MetricRunwayMonths:     20,
		contracts.MetricLTVCACRatio:      4.0,
		contracts.MetricImpliedValuation: 8000000,
	}, benchmarks)
	assert.Equal(t, contracts.VerdictFailOvervalued, analysis.Verdict)
}

func TestScore_VerdictBands(t *testing.T) {
	e := testEngine()
	benchmarks := testBenchmarks()

	// All dimensions at 10 yields a strong pass
	analysis := e.Score(contracts.MetricSet{
		contracts.MetricLTVCACRatio:         6.0,
		contracts.MetricRunwayMonths:        30,
		contracts.MetricRevenueMultiple:     5.0,
		contracts.MetricImpliedValuation:    3000000,
		contracts.MetricMonthlyNetBurn:      20000,
		contracts.MetricCustomerGrowthRate:  25,
		contracts.MetricMarketingEfficiency: 6,
	}, benchmarks)
	assert.Equal(t, 10.0, analysis.FinalScore)
	assert.Equal(t, contracts.VerdictStrongPass, analysis.Verdict)

	// No metrics at all lands in the FAIL band without an override
	analysis = e.Score(contracts.MetricSet{}, benchmarks)
	assert.Equal(t, contracts.VerdictFail, analysis.Verdict)
}

func TestScore_WeightedAggregation(t *testing.T) {
	e := testEngine()
	benchmarks := testBenchmarks()

	// Only LTV:CAC present at score 10: weighted contribution 0.25 * 10
	analysis := e.Score(contracts.MetricSet{contracts.MetricLTVCACRatio: 6.0}, benchmarks)
	assert.Equal(t, 2.5, analysis.FinalScore)
}

func TestScore_FindingsGenerated(t *testing.T) {
	e := testEngine()
	benchmarks := testBenchmarks()

	analysis := e.Score(contracts.MetricSet{
		contracts.MetricLTVCACRatio:     6.0,
		contracts.MetricRunwayMonths:    2,
		contracts.MetricRevenueMultiple: 20.0,
	}, benchmarks)

	assert.NotEmpty(t, analysis.Strengths)
	assert.NotEmpty(t, analysis.Weaknesses)
	assert.NotEmpty(t, analysis.RiskFactors)
	require.NotEmpty(t, analysis.DetailedRecommendation)
	assert.Contains(t, analysis.DetailedRecommendation, "Overall:")
}
