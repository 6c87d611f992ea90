package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{LogLevel: "error", LogFormat: "json", Env: "development"})
}

func fptr(v float64) *float64 {
	return &v
}

func TestValidate_MissingRequiredMetricsRejects(t *testing.T) {
	v := NewValidator(testLogger())

	tests := []struct {
		name      string
		candidate *contracts.BenchmarkCandidate
	}{
		{"nil candidate", nil},
		{"empty candidate", &contracts.BenchmarkCandidate{}},
		{"only revenue multiple", &contracts.BenchmarkCandidate{AvgRevenueMultiple: fptr(6.0)}},
		{"only ltv cac", &contracts.BenchmarkCandidate{AvgLTVCACRatio: fptr(3.5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := v.Validate(tt.candidate, "seed")
			assert.False(t, report.Passed)
			assert.NotEmpty(t, report.MissingRequired)
		})
	}
}

func TestValidate_RealisticSeedCandidatePasses(t *testing.T) {
	v := NewValidator(testLogger())

	report := v.Validate(&contracts.BenchmarkCandidate{
		AvgRevenueMultiple: fptr(8.0),
		AvgLTVCACRatio:     fptr(4.0),
		TypicalRunway:      fptr(18.0),
		AcceptableBurnRate: fptr(50000.0),
		ValuationRange:     &contracts.ValuationRange{Min: 1000000, Max: 4000000},
	}, "seed")

	assert.True(t, report.Passed)
	assert.Equal(t, report.RangeChecks, report.RangePassed)
}

func TestValidate_AbsurdRevenueMultipleRejects(t *testing.T) {
	v := NewValidator(testLogger())

	// 100x revenue at seed is extraction noise, and a lone failing check
	// among two sinks the range rate below 70%
	report := v.Validate(&contracts.BenchmarkCandidate{
		AvgRevenueMultiple: fptr(100.0),
		AvgLTVCACRatio:     fptr(4.0),
	}, "seed")

	assert.False(t, report.Passed)
	assert.Less(t, report.RangePassed, report.RangeChecks)
}

func TestValidate_InconsistentMultipleVsRatio(t *testing.T) {
	v := NewValidator(testLogger())

	// Multiple below 1.5x the LTV:CAC ratio fails the consistency heuristic
	report := v.Validate(&contracts.BenchmarkCandidate{
		AvgRevenueMultiple: fptr(4.0),
		AvgLTVCACRatio:     fptr(5.0),
	}, "seed")

	assert.False(t, report.Passed)
	assert.Zero(t, report.ConsistencyPassed)
}

func TestValidate_BurnBeyondImpliedFundingFails(t *testing.T) {
	v := NewValidator(testLogger())

	// 300k/month over 24 months implies 7.2M total funding, above the 2M
	// ceiling check; burn is also outside the seed realistic range
	report := v.Validate(&contracts.BenchmarkCandidate{
		AvgRevenueMultiple: fptr(8.0),
		AvgLTVCACRatio:     fptr(4.0),
		TypicalRunway:      fptr(24.0),
		AcceptableBurnRate: fptr(300000.0),
	}, "seed")

	assert.False(t, report.Passed)
}

func TestValidate_ValuationSpreadCheck(t *testing.T) {
	v := NewValidator(testLogger())

	// min >= max fails the valuation range check
	report := v.Validate(&contracts.BenchmarkCandidate{
		AvgRevenueMultiple: fptr(8.0),
		AvgLTVCACRatio:     fptr(4.0),
		ValuationRange:     &contracts.ValuationRange{Min: 4000000, Max: 1000000},
	}, "seed")
	assert.Less(t, report.RangePassed, report.RangeChecks)

	// A spread above 10x fails the consistency check
	report = v.Validate(&contracts.BenchmarkCandidate{
		AvgRevenueMultiple: fptr(8.0),
		AvgLTVCACRatio:     fptr(4.0),
		ValuationRange:     &contracts.ValuationRange{Min: 100000, Max: 5000000},
	}, "seed")
	assert.Less(t, report.ConsistencyPassed, report.ConsistencyChecks)
}

func TestValidate_UnknownStageUsesDefaultRanges(t *testing.T) {
	v := NewValidator(testLogger())

	report := v.Validate(&contracts.BenchmarkCandidate{
		AvgRevenueMultiple: fptr(8.0),
		AvgLTVCACRatio:     fptr(3.5),
	}, "series_f")

	assert.True(t, report.Passed)
}
