package benchmark

import (
	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
)

// numericRange is an inclusive realistic bound for one benchmark metric
type numericRange struct {
	min float64
	max float64
}

const defaultRangeKey = "default"

// Realistic per-stage bounds. Web-search candidates outside these are
// treated as extraction noise.
var realisticRanges = map[string]map[string]numericRange{
	"avg_revenue_multiple": {
		contracts.StageSeed:    {3.0, 12.0},
		contracts.StageSeriesA: {6.0, 20.0},
		contracts.StageSeriesB: {8.0, 25.0},
		contracts.StageSeriesC: {10.0, 30.0},
		defaultRangeKey:        {4.0, 15.0},
	},
	"avg_ltv_cac_ratio": {
		contracts.StageSeed:    {2.0, 6.0},
		contracts.StageSeriesA: {2.5, 5.5},
		contracts.StageSeriesB: {3.0, 5.0},
		contracts.StageSeriesC: {3.5, 4.5},
		defaultRangeKey:        {2.0, 5.0},
	},
	"typical_runway": {
		contracts.StageSeed:    {12, 24},
		contracts.StageSeriesA: {18, 36},
		contracts.StageSeriesB: {24, 48},
		contracts.StageSeriesC: {30, 60},
		defaultRangeKey:        {12, 36},
	},
	"acceptable_burn_rate": {
		contracts.StageSeed:    {10000, 100000},
		contracts.StageSeriesA: {50000, 300000},
		contracts.StageSeriesB: {100000, 500000},
		contracts.StageSeriesC: {250000, 1000000},
		defaultRangeKey:        {20000, 200000},
	},
}

// Realistic valuation bands per stage, in USD
var realisticValuationRanges = map[string]numericRange{
	contracts.StagePreSeed: {250000, 2000000},
	contracts.StageSeed:    {500000, 5000000},
	contracts.StageSeriesA: {3000000, 15000000},
	contracts.StageSeriesB: {15000000, 50000000},
	contracts.StageSeriesC: {50000000, 100000000},
	contracts.StageSeriesD: {100000000, 500000000},
	defaultRangeKey:        {500000, 10000000},
}

// Acceptance requires at least 70% of applicable range checks and 70% of
// applicable consistency checks to pass.
const acceptanceThreshold = 0.7

// Maximum implied total funding used by the burn-vs-runway sanity check
const impliedFundingCeiling = 2000000

// ValidationReport summarizes the gate decision for logging and tests
type ValidationReport struct {
	Passed            bool
	MissingRequired   []string
	RangeChecks       int
	RangePassed       int
	ConsistencyChecks int
	ConsistencyPassed int
}

// Validator is the tier-2 acceptance gate for web-search candidates
type Validator struct {
	logger *logger.Logger
}

// NewValidator creates a new validation gate
func NewValidator(log *logger.Logger) *Validator {
	return &Validator{logger: log}
}

// Validate decides whether an extracted candidate is trustworthy for the
// given stage. Both required metrics must be present, each present metric
// must sit in its stage-specific realistic range, and cross-metric
// consistency checks must mostly agree.
func (v *Validator) Validate(candidate *contracts.BenchmarkCandidate, stage string) ValidationReport {
	report := ValidationReport{}
	stage = contracts.NormalizeStage(stage)

	// Required metrics
	if candidate == nil || candidate.AvgRevenueMultiple == nil {
		report.MissingRequired = append(report.MissingRequired, "avg_revenue_multiple")
	}
	if candidate == nil || candidate.AvgLTVCACRatio == nil {
		report.MissingRequired = append(report.MissingRequired, "avg_ltv_cac_ratio")
	}
	if len(report.MissingRequired) > 0 {
		v.logger.WithFields(map[string]interface{}{
			"stage":   stage,
			"missing": report.MissingRequired,
		}).Debug("Benchmark candidate rejected: required metrics missing")
		return report
	}

	// Individual metric range checks
	v.checkRange(&report, "avg_revenue_multiple", candidate.AvgRevenueMultiple, stage)
	v.checkRange(&report, "avg_ltv_cac_ratio", candidate.AvgLTVCACRatio, stage)
	v.checkRange(&report, "typical_runway", candidate.TypicalRunway, stage)
	v.checkRange(&report, "acceptable_burn_rate", candidate.AcceptableBurnRate, stage)

	// Valuation range check
	if candidate.ValuationRange != nil {
		report.RangeChecks++
		bounds, ok := realisticValuationRanges[stage]
		if !ok {
			bounds = realisticValuationRanges[defaultRangeKey]
		}
		vr := candidate.ValuationRange
		if vr.Min < vr.Max &&
			vr.Min >= bounds.min && vr.Min <= bounds.max &&
			vr.Max >= bounds.min && vr.Max <= bounds.max {
			report.RangePassed++
		}
	}

	// Cross-metric consistency checks
	v.checkConsistency(&report, candidate)

	rangeRate := 1.0
	if report.RangeChecks > 0 {
		rangeRate = float64(report.RangePassed) / float64(report.RangeChecks)
	}
	consistencyRate := 1.0
	if report.ConsistencyChecks > 0 {
		consistencyRate = float64(report.ConsistencyPassed) / float64(report.ConsistencyChecks)
	}

	report.Passed = rangeRate >= acceptanceThreshold && consistencyRate >= acceptanceThreshold

	v.logger.WithFields(map[string]interface{}{
		"stage":              stage,
		"range_passed":       report.RangePassed,
		"range_checks":       report.RangeChecks,
		"consistency_passed": report.ConsistencyPassed,
		"consistency_checks": report.ConsistencyChecks,
		"accepted":           report.Passed,
	}).Debug("Benchmark candidate validated")

	return report
}

// checkRange validates one metric against its stage-specific bounds
func (v *Validator) checkRange(report *ValidationReport, metric string, value *float64, stage string) {
	if value == nil {
		return
	}

	report.RangeChecks++

	stageRanges := realisticRanges[metric]
	bounds, ok := stageRanges[stage]
	if !ok {
		bounds = stageRanges[defaultRangeKey]
	}

	if *value >= bounds.min && *value <= bounds.max {
		report.RangePassed++
	}
}

// checkConsistency runs the cross-metric sanity checks; each check is
// applicable only when its inputs are present.
func (v *Validator) checkConsistency(report *ValidationReport, candidate *contracts.BenchmarkCandidate) {
	// Higher LTV:CAC should correlate with a higher revenue multiple.
	// Rough heuristic: multiple >= 1.5 x ratio.
	if candidate.AvgRevenueMultiple != nil && candidate.AvgLTVCACRatio != nil {
		report.ConsistencyChecks++
		if *candidate.AvgRevenueMultiple >= *candidate.AvgLTVCACRatio*1.5 {
			report.ConsistencyPassed++
		}
	}

	// Burn must be sustainable over the runway given an implied total
	// funding ceiling (typical seed: $50k x 18 months = $900k raised).
	if candidate.AcceptableBurnRate != nil && candidate.TypicalRunway != nil && *candidate.TypicalRunway > 0 {
		report.ConsistencyChecks++
		if *candidate.AcceptableBurnRate <= impliedFundingCeiling / *candidate.TypicalRunway {
			report.ConsistencyPassed++
		}
	}

	// Valuation band should not span more than one order of magnitude
	if candidate.ValuationRange != nil {
		report.ConsistencyChecks++
		vr := candidate.ValuationRange
		if vr.Min > 0 && vr.Min < vr.Max && vr.Max/vr.Min <= 10 {
			report.ConsistencyPassed++
		}
	}
}
