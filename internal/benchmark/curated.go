package benchmark

import (
	"github.com/saisirisha1111/pitchlens/internal/contracts"
)

// curatedEntry is one hand-maintained sector/stage benchmark row
type curatedEntry struct {
	avgRevenueMultiple float64
	avgLTVCACRatio     float64
	typicalRunway      float64
}

// Curated industry data used when neither the store nor web search can
// produce a validated benchmark set.
var curatedBenchmarks = map[string]map[string]curatedEntry{
	"SaaS": {
		contracts.StageSeed:    {avgRevenueMultiple: 8.5, avgLTVCACRatio: 4.2, typicalRunway: 20},
		contracts.StageSeriesA: {avgRevenueMultiple: 12.0, avgLTVCACRatio: 3.8, typicalRunway: 24},
	},
	"E-commerce": {
		contracts.StageSeed:    {avgRevenueMultiple: 4.2, avgLTVCACRatio: 2.8, typicalRunway: 14},
		contracts.StageSeriesA: {avgRevenueMultiple: 6.5, avgLTVCACRatio: 3.2, typicalRunway: 18},
	},
	"FinTech": {
		contracts.StageSeed:    {avgRevenueMultiple: 10.5, avgLTVCACRatio: 4.8, typicalRunway: 22},
		contracts.StageSeriesA: {avgRevenueMultiple: 15.0, avgLTVCACRatio: 4.2, typicalRunway: 26},
	},
	"HealthTech": {
		contracts.StageSeed:    {avgRevenueMultiple: 9.5, avgLTVCACRatio: 4.0, typicalRunway: 21},
		contracts.StageSeriesA: {avgRevenueMultiple: 14.0, avgLTVCACRatio: 3.7, typicalRunway: 25},
	},
}

// Base valuation ranges by funding stage, in USD
var stageValuationRanges = map[string]contracts.ValuationRange{
	contracts.StagePreSeed: {Min: 250000, Max: 2000000},
	contracts.StageSeed:    {Min: 500000, Max: 5000000},
	contracts.StageSeriesA: {Min: 3000000, Max: 15000000},
	contracts.StageSeriesB: {Min: 15000000, Max: 50000000},
	contracts.StageSeriesC: {Min: 50000000, Max: 100000000},
	contracts.StageSeriesD: {Min: 100000000, Max: 500000000},
}

// Some sectors command higher valuations than the stage baseline
var sectorValuationMultipliers = map[string]float64{
	"AI":          1.8,
	"FinTech":     1.6,
	"HealthTech":  1.5,
	"SaaS":        1.4,
	"CleanTech":   1.3,
	"Biotech":     2.0,
	"E-commerce":  0.9,
	"Marketplace": 1.2,
	"Hardware":    0.8,
}

// Generic defaults for sector/stage pairs absent from the curated tables
const (
	defaultRevenueMultiple = 6.0
	defaultLTVCACRatio     = 3.5
	defaultBurnRate        = 50000
	defaultRunway          = 18
)

// DefaultValuationRange returns the expected valuation band for a sector
// and stage, scaling the stage baseline by the sector multiplier.
func DefaultValuationRange(sector, stage string) contracts.ValuationRange {
	base, ok := stageValuationRanges[contracts.NormalizeStage(stage)]
	if !ok {
		base = stageValuationRanges[contracts.StageSeed]
	}

	multiplier := 1.0
	if m, ok := sectorValuationMultipliers[sector]; ok {
		multiplier = m
	}

	return contracts.ValuationRange{
		Min: base.Min * multiplier,
		Max: base.Max * multiplier,
	}
}

// Curated returns the static benchmark set for a sector/stage pair, falling
// back to generic startup defaults when the pair is unknown. Always succeeds.
func Curated(sector, stage string) contracts.BenchmarkSet {
	valuationRange := DefaultValuationRange(sector, stage)

	if sectorData, ok := curatedBenchmarks[sector]; ok {
		if entry, ok := sectorData[contracts.NormalizeStage(stage)]; ok {
			return contracts.BenchmarkSet{
				AvgRevenueMultiple: entry.avgRevenueMultiple,
				AvgLTVCACRatio:     entry.avgLTVCACRatio,
				AcceptableBurnRate: defaultBurnRate,
				TypicalRunway:      entry.typicalRunway,
				ValuationRange:     &valuationRange,
				DataSource:         contracts.SourceCuratedFallback,
			}
		}
	}

	return contracts.BenchmarkSet{
		AvgRevenueMultiple: defaultRevenueMultiple,
		AvgLTVCACRatio:     defaultLTVCACRatio,
		AcceptableBurnRate: defaultBurnRate,
		TypicalRunway:      defaultRunway,
		ValuationRange:     &valuationRange,
		DataSource:         contracts.SourceCuratedFallback,
	}
}
