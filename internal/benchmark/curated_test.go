package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
)

func TestCurated_KnownPairs(t *testing.T) {
	tests := []struct {
		sector           string
		stage            string
		expectedMultiple float64
		expectedRatio    float64
		expectedRunway   float64
	}{
		{"SaaS", "seed", 8.5, 4.2, 20},
		{"SaaS", "series_a", 12.0, 3.8, 24},
		{"E-commerce", "seed", 4.2, 2.8, 14},
		{"FinTech", "series_a", 15.0, 4.2, 26},
		{"HealthTech", "seed", 9.5, 4.0, 21},
	}

	for _, tt := range tests {
		t.Run(tt.sector+"/"+tt.stage, func(t *testing.T) {
			set := Curated(tt.sector, tt.stage)

			assert.Equal(t, tt.expectedMultiple, set.AvgRevenueMultiple)
			assert.Equal(t, tt.expectedRatio, set.AvgLTVCACRatio)
			assert.Equal(t, tt.expectedRunway, set.TypicalRunway)
			assert.Equal(t, contracts.SourceCuratedFallback, set.DataSource)
			require.NotNil(t, set.ValuationRange)
			assert.Less(t, set.ValuationRange.Min, set.ValuationRange.Max)
		})
	}
}

func TestCurated_UnknownPairUsesDefaults(t *testing.T) {
	set := Curated("SpaceTech", "series_b")

	assert.Equal(t, 6.0, set.AvgRevenueMultiple)
	assert.Equal(t, 3.5, set.AvgLTVCACRatio)
	assert.Equal(t, 50000.0, set.AcceptableBurnRate)
	assert.Equal(t, 18.0, set.TypicalRunway)
	assert.Equal(t, contracts.SourceCuratedFallback, set.DataSource)
}

func TestCurated_StageLabelNormalization(t *testing.T) {
	// Ingestion-layer labels resolve to the same rows as lookup keys
	assert.Equal(t, Curated("SaaS", "seed"), Curated("SaaS", "Seed"))
	assert.Equal(t, Curated("SaaS", "series_a"), Curated("SaaS", "Series A"))
}

func TestDefaultValuationRange_SectorMultiplier(t *testing.T) {
	base := DefaultValuationRange("Unknown", "seed")
	assert.Equal(t, 500000.0, base.Min)
	assert.Equal(t, 5000000.0, base.Max)

	// AI commands a 1.8x premium over the stage baseline
	ai := DefaultValuationRange("AI", "seed")
	assert.InDelta(t, base.Min*1.8, ai.Min, 0.01)
	assert.InDelta(t, base.Max*1.8, ai.Max, 0.01)

	// Hardware is discounted
	hardware := DefaultValuationRange("Hardware", "seed")
	assert.Less(t, hardware.Max, base.Max)
}

func TestDefaultValuationRange_UnknownStageFallsBackToSeed(t *testing.T) {
	unknown := DefaultValuationRange("SaaS", "mezzanine")
	seed := DefaultValuationRange("SaaS", "seed")
	assert.Equal(t, seed, unknown)
}
