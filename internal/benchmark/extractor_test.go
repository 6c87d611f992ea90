package benchmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternExtractor_Extract(t *testing.T) {
	e := NewPatternExtractor()
	ctx := context.Background()

	text := "Seed SaaS startups trade at a revenue multiple of 8.5 on average. " +
		"A healthy LTV:CAC ratio is 4.2 for this cohort. " +
		"Most founders keep an 18 month runway. " +
		"Typical monthly burn is $45k at this stage. " +
		"The usual valuation range is $1M - $4M pre-money."

	candidate, err := e.Extract(ctx, text, "SaaS", "seed")
	require.NoError(t, err)

	require.NotNil(t, candidate.AvgRevenueMultiple)
	assert.InDelta(t, 8.5, *candidate.AvgRevenueMultiple, 0.01)

	require.NotNil(t, candidate.AvgLTVCACRatio)
	assert.InDelta(t, 4.2, *candidate.AvgLTVCACRatio, 0.01)

	require.NotNil(t, candidate.TypicalRunway)
	assert.InDelta(t, 18.0, *candidate.TypicalRunway, 0.01)

	require.NotNil(t, candidate.AcceptableBurnRate)
	assert.InDelta(t, 45000.0, *candidate.AcceptableBurnRate, 0.01)

	require.NotNil(t, candidate.ValuationRange)
	assert.InDelta(t, 1000000.0, candidate.ValuationRange.Min, 0.01)
	assert.InDelta(t, 4000000.0, candidate.ValuationRange.Max, 0.01)
}

func TestPatternExtractor_AlternatePhrasings(t *testing.T) {
	e := NewPatternExtractor()
	ctx := context.Background()

	candidate, err := e.Extract(ctx, "companies valued at 6x revenue with a 20 month runway", "SaaS", "seed")
	require.NoError(t, err)
	require.NotNil(t, candidate.AvgRevenueMultiple)
	assert.InDelta(t, 6.0, *candidate.AvgRevenueMultiple, 0.01)
	require.NotNil(t, candidate.TypicalRunway)
	assert.InDelta(t, 20.0, *candidate.TypicalRunway, 0.01)
}

func TestPatternExtractor_NoFiguresYieldsEmptyCandidate(t *testing.T) {
	e := NewPatternExtractor()

	candidate, err := e.Extract(context.Background(), "startup funding news without any numbers", "SaaS", "seed")
	require.NoError(t, err)
	assert.True(t, candidate.IsEmpty())
}

func TestParseAbbreviated(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"50k", 50000, true},
		{"2.5M", 2500000, true},
		{"1200", 1200, true},
		{"3.5 m", 3500000, true},
		{"garbage", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, ok := parseAbbreviated(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, v, 0.01)
			}
		})
	}
}

func TestBuildValuationRange_SingleBoundSpread(t *testing.T) {
	min := 1000000.0
	r := buildValuationRange(&min, nil)
	require.NotNil(t, r)
	assert.Equal(t, 1000000.0, r.Min)
	assert.Equal(t, 3000000.0, r.Max)

	max := 3000000.0
	r = buildValuationRange(nil, &max)
	require.NotNil(t, r)
	assert.InDelta(t, 1000000.0, r.Min, 0.01)
	assert.Equal(t, 3000000.0, r.Max)

	assert.Nil(t, buildValuationRange(nil, nil))
}
