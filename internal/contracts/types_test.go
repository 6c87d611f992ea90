package contracts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlex_UnmarshalScalars(t *testing.T) {
	var f Financials

	payload := `{
		"ask_amount": 500000,
		"equity_offered": "10%",
		"revenue": null,
		"burn_rate": "$45,000"
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &f))

	assert.Equal(t, 500000.0, f.AskAmount.Value())
	assert.Equal(t, "10%", f.EquityOffered.Value())
	assert.True(t, f.Revenue.IsNull())
	assert.True(t, f.CashBalance.IsNull())
	assert.Equal(t, "$45,000", f.BurnRate.Value())
}

func TestFlex_MarshalRoundTrip(t *testing.T) {
	f := NewFlex("$1,200,000")
	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `"$1,200,000"`, string(data))

	data, err = json.Marshal(NewFlex(nil))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestNormalizeStage(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Seed", "seed"},
		{"Series A", "series_a"},
		{"series-b", "series_b"},
		{" Pre Seed ", "pre_seed"},
		{"series_d+", "series_d+"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeStage(tt.input), "input %q", tt.input)
	}
}

func TestStartupRecord_StageOrDefault(t *testing.T) {
	r := StartupRecord{}
	assert.Equal(t, StageSeed, r.StageOrDefault())

	r.Stage = "Series A"
	assert.Equal(t, StageSeriesA, r.StageOrDefault())
}

func TestBenchmarkCandidate_Merge(t *testing.T) {
	multiple := 8.0
	ratio := 4.0
	runway := 18.0

	base := &BenchmarkCandidate{AvgRevenueMultiple: &multiple}
	base.Merge(&BenchmarkCandidate{
		AvgRevenueMultiple: &ratio, // must not overwrite
		AvgLTVCACRatio:     &ratio,
		TypicalRunway:      &runway,
	})

	assert.Equal(t, 8.0, *base.AvgRevenueMultiple)
	assert.Equal(t, 4.0, *base.AvgLTVCACRatio)
	assert.Equal(t, 18.0, *base.TypicalRunway)

	// Merging nil is a no-op
	base.Merge(nil)
	assert.Equal(t, 8.0, *base.AvgRevenueMultiple)
}

func TestBenchmarkCandidate_IsEmpty(t *testing.T) {
	var nilCandidate *BenchmarkCandidate
	assert.True(t, nilCandidate.IsEmpty())
	assert.True(t, (&BenchmarkCandidate{}).IsEmpty())

	v := 5.0
	assert.False(t, (&BenchmarkCandidate{AvgRevenueMultiple: &v}).IsEmpty())
	assert.False(t, (&BenchmarkCandidate{ValuationRange: &ValuationRange{Min: 1, Max: 2}}).IsEmpty())
}

func TestMetricSet_Get(t *testing.T) {
	m := MetricSet{MetricAnnualRevenue: 600000}

	v, ok := m.Get(MetricAnnualRevenue)
	assert.True(t, ok)
	assert.Equal(t, 600000.0, v)

	_, ok = m.Get(MetricRunwayMonths)
	assert.False(t, ok)
}
