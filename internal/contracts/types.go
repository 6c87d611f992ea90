package contracts

import (
	"encoding/json"
	"strings"
)

// Flex holds a raw JSON scalar that upstream ingestion may deliver as a
// number, a numeric string ("$1,200,000"), or null. Normalization into a
// clean float happens in the metrics extractor, not here.
type Flex struct {
	raw interface{}
}

// NewFlex wraps a value for tests and programmatic construction
func NewFlex(v interface{}) Flex {
	return Flex{raw: v}
}

// UnmarshalJSON accepts any JSON scalar without validation
func (f *Flex) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.raw = v
	return nil
}

// MarshalJSON re-emits the original scalar
func (f Flex) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.raw)
}

// Value returns the raw decoded scalar (float64, string, or nil)
func (f Flex) Value() interface{} {
	return f.raw
}

// IsNull reports whether the field was absent or null
func (f Flex) IsNull() bool {
	return f.raw == nil
}

// Financials is the funding section of a startup record.
// Any field may be null; the calculator skips metrics whose inputs are missing.
type Financials struct {
	AskAmount       Flex `json:"ask_amount"`
	EquityOffered   Flex `json:"equity_offered"`
	Revenue         Flex `json:"revenue"`
	BurnRate        Flex `json:"burn_rate"`
	MonthlyExpenses Flex `json:"monthly_expenses"`
	CashBalance     Flex `json:"cash_balance"`
	MarketingSpend  Flex `json:"marketing_spend"`
}

// Traction is the customer/revenue-trend section of a startup record
type Traction struct {
	CurrentMRR               Flex   `json:"current_mrr"`
	MRRGrowthTrend           string `json:"mrr_growth_trend,omitempty"`
	ActiveCustomers          Flex   `json:"active_customers"`
	NewCustomersThisMonth    Flex   `json:"new_customers_this_month"`
	AverageSubscriptionPrice Flex   `json:"average_subscription_price"`
	CustomerLifespanMonths   Flex   `json:"customer_lifespan_months"`
}

// StartupRecord is the structured output of the upstream ingestion pipeline.
// Consumed read-only by the analysis engine, never mutated.
type StartupRecord struct {
	StartupName string     `json:"startup_name,omitempty"`
	Sector      string     `json:"sector,omitempty"`
	Stage       string     `json:"stage,omitempty"`
	Financials  Financials `json:"financials"`
	Traction    Traction   `json:"traction"`
}

// StageOrDefault returns the normalized funding stage, defaulting to seed
func (r *StartupRecord) StageOrDefault() string {
	if r.Stage == "" {
		return StageSeed
	}
	return NormalizeStage(r.Stage)
}

// Funding stages as used in benchmark lookup tables
const (
	StagePreSeed = "pre_seed"
	StageSeed    = "seed"
	StageSeriesA = "series_a"
	StageSeriesB = "series_b"
	StageSeriesC = "series_c"
	StageSeriesD = "series_d+"
)

// NormalizeStage maps ingestion-layer stage labels ("Seed", "Series A",
// "Series D+") onto lookup-table keys.
func NormalizeStage(stage string) string {
	s := strings.ToLower(strings.TrimSpace(stage))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// MetricSet maps metric names to derived values. A key is present only if
// all of its inputs were available; never a fabricated zero.
type MetricSet map[string]float64

// Metric names emitted by the calculator
const (
	MetricAnnualRevenue       = "annual_revenue"
	MetricImpliedValuation    = "implied_valuation"
	MetricRevenueMultiple     = "revenue_multiple"
	MetricMonthlyNetBurn      = "monthly_net_burn"
	MetricRunwayMonths        = "runway_months"
	MetricCAC                 = "cac"
	MetricLTV                 = "ltv"
	MetricLTVCACRatio         = "ltv_cac_ratio"
	MetricMarketingEfficiency = "marketing_efficiency"
	MetricCustomerGrowthRate  = "customer_growth_rate"
	MetricARPU                = "arpu"
)

// Get returns a metric value and whether it is present
func (m MetricSet) Get(name string) (float64, bool) {
	v, ok := m[name]
	return v, ok
}

// ValuationRange is a min/max valuation band in currency units
type ValuationRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Benchmark data_source tags
const (
	SourceStoreExactMatch   = "bigquery_exact_match" // tag kept for warehouse compatibility
	SourceCache             = "cache"
	SourceWebSearch         = "web_search"
	SourceWebSearchInserted = "web_search_inserted"
	SourceCuratedFallback   = "curated_fallback"
)

// QueryContext echoes the sector/stage a benchmark set was resolved for
type QueryContext struct {
	SectorUsed      string `json:"sector_used"`
	StageUsed       string `json:"stage_used"`
	BenchmarkSource string `json:"benchmark_source"`
}

// BenchmarkSet holds industry comparison figures for a (sector, stage) pair
type BenchmarkSet struct {
	AvgRevenueMultiple float64         `json:"avg_revenue_multiple"`
	AvgLTVCACRatio     float64         `json:"avg_ltv_cac_ratio"`
	AcceptableBurnRate float64         `json:"acceptable_burn_rate"`
	TypicalRunway      float64         `json:"typical_runway"`
	ValuationRange     *ValuationRange `json:"seed_stage_valuation_range,omitempty"`
	DataSource         string          `json:"data_source,omitempty"`
	QueryContext       *QueryContext   `json:"query_context,omitempty"`
}

// BenchmarkCandidate is a partially-extracted benchmark set produced by a
// text-to-benchmark extractor. Fields are optional until the validation
// gate accepts the candidate.
type BenchmarkCandidate struct {
	AvgRevenueMultiple *float64        `json:"avg_revenue_multiple"`
	AvgLTVCACRatio     *float64        `json:"avg_ltv_cac_ratio"`
	AcceptableBurnRate *float64        `json:"acceptable_burn_rate"`
	TypicalRunway      *float64        `json:"typical_runway"`
	ValuationRange     *ValuationRange `json:"seed_stage_valuation_range"`
}

// IsEmpty reports whether extraction found nothing at all
func (c *BenchmarkCandidate) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.AvgRevenueMultiple == nil && c.AvgLTVCACRatio == nil &&
		c.AcceptableBurnRate == nil && c.TypicalRunway == nil && c.ValuationRange == nil
}

// Merge fills empty fields of c from other, keeping existing values.
// Later queries in the search battery only contribute fields the earlier
// ones did not find.
func (c *BenchmarkCandidate) Merge(other *BenchmarkCandidate) {
	if other == nil {
		return
	}
	if c.AvgRevenueMultiple == nil {
		c.AvgRevenueMultiple = other.AvgRevenueMultiple
	}
	if c.AvgLTVCACRatio == nil {
		c.AvgLTVCACRatio = other.AvgLTVCACRatio
	}
	if c.AcceptableBurnRate == nil {
		c.AcceptableBurnRate = other.AcceptableBurnRate
	}
	if c.TypicalRunway == nil {
		c.TypicalRunway = other.TypicalRunway
	}
	if c.ValuationRange == nil {
		c.ValuationRange = other.ValuationRange
	}
}

// ScoreBreakdown maps scoring dimensions to discrete scores in {0,2,4,6,8,10};
// 0 means the underlying metric was unavailable.
type ScoreBreakdown map[string]int

// Scoring dimensions
const (
	DimLTVCACRatio         = "ltv_cac_ratio"
	DimValuationRange      = "valuation_range"
	DimRunway              = "runway"
	DimRevenueMultiple     = "revenue_multiple"
	DimBurnEfficiency      = "burn_efficiency"
	DimGrowthTraction      = "growth_traction"
	DimMarketingEfficiency = "marketing_efficiency"
)

// Verdicts, in the order the decision table evaluates them
const (
	VerdictFailCriticalRunway = "FAIL - Critical Runway"
	VerdictFailUnitEconomics  = "FAIL - Poor Unit Economics"
	VerdictFailOvervalued     = "FAIL - Excessively Overvalued"
	VerdictStrongPass         = "STRONG PASS"
	VerdictPass               = "PASS"
	VerdictWeakPass           = "WEAK PASS"
	VerdictHold               = "HOLD - Requires Significant Improvement"
	VerdictFail               = "FAIL"
)

// InvestmentAnalysis is the scoring engine output
type InvestmentAnalysis struct {
	ScoreBreakdown         ScoreBreakdown `json:"score_breakdown"`
	Strengths              []string       `json:"strengths"`
	Weaknesses             []string       `json:"weaknesses"`
	RiskFactors            []string       `json:"risk_factors"`
	FinalScore             float64        `json:"final_score"`
	Verdict                string         `json:"verdict"`
	DetailedRecommendation string         `json:"detailed_recommendation"`
}

// AnalysisResult is the full evaluation output returned to callers
type AnalysisResult struct {
	CalculatedMetrics  MetricSet          `json:"calculated_metrics"`
	IndustryBenchmarks BenchmarkSet       `json:"industry_benchmarks"`
	InvestmentAnalysis InvestmentAnalysis `json:"investment_analysis"`
	AnalysisConclusion string             `json:"analysis_conclusion"`
	Recommendation     string             `json:"recommendation"`
}

// SectorStage identifies a benchmark row
type SectorStage struct {
	Sector string `json:"sector"`
	Stage  string `json:"stage"`
}

// SearchResult is one organic result from a search provider
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
