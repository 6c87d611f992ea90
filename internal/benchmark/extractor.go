package benchmark

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
)

// PatternExtractor is the regex-based text-to-benchmark extractor. It is the
// default implementation; the Gemini extractor can replace it when an API
// key is configured.
type PatternExtractor struct{}

// NewPatternExtractor creates a pattern-based extractor
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

var _ contracts.BenchmarkExtractor = (*PatternExtractor)(nil)

var (
	revenueMultiplePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)revenue multiple(?: of)?[^\d]*(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)(\d+\.?\d*)x revenue`),
		regexp.MustCompile(`(?i)revenue multiplier[^\d]*(\d+\.?\d*)`),
	}

	ltvCACPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)LTV[^\d]{0,20}CAC(?: ratio)?[^\d]*(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)customer lifetime value[^\d]{0,40}acquisition cost[^\d]*(\d+\.?\d*)`),
	}

	runwayPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)runway[^\d]*(\d+)[^\d]{0,10}months`),
		regexp.MustCompile(`(?i)(\d+)[^\d]{0,10}month runway`),
		regexp.MustCompile(`(?i)cash runway[^\d]*(\d+)[^\d]{0,10}months`),
	}

	burnRatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)burn rate[^\d]*\$?(\d+(?:\.\d+)?\s?[kKmM]?)`),
		regexp.MustCompile(`(?i)monthly burn[^\d]*\$?(\d+(?:\.\d+)?\s?[kKmM]?)`),
		regexp.MustCompile(`(?i)burning[^\d]*\$?(\d+(?:\.\d+)?\s?[kKmM]?)[^\d]{0,10}per month`),
	}

	valuationMinPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)valuation range[^\d]*\$?(\d+(?:\.\d+)?\s?[kKmM]?)\s*(?:-|to|–)`),
		regexp.MustCompile(`(?i)valued between[^\d]*\$?(\d+(?:\.\d+)?\s?[kKmM]?)[^\d]{0,10}and`),
		regexp.MustCompile(`(?i)pre-money valuation[^\d]*\$?(\d+(?:\.\d+)?\s?[kKmM]?)`),
		regexp.MustCompile(`(?i)seed valuation[^\d]*\$?(\d+(?:\.\d+)?\s?[kKmM]?)`),
	}

	valuationMaxPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)valuation range[^\d]*\d+(?:\.\d+)?\s?[kKmM]?\s*(?:-|to|–)\s*\$?(\d+(?:\.\d+)?\s?[kKmM]?)`),
		regexp.MustCompile(`(?i)valued between[^\d]*\d+(?:\.\d+)?\s?[kKmM]?[^\d]{0,10}and[^\d]*\$?(\d+(?:\.\d+)?\s?[kKmM]?)`),
		regexp.MustCompile(`(?i)up to[^\d]*\$?(\d+(?:\.\d+)?\s?[kKmM]?)[^\d]{0,15}valuation`),
		regexp.MustCompile(`(?i)valuation cap[^\d]*\$?(\d+(?:\.\d+)?\s?[kKmM]?)`),
	}
)

// Extract scans free text for benchmark figures. Sector and stage are
// accepted for interface parity but pattern matching does not use them.
func (e *PatternExtractor) Extract(ctx context.Context, text, sector, stage string) (*contracts.BenchmarkCandidate, error) {
	candidate := &contracts.BenchmarkCandidate{
		AvgRevenueMultiple: firstMatch(text, revenueMultiplePatterns),
		AvgLTVCACRatio:     firstMatch(text, ltvCACPatterns),
		TypicalRunway:      firstMatch(text, runwayPatterns),
		AcceptableBurnRate: firstMatch(text, burnRatePatterns),
	}

	minVal := firstMatch(text, valuationMinPatterns)
	maxVal := firstMatch(text, valuationMaxPatterns)
	candidate.ValuationRange = buildValuationRange(minVal, maxVal)

	return candidate, nil
}

// firstMatch returns the first parseable capture across the pattern list
func firstMatch(text string, patterns []*regexp.Regexp) *float64 {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if v, ok := parseAbbreviated(m[1]); ok {
			return &v
		}
	}
	return nil
}

// parseAbbreviated parses "50k" / "2.5M" / "1200" style figures
func parseAbbreviated(s string) (float64, bool) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		multiplier = 1000
		s = strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		multiplier = 1000000
		s = strings.TrimSuffix(s, "m")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v * multiplier, true
}

// buildValuationRange assembles a range from extracted bounds. When only
// one bound is found the other is estimated with the common 3x spread.
func buildValuationRange(minVal, maxVal *float64) *contracts.ValuationRange {
	switch {
	case minVal != nil && maxVal != nil:
		return &contracts.ValuationRange{Min: *minVal, Max: *maxVal}
	case minVal != nil:
		return &contracts.ValuationRange{Min: *minVal, Max: *minVal * 3}
	case maxVal != nil:
		return &contracts.ValuationRange{Min: *maxVal / 3, Max: *maxVal}
	default:
		return nil
	}
}
