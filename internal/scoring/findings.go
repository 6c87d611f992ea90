package scoring

import (
	"fmt"
	"strings"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
)

// findings derives strengths, weaknesses and risk factors from the same
// thresholds the dimension scorers use. Each rule is independent and only
// fires when its metric is present.
func findings(metrics contracts.MetricSet, benchmarks contracts.BenchmarkSet) (strengths, weaknesses, risks []string) {
	if ratio, ok := metrics.Get(contracts.MetricLTVCACRatio); ok {
		switch {
		case ratio >= 5:
			strengths = append(strengths, fmt.Sprintf("Exceptional unit economics (LTV:CAC of %.1f)", ratio))
		case ratio >= benchmarks.AvgLTVCACRatio:
			strengths = append(strengths, fmt.Sprintf("LTV:CAC of %.1f beats the industry average of %.1f", ratio, benchmarks.AvgLTVCACRatio))
		case ratio < 1.5:
			weaknesses = append(weaknesses, fmt.Sprintf("Weak unit economics (LTV:CAC of %.1f vs industry %.1f)", ratio, benchmarks.AvgLTVCACRatio))
		}
		if ratio < 1.0 {
			risks = append(risks, "Customer acquisition currently destroys value; LTV below CAC")
		}
	}

	if runway, ok := metrics.Get(contracts.MetricRunwayMonths); ok {
		switch {
		case runway >= 24:
			strengths = append(strengths, fmt.Sprintf("Comfortable runway of %.1f months", runway))
		case runway < 6:
			weaknesses = append(weaknesses, fmt.Sprintf("Runway of %.1f months is below the safe minimum", runway))
		}
		if runway < 3 {
			risks = append(risks, fmt.Sprintf("Critical runway (%.1f months); insolvency risk before the next raise closes", runway))
		} else if runway < benchmarks.TypicalRunway {
			risks = append(risks, fmt.Sprintf("Runway of %.1f months trails the typical %.0f for the stage", runway, benchmarks.TypicalRunway))
		}
	}

	if multiple, ok := metrics.Get(contracts.MetricRevenueMultiple); ok && benchmarks.AvgRevenueMultiple > 0 {
		avg := benchmarks.AvgRevenueMultiple
		switch {
		case multiple <= avg*0.8:
			strengths = append(strengths, fmt.Sprintf("Conservative ask at %.1fx revenue vs industry %.1fx", multiple, avg))
		case multiple > avg*1.5:
			weaknesses = append(weaknesses, fmt.Sprintf("Valuation at %.1fx revenue is well above the %.1fx industry average", multiple, avg))
			risks = append(risks, "Premium valuation demands exceptional growth to justify")
		}
	}

	if valuation, ok := metrics.Get(contracts.MetricImpliedValuation); ok && benchmarks.ValuationRange != nil {
		vr := benchmarks.ValuationRange
		if valuation > vr.Max*1.5 {
			risks = append(risks, fmt.Sprintf("Implied valuation of $%.0f exceeds 1.5x the stage ceiling of $%.0f", valuation, vr.Max))
		} else if valuation >= vr.Min && valuation <= vr.Max {
			strengths = append(strengths, "Implied valuation sits inside the typical stage range")
		}
	}

	if burn, ok := metrics.Get(contracts.MetricMonthlyNetBurn); ok && benchmarks.AcceptableBurnRate > 0 {
		if burn <= benchmarks.AcceptableBurnRate*0.5 {
			strengths = append(strengths, fmt.Sprintf("Lean burn of $%.0f/month, half the acceptable rate", burn))
		} else if burn > benchmarks.AcceptableBurnRate*2 {
			weaknesses = append(weaknesses, fmt.Sprintf("Monthly burn of $%.0f is more than double the acceptable $%.0f", burn, benchmarks.AcceptableBurnRate))
			risks = append(risks, "Burn rate leaves little room for plan slippage")
		}
	}

	if growth, ok := metrics.Get(contracts.MetricCustomerGrowthRate); ok {
		if growth >= 10 {
			strengths = append(strengths, fmt.Sprintf("Strong customer growth at %.1f%% per month", growth))
		} else if growth < 2 {
			weaknesses = append(weaknesses, fmt.Sprintf("Customer growth of %.1f%% per month is close to flat", growth))
		}
	}

	if efficiency, ok := metrics.Get(contracts.MetricMarketingEfficiency); ok {
		if efficiency >= 3 {
			strengths = append(strengths, fmt.Sprintf("Marketing spend returns %.1fx in new MRR", efficiency))
		} else if efficiency < 1 {
			weaknesses = append(weaknesses, fmt.Sprintf("Marketing returns only %.1fx of spend in new MRR", efficiency))
		}
	}

	return strengths, weaknesses, risks
}

// detailedRecommendation concatenates per-dimension advice chosen by the
// dimension scores, closing with a verdict-keyed statement.
func detailedRecommendation(breakdown contracts.ScoreBreakdown, metrics contracts.MetricSet, benchmarks contracts.BenchmarkSet, verdict string) string {
	var parts []string

	if score := breakdown[contracts.DimLTVCACRatio]; score > 0 {
		if score >= 8 {
			parts = append(parts, "Unit economics support aggressive growth investment.")
		} else if score <= 4 {
			parts = append(parts, "Improve LTV:CAC before scaling acquisition spend.")
		}
	}

	if score := breakdown[contracts.DimRunway]; score > 0 {
		if score <= 4 {
			parts = append(parts, "Extend runway through cost control or a bridge round.")
		}
	}

	if score := breakdown[contracts.DimRevenueMultiple]; score > 0 {
		if score <= 4 {
			parts = append(parts, "Revisit the ask; the implied revenue multiple is above market.")
		}
	}

	if score := breakdown[contracts.DimValuationRange]; score > 0 {
		if score <= 4 {
			parts = append(parts, "Negotiate valuation toward the typical stage range.")
		}
	}

	if score := breakdown[contracts.DimBurnEfficiency]; score > 0 {
		if score <= 4 {
			parts = append(parts, "Bring monthly burn in line with stage norms.")
		}
	}

	if score := breakdown[contracts.DimGrowthTraction]; score > 0 {
		if score >= 8 {
			parts = append(parts, "Growth traction is a key asset; protect the acquisition channels driving it.")
		} else if score <= 4 {
			parts = append(parts, "Demonstrate repeatable customer growth before the next raise.")
		}
	}

	if score := breakdown[contracts.DimMarketingEfficiency]; score > 0 && score <= 4 {
		parts = append(parts, "Rework marketing channels; spend is not converting to MRR.")
	}

	parts = append(parts, verdictCloser(verdict))
	return strings.Join(parts, " ")
}

func verdictCloser(verdict string) string {
	switch verdict {
	case contracts.VerdictStrongPass:
		return "Overall: a compelling investment opportunity at this stage."
	case contracts.VerdictPass:
		return "Overall: fundamentals support proceeding to deeper diligence."
	case contracts.VerdictWeakPass:
		return "Overall: proceed with caution; monitor the flagged weaknesses closely."
	case contracts.VerdictHold:
		return "Overall: revisit after the flagged metrics show material improvement."
	case contracts.VerdictFailCriticalRunway:
		return "Overall: not investable until the runway problem is resolved."
	case contracts.VerdictFailUnitEconomics:
		return "Overall: not investable until unit economics turn positive."
	case contracts.VerdictFailOvervalued:
		return "Overall: not investable at the current valuation."
	default:
		return "Overall: the financial profile does not support investment at this time."
	}
}
