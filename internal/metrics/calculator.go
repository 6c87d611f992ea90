package metrics

import (
	"github.com/saisirisha1111/pitchlens/internal/contracts"
)

// Calculate derives unit-economics metrics from the financials and traction
// sections of a startup record. Pure function: each derivation is applied
// independently and a metric key is emitted only when all of its inputs are
// present (and divisors strictly positive). Missing inputs skip the metric,
// they never zero-fill it.
//
// Burn is normalized to a non-negative magnitude throughout: a company whose
// MRR covers its expenses reports zero net burn, which in turn disables the
// direct runway derivation.
func Calculate(financials contracts.Financials, traction contracts.Traction) contracts.MetricSet {
	metrics := contracts.MetricSet{}

	revenue := ExtractNumber(financials.Revenue.Value())
	askAmount := ExtractNumber(financials.AskAmount.Value())
	equityOffered := ExtractNumber(financials.EquityOffered.Value())
	burnRate := ExtractNumber(financials.BurnRate.Value())
	monthlyExpenses := ExtractNumber(financials.MonthlyExpenses.Value())
	cashBalance := ExtractNumber(financials.CashBalance.Value())
	marketingSpend := ExtractNumber(financials.MarketingSpend.Value())

	currentMRR := ExtractNumber(traction.CurrentMRR.Value())
	activeCustomers := ExtractNumber(traction.ActiveCustomers.Value())
	newCustomers := ExtractNumber(traction.NewCustomersThisMonth.Value())
	avgSubscriptionPrice := ExtractNumber(traction.AverageSubscriptionPrice.Value())
	customerLifespan := ExtractNumber(traction.CustomerLifespanMonths.Value())

	// Annual revenue: MRR annualized wins over a stated revenue figure
	if currentMRR != nil {
		metrics[contracts.MetricAnnualRevenue] = *currentMRR * 12
	} else if revenue != nil {
		metrics[contracts.MetricAnnualRevenue] = *revenue
	}

	// Implied valuation from the ask
	if askAmount != nil && equityOffered != nil && *equityOffered > 0 {
		metrics[contracts.MetricImpliedValuation] = *askAmount / (*equityOffered / 100)
	}

	// Revenue multiple needs both derived values above
	valuation, hasValuation := metrics.Get(contracts.MetricImpliedValuation)
	annualRevenue, hasAnnualRevenue := metrics.Get(contracts.MetricAnnualRevenue)
	if hasValuation && hasAnnualRevenue && annualRevenue > 0 {
		metrics[contracts.MetricRevenueMultiple] = valuation / annualRevenue
	}

	// Monthly net burn, as a non-negative magnitude
	if monthlyExpenses != nil && currentMRR != nil {
		net := *monthlyExpenses - *currentMRR
		if net < 0 {
			net = 0
		}
		metrics[contracts.MetricMonthlyNetBurn] = net
	} else if burnRate != nil {
		metrics[contracts.MetricMonthlyNetBurn] = abs(*burnRate)
	} else if monthlyExpenses != nil {
		metrics[contracts.MetricMonthlyNetBurn] = abs(*monthlyExpenses)
	}

	// Runway: direct cash/burn, else a two-tier heuristic assuming cash on
	// hand is roughly twice the ask. An intentional approximation.
	netBurn, hasNetBurn := metrics.Get(contracts.MetricMonthlyNetBurn)
	if cashBalance != nil && hasNetBurn && netBurn > 0 {
		metrics[contracts.MetricRunwayMonths] = *cashBalance / netBurn
	} else if burnRate != nil && *burnRate > 0 {
		assumedCash := 100000.0
		if askAmount != nil {
			assumedCash = *askAmount * 2
		}
		metrics[contracts.MetricRunwayMonths] = assumedCash / *burnRate
	}

	// Customer acquisition cost
	if marketingSpend != nil && newCustomers != nil && *newCustomers > 0 {
		metrics[contracts.MetricCAC] = *marketingSpend / *newCustomers
	}

	// Lifetime value
	if avgSubscriptionPrice != nil && customerLifespan != nil {
		metrics[contracts.MetricLTV] = *avgSubscriptionPrice * *customerLifespan
	}

	// LTV:CAC ratio
	ltv, hasLTV := metrics.Get(contracts.MetricLTV)
	cac, hasCAC := metrics.Get(contracts.MetricCAC)
	if hasLTV && hasCAC && cac > 0 {
		metrics[contracts.MetricLTVCACRatio] = ltv / cac
	}

	// Marketing efficiency: MRR generated per marketing dollar
	if currentMRR != nil && marketingSpend != nil && *marketingSpend > 0 {
		metrics[contracts.MetricMarketingEfficiency] = *currentMRR / *marketingSpend
	}

	// Customer growth rate (% of active base added this month)
	if newCustomers != nil && activeCustomers != nil && *activeCustomers > 0 {
		metrics[contracts.MetricCustomerGrowthRate] = (*newCustomers / *activeCustomers) * 100
	}

	// Average revenue per user
	if currentMRR != nil && activeCustomers != nil && *activeCustomers > 0 {
		metrics[contracts.MetricARPU] = *currentMRR / *activeCustomers
	}

	return metrics
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
