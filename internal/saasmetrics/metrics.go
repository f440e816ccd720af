package saasmetrics

import "math"

// Compute derives the financial metrics from the inputs. It never fails:
// zero revenue, subscribers, churn or new-subscriber counts substitute zero
// for the affected ratio. PaybackPeriod is the exception and is left
// unguarded, so it can come out as NaN, ±Inf or negative.
func Compute(tiers []Tier, expenses Expenses, other OtherMetrics) FinancialMetrics {
	totalSubscribers := 0
	mrr := 0.0
	for _, t := range tiers {
		totalSubscribers += t.NumSubscribers
		mrr += t.PricePerMonth * float64(t.NumSubscribers)
	}
	arr := mrr * 12

	totalVariableCosts := expenses.VariableCostPerSubscriber * float64(totalSubscribers)
	totalMonthlyExpenses := expenses.TotalFixedCostsPerMonth +
		totalVariableCosts +
		expenses.TotalSalesAndMarketingCostsPerMonth

	monthlyProfit := mrr - totalMonthlyExpenses
	profitMargin := 0.0
	if mrr > 0 {
		profitMargin = monthlyProfit / mrr * 100
	}

	arpu := 0.0
	if totalSubscribers > 0 {
		arpu = mrr / float64(totalSubscribers)
	}
	grossMarginPerUser := arpu - expenses.VariableCostPerSubscriber

	// Zero churn means an unbounded lifetime; report 0 rather than Inf.
	churn := other.ChurnRate / 100
	ltv := 0.0
	if churn > 0 {
		ltv = grossMarginPerUser / churn
	}

	cac := 0.0
	if other.NewSubscribersPerMonth > 0 {
		cac = expenses.TotalSalesAndMarketingCostsPerMonth / float64(other.NewSubscribersPerMonth)
	}

	burnRate := 0.0
	if monthlyProfit < 0 {
		burnRate = -monthlyProfit
	}
	runway := Infinite()
	if burnRate > 0 {
		runway = Months(int(math.Min(math.Floor(other.TotalCashOnHand/burnRate), MaxSimulatedMonths)))
	}
	adjusted := SimulateAdjustedRunway(monthlyProfit, other.TotalCashOnHand, other.AdditionalFunding, other.FundingMonth)

	projectedValuation := arr * other.RevenueMultiple

	return FinancialMetrics{
		MRR:                  Round(mrr),
		ARR:                  Round(arr),
		TotalMonthlyRevenue:  Round(mrr),
		TotalMonthlyExpenses: Round(totalMonthlyExpenses),
		MonthlyProfit:        Round(monthlyProfit),
		ProfitMargin:         RoundTenth(profitMargin),
		ARPU:                 Round(arpu),
		LTV:                  Round(ltv),
		CAC:                  Round(cac),
		PaybackPeriod:        RoundTenth(cac / grossMarginPerUser),
		BurnRate:             Round(burnRate),
		Runway:               runway,
		AdjustedRunway:       adjusted,
		ProjectedValuation:   Round(projectedValuation),
	}
}

// Round rounds half up towards +Inf: Round(2.5) == 3, Round(-2.5) == -2.
// A negative input that rounds to zero yields negative zero. NaN and ±Inf
// pass through.
func Round(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	if r == 0 && math.Signbit(x) {
		return math.Copysign(0, -1)
	}
	return r
}

// RoundTenth rounds to one decimal place with Round semantics.
func RoundTenth(x float64) float64 {
	return Round(x*10) / 10
}
