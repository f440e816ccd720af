package saasmetrics

import (
	"encoding/json"
	"math"
	"strconv"
)

// Tier is one subscription plan. Prices are in base currency (USD).
type Tier struct {
	ID             string  `json:"id" validate:"required"`
	Name           string  `json:"name"`
	PricePerMonth  float64 `json:"price_per_month" validate:"gte=0"`
	NumSubscribers int     `json:"num_subscribers" validate:"gte=0"`
}

// Expenses is the monthly cost structure in base currency.
type Expenses struct {
	TotalFixedCostsPerMonth             float64 `json:"total_fixed_costs_per_month" validate:"gte=0"`
	VariableCostPerSubscriber           float64 `json:"variable_cost_per_subscriber" validate:"gte=0"`
	TotalSalesAndMarketingCostsPerMonth float64 `json:"total_sales_and_marketing_costs_per_month" validate:"gte=0"`
}

// OtherMetrics holds growth and funding assumptions. ChurnRate is a monthly
// percentage (0-100); FundingMonth is 1-based.
type OtherMetrics struct {
	ChurnRate              float64 `json:"churn_rate" validate:"gte=0,lte=100"`
	NewSubscribersPerMonth int     `json:"new_subscribers_per_month" validate:"gte=0"`
	TotalCashOnHand        float64 `json:"total_cash_on_hand" validate:"gte=0"`
	AdditionalFunding      float64 `json:"additional_funding" validate:"gte=0"`
	FundingMonth           int     `json:"funding_month" validate:"gte=1"`
	RevenueMultiple        float64 `json:"revenue_multiple" validate:"gte=0"`
}

// Scenario bundles the three inputs of a calculation.
type Scenario struct {
	Tiers        []Tier       `json:"tiers" validate:"unique=ID,dive"`
	Expenses     Expenses     `json:"expenses"`
	OtherMetrics OtherMetrics `json:"other_metrics"`
}

// Metrics computes the financial metrics for s.
func (s Scenario) Metrics() FinancialMetrics {
	return Compute(s.Tiers, s.Expenses, s.OtherMetrics)
}

// FinancialMetrics is the derived output of Compute. Currency fields are
// whole base-currency units; ProfitMargin and PaybackPeriod carry one decimal.
type FinancialMetrics struct {
	MRR                  float64
	ARR                  float64
	TotalMonthlyRevenue  float64
	TotalMonthlyExpenses float64
	MonthlyProfit        float64
	ProfitMargin         float64
	ARPU                 float64
	LTV                  float64
	CAC                  float64
	PaybackPeriod        float64
	BurnRate             float64
	Runway               Runway
	AdjustedRunway       Runway
	ProjectedValuation   float64
}

// LTVToCAC is the unguarded ratio of the rounded LTV and CAC. It is NaN or
// ±Inf when CAC is zero.
func (m FinancialMetrics) LTVToCAC() float64 {
	return m.LTV / m.CAC
}

// MarshalJSON encodes non-finite values as strings since JSON has no
// representation for them.
func (m FinancialMetrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		MRR                  jsonFloat `json:"mrr"`
		ARR                  jsonFloat `json:"arr"`
		TotalMonthlyRevenue  jsonFloat `json:"total_monthly_revenue"`
		TotalMonthlyExpenses jsonFloat `json:"total_monthly_expenses"`
		MonthlyProfit        jsonFloat `json:"monthly_profit"`
		ProfitMargin         jsonFloat `json:"profit_margin"`
		ARPU                 jsonFloat `json:"arpu"`
		LTV                  jsonFloat `json:"ltv"`
		CAC                  jsonFloat `json:"cac"`
		PaybackPeriod        jsonFloat `json:"payback_period"`
		BurnRate             jsonFloat `json:"burn_rate"`
		Runway               Runway    `json:"runway"`
		AdjustedRunway       Runway    `json:"adjusted_runway"`
		ProjectedValuation   jsonFloat `json:"projected_valuation"`
	}{
		MRR:                  jsonFloat(m.MRR),
		ARR:                  jsonFloat(m.ARR),
		TotalMonthlyRevenue:  jsonFloat(m.TotalMonthlyRevenue),
		TotalMonthlyExpenses: jsonFloat(m.TotalMonthlyExpenses),
		MonthlyProfit:        jsonFloat(m.MonthlyProfit),
		ProfitMargin:         jsonFloat(m.ProfitMargin),
		ARPU:                 jsonFloat(m.ARPU),
		LTV:                  jsonFloat(m.LTV),
		CAC:                  jsonFloat(m.CAC),
		PaybackPeriod:        jsonFloat(m.PaybackPeriod),
		BurnRate:             jsonFloat(m.BurnRate),
		Runway:               m.Runway,
		AdjustedRunway:       m.AdjustedRunway,
		ProjectedValuation:   jsonFloat(m.ProjectedValuation),
	})
}

type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	}
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	return strconv.AppendFloat(nil, v, 'f', -1, 64), nil
}

// InfiniteLabel is how an infinite runway is written in exports.
const InfiniteLabel = "Infinite"

// Runway is a month count or the infinite sentinel used when cash never
// depletes. The zero value is a finite runway of zero months.
type Runway struct {
	months   int
	infinite bool
}

// Months returns a finite runway of n months.
func Months(n int) Runway { return Runway{months: n} }

// Infinite returns the never-depletes sentinel.
func Infinite() Runway { return Runway{infinite: true} }

func (r Runway) IsInfinite() bool { return r.infinite }

// Months reports the month count and whether the runway is finite.
func (r Runway) Months() (int, bool) {
	if r.infinite {
		return 0, false
	}
	return r.months, true
}

// String renders the month count, or InfiniteLabel.
func (r Runway) String() string {
	if r.infinite {
		return InfiniteLabel
	}
	return strconv.Itoa(r.months)
}

func (r Runway) MarshalJSON() ([]byte, error) {
	if r.infinite {
		return []byte(`"` + InfiniteLabel + `"`), nil
	}
	return []byte(strconv.Itoa(r.months)), nil
}
