// Package export serializes a scenario and its metrics into the two
// download formats: a comma-separated table and a narrative report.
package export

import (
	"strconv"
	"strings"

	"github.com/joelkehle/saascalc/internal/currency"
	"github.com/joelkehle/saascalc/internal/saasmetrics"
)

// Row is one line of the table export.
type Row struct {
	Section string
	Metric  string
	Value   string
	Unit    string
}

func (r Row) Fields() []string {
	return []string{r.Section, r.Metric, r.Value, r.Unit}
}

var headerRow = Row{Section: "Section", Metric: "Metric", Value: "Value", Unit: "Unit"}

// Section names of the table export.
const (
	SectionTiers     = "Subscription Tiers"
	SectionExpenses  = "Expenses"
	SectionGrowth    = "Growth"
	SectionFinancial = "Financial"
	SectionRevenue   = "Revenue"
	SectionCustomer  = "Customer"
	SectionHealth    = "Health"
	SectionValuation = "Valuation"
)

// ToTable flattens the scenario and metrics into rows, header first.
// Currency values are converted into c and rounded to whole units; counts,
// percentages, ratios and months are written as-is.
func ToTable(s saasmetrics.Scenario, m saasmetrics.FinancialMetrics, c currency.Currency) []Row {
	unit := c.String()
	money := func(section, metric string, base float64) Row {
		return Row{Section: section, Metric: metric, Value: currency.Whole(base, c), Unit: unit}
	}

	rows := make([]Row, 0, 1+3*len(s.Tiers)+24)
	rows = append(rows, headerRow)

	for _, t := range s.Tiers {
		rows = append(rows,
			money(SectionTiers, t.Name+" - Price", t.PricePerMonth),
			Row{SectionTiers, t.Name + " - Subscribers", strconv.Itoa(t.NumSubscribers), "count"},
			money(SectionTiers, t.Name+" - Revenue", t.PricePerMonth*float64(t.NumSubscribers)),
		)
	}

	e := s.Expenses
	rows = append(rows,
		money(SectionExpenses, "Fixed Costs", e.TotalFixedCostsPerMonth),
		money(SectionExpenses, "Cost per User", e.VariableCostPerSubscriber),
		money(SectionExpenses, "Marketing Costs", e.TotalSalesAndMarketingCostsPerMonth),
	)

	o := s.OtherMetrics
	rows = append(rows,
		Row{SectionGrowth, "Monthly Churn Rate", fixed1(o.ChurnRate), "%"},
		Row{SectionGrowth, "New Subscribers per Month", strconv.Itoa(o.NewSubscribersPerMonth), "count"},
		money(SectionFinancial, "Cash on Hand", o.TotalCashOnHand),
		money(SectionFinancial, "Additional Funding", o.AdditionalFunding),
		Row{SectionFinancial, "Funding Month", strconv.Itoa(o.FundingMonth), "month"},
		Row{SectionFinancial, "Revenue Multiple", number(o.RevenueMultiple), "x"},
	)

	rows = append(rows,
		money(SectionRevenue, "MRR", m.MRR),
		money(SectionRevenue, "ARR", m.ARR),
		money(SectionRevenue, "Monthly Profit", m.MonthlyProfit),
		Row{SectionRevenue, "Profit Margin", fixed1(m.ProfitMargin), "%"},
		money(SectionCustomer, "ARPU", m.ARPU),
		money(SectionCustomer, "LTV", m.LTV),
		money(SectionCustomer, "CAC", m.CAC),
		Row{SectionCustomer, "LTV/CAC Ratio", fixed1(m.LTVToCAC()), "ratio"},
		Row{SectionHealth, "Current Runway", m.Runway.String(), "months"},
		Row{SectionHealth, "Adjusted Runway", m.AdjustedRunway.String(), "months"},
		money(SectionHealth, "Monthly Burn Rate", m.BurnRate),
		money(SectionValuation, "Projected Value", m.ProjectedValuation),
	)
	return rows
}

// EncodeCSV joins rows into comma-separated text, one row per line, with no
// trailing newline. Only fields containing a comma, a quote or a newline are
// quoted, so encoding/csv (which also quotes leading spaces and \r) would
// not reproduce the format byte for byte.
func EncodeCSV(rows []Row) string {
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, f := range r.Fields() {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeField(f))
		}
	}
	return b.String()
}

// CSV renders the table export in one step.
func CSV(s saasmetrics.Scenario, m saasmetrics.FinancialMetrics, c currency.Currency) string {
	return EncodeCSV(ToTable(s, m, c))
}

func escapeField(f string) string {
	if !strings.ContainsAny(f, ",\"\n") {
		return f
	}
	return `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
}
