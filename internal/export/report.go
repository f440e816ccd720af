package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/joelkehle/saascalc/internal/currency"
	"github.com/joelkehle/saascalc/internal/saasmetrics"
)

const (
	ReportTitle      = "NARRA SaaS Financial Analysis Report"
	executiveSummary = "This report analyzes key financial metrics and provides strategic insights for your SaaS business."
	closingNote      = "Note: This report is generated based on current metrics and should be reviewed regularly as business conditions change."
	reportDateLayout = "January 2, 2006"
	infiniteRunway   = "Infinite (Cash flow positive)"
	bullet           = "• "
)

// Commentary thresholds.
const (
	strongARR            = 1_000_000
	healthyMarginPct     = 20
	lowARPU              = 100
	healthyLTVToCAC      = 3
	maxPaybackMonths     = 12
	limitedRunwayMonths  = 6
	moderateRunwayMonths = 12
	premiumMultiple      = 10
	moderateMultiple     = 5
	maxBurnToMRR         = 0.5
)

// Report is the narrative export. Sections are in fixed order: revenue,
// customer economics, business health, valuation, recommendations.
type Report struct {
	GeneratedAt     time.Time
	Sections        []Section
	Recommendations []string
	FocusAreas      []string
}

// Section is one part of the report. Heading is the line printed above the
// section in the text rendering (empty for the revenue section); Name is the
// heading used by the Markdown rendering. Blocks are separated by a blank line.
type Section struct {
	Name    string
	Heading string
	Blocks  [][]string
}

// ToReport builds the narrative for a scenario and its metrics with currency
// figures shown in c. The date is passed in so that identical inputs produce
// identical output.
func ToReport(s saasmetrics.Scenario, m saasmetrics.FinancialMetrics, c currency.Currency, generatedAt time.Time) Report {
	recs := recommendations(m)
	focus := focusAreas(m)
	return Report{
		GeneratedAt: generatedAt,
		Sections: []Section{
			revenueSection(m, c),
			customerSection(m, c),
			healthSection(m, c),
			valuationSection(m, s.OtherMetrics, c),
			{
				Name:    "Strategic Recommendations",
				Heading: "Strategic Recommendations:",
				Blocks:  [][]string{recs, append([]string{"Key Focus Areas:"}, focus...)},
			},
		},
		Recommendations: recs,
		FocusAreas:      focus,
	}
}

// Text renders the plain-text report.
func (r Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", ReportTitle)
	fmt.Fprintf(&b, "Generated on %s\n\n", r.GeneratedAt.Format(reportDateLayout))
	fmt.Fprintf(&b, "Executive Summary:\n%s\n\n", executiveSummary)
	for _, s := range r.Sections {
		parts := make([]string, 0, len(s.Blocks)+1)
		if s.Heading != "" {
			parts = append(parts, s.Heading)
		}
		for _, block := range s.Blocks {
			parts = append(parts, strings.Join(block, "\n"))
		}
		fmt.Fprintf(&b, "%s\n\n", strings.Join(parts, "\n\n"))
	}
	b.WriteString(closingNote)
	return b.String()
}

// Markdown renders the same content as Markdown for HTML and PDF output.
func (r Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ReportTitle)
	fmt.Fprintf(&b, "_Generated on %s_\n\n", r.GeneratedAt.Format(reportDateLayout))
	fmt.Fprintf(&b, "## Executive Summary\n\n%s\n\n", executiveSummary)
	for _, s := range r.Sections {
		fmt.Fprintf(&b, "## %s\n\n", s.Name)
		for _, block := range s.Blocks {
			if len(block) == 0 {
				continue
			}
			fmt.Fprintf(&b, "%s\n\n", markdownBlock(block))
		}
	}
	fmt.Fprintf(&b, "---\n\n_%s_\n", closingNote)
	return b.String()
}

// markdownBlock keeps the line structure of a block: plain lines get hard
// breaks, bullets become list items, and lists are set off by a blank line.
func markdownBlock(lines []string) string {
	var b strings.Builder
	for i, l := range lines {
		item := isListLine(l)
		if strings.HasPrefix(l, bullet) {
			l = "- " + strings.TrimPrefix(l, bullet)
		}
		b.WriteString(l)
		if i == len(lines)-1 {
			break
		}
		switch next := isListLine(lines[i+1]); {
		case !item && next:
			b.WriteString("\n\n")
		case !item:
			b.WriteString("  \n")
		default:
			b.WriteString("\n")
		}
	}
	return b.String()
}

func isListLine(l string) bool {
	if strings.HasPrefix(l, bullet) {
		return true
	}
	return len(l) > 2 && l[0] >= '1' && l[0] <= '9' && l[1] == '.' && l[2] == ' '
}

func revenueSection(m saasmetrics.FinancialMetrics, c currency.Currency) Section {
	coverage := "⚠ MRR is below monthly expenses. Focus on increasing revenue through customer acquisition or pricing optimization."
	if m.MRR >= m.TotalMonthlyExpenses {
		coverage = "✓ Your MRR covers monthly expenses. Consider reinvesting excess in growth."
	}
	traction := "→ Continue building ARR through consistent growth in monthly revenue."
	if m.ARR > strongARR {
		traction = "✓ Strong ARR indicates significant market traction."
	}
	var margin string
	switch {
	case m.ProfitMargin > healthyMarginPct:
		margin = "✓ Healthy profit margin above 20%. Maintain operational efficiency while investing in growth."
	case m.ProfitMargin > 0:
		margin = "→ Positive but modest margins. Look for opportunities to improve operational efficiency."
	default:
		margin = "⚠ Negative margins indicate need for cost optimization or revenue growth."
	}

	return Section{
		Name: "Revenue Insights",
		Blocks: [][]string{
			{"Monthly Recurring Revenue (MRR): " + currency.Format(m.MRR, c), coverage},
			{"Annual Recurring Revenue (ARR): " + currency.Format(m.ARR, c), traction},
			{
				"Monthly Profit: " + currency.Format(m.MonthlyProfit, c),
				"Profit Margin: " + fixed1(m.ProfitMargin) + "%",
				margin,
			},
		},
	}
}

func customerSection(m saasmetrics.FinancialMetrics, c currency.Currency) Section {
	ratio := m.LTVToCAC()

	arpu := "✓ Strong ARPU indicates effective pricing and value delivery."
	if m.ARPU < lowARPU {
		arpu = "→ Consider opportunities for upselling or premium features to increase ARPU."
	}
	unitEconomics := "⚠ LTV/CAC ratio below 3x suggests need to improve unit economics through better retention or lower acquisition costs."
	if ratio >= healthyLTVToCAC {
		unitEconomics = "✓ Healthy LTV/CAC ratio above 3x indicates efficient customer acquisition."
	}
	payback := "✓ Good payback period under 12 months allows for faster reinvestment in growth."
	if m.PaybackPeriod > maxPaybackMonths {
		payback = "⚠ Long payback period over 12 months. Consider ways to reduce CAC or increase monetization."
	}

	return Section{
		Name:    "Customer Economics",
		Heading: "Customer Economics:",
		Blocks: [][]string{
			{"ARPU (Average Revenue Per User): " + currency.Format(m.ARPU, c), arpu},
			{
				"LTV (Customer Lifetime Value): " + currency.Format(m.LTV, c),
				"CAC (Customer Acquisition Cost): " + currency.Format(m.CAC, c),
				"LTV/CAC Ratio: " + fixed1(ratio) + "x",
				unitEconomics,
			},
			{payback},
		},
	}
}

func healthSection(m saasmetrics.FinancialMetrics, c currency.Currency) Section {
	var outlook string
	months, finite := m.Runway.Months()
	switch {
	case finite && months < limitedRunwayMonths:
		outlook = "⚠ Limited runway requires immediate attention to extend cash reserves."
	case finite && months < moderateRunwayMonths:
		outlook = "→ Moderate runway. Plan for future fundraising or path to profitability."
	default:
		outlook = "✓ Strong runway position provides stability for executing growth plans."
	}
	burn := "✓ Burn rate appears sustainable relative to revenue."
	if highBurn(m) {
		burn = "⚠ High burn rate relative to MRR. Consider optimizing expenses."
	}

	return Section{
		Name:    "Business Health",
		Heading: "Business Health:",
		Blocks: [][]string{
			{
				"Current Runway: " + runwayText(m.Runway),
				"Adjusted Runway: " + runwayText(m.AdjustedRunway),
				"Monthly Burn Rate: " + currency.Format(m.BurnRate, c),
			},
			{outlook},
			{burn},
		},
	}
}

func valuationSection(m saasmetrics.FinancialMetrics, o saasmetrics.OtherMetrics, c currency.Currency) Section {
	var multiple string
	switch {
	case o.RevenueMultiple < moderateMultiple:
		multiple = "Conservative valuation multiple typical for early-stage companies."
	case o.RevenueMultiple < premiumMultiple:
		multiple = "Moderate valuation multiple aligned with growth-stage companies."
	default:
		multiple = "Premium valuation multiple reflecting high-growth expectations."
	}

	drivers := []string{"Key Value Drivers:"}
	if m.ProfitMargin > healthyMarginPct {
		drivers = append(drivers, "✓ Strong profit margins")
	} else {
		drivers = append(drivers, "→ Room for margin improvement")
	}
	if m.LTVToCAC() > healthyLTVToCAC {
		drivers = append(drivers, "✓ Efficient unit economics")
	} else {
		drivers = append(drivers, "→ Opportunity to optimize unit economics")
	}
	if m.Runway.IsInfinite() {
		drivers = append(drivers, "✓ Cash flow positive")
	} else {
		drivers = append(drivers, "→ Path to profitability important for valuation")
	}

	return Section{
		Name:    "Valuation Analysis",
		Heading: "Valuation Analysis:",
		Blocks: [][]string{
			{
				"Projected Valuation: " + currency.Format(m.ProjectedValuation, c),
				"Based on " + number(o.RevenueMultiple) + "x ARR multiple",
			},
			{multiple},
			drivers,
		},
	}
}

// recommendations returns one bullet per triggered rule, in rule order.
func recommendations(m saasmetrics.FinancialMetrics) []string {
	var out []string
	if m.ProfitMargin < 0 {
		out = append(out, bullet+"Prioritize path to profitability through revenue growth and cost optimization")
	}
	if m.ARPU < lowARPU {
		out = append(out, bullet+"Explore opportunities for premium features or upselling to increase ARPU")
	}
	if m.LTVToCAC() < healthyLTVToCAC {
		out = append(out, bullet+"Improve unit economics by reducing CAC or increasing customer lifetime value")
	}
	if m.PaybackPeriod > maxPaybackMonths {
		out = append(out, bullet+"Focus on reducing customer payback period through more efficient acquisition")
	}
	if months, finite := m.Runway.Months(); finite && months < moderateRunwayMonths {
		out = append(out, bullet+"Develop clear plan for extending runway through fundraising or reaching profitability")
	}
	if highBurn(m) {
		out = append(out, bullet+"Review cost structure to optimize burn rate while maintaining growth")
	}
	return out
}

// focusAreas always returns exactly three numbered items.
func focusAreas(m saasmetrics.FinancialMetrics) []string {
	first := "Scaling revenue"
	if m.ProfitMargin < 0 {
		first = "Achieving profitability"
	}
	second := "Maintaining efficient growth"
	if m.LTVToCAC() < healthyLTVToCAC {
		second = "Improving unit economics"
	}
	third := "Reinvesting in growth"
	if !m.Runway.IsInfinite() {
		third = "Extending runway"
	}
	return []string{"1. " + first, "2. " + second, "3. " + third}
}

func highBurn(m saasmetrics.FinancialMetrics) bool {
	return m.BurnRate > m.MRR*maxBurnToMRR
}

func runwayText(r saasmetrics.Runway) string {
	if n, ok := r.Months(); ok {
		return fmt.Sprintf("%d months", n)
	}
	return infiniteRunway
}
