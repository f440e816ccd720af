// Package scenario loads calculator inputs from YAML or JSON files and
// provides the built-in presets.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/joelkehle/saascalc/internal/currency"
	"github.com/joelkehle/saascalc/internal/saasmetrics"
)

// File is the on-disk layout. Amounts are in Currency and are converted to
// base currency on load.
type File struct {
	Currency string      `yaml:"currency"`
	Tiers    []TierEntry `yaml:"tiers"`
	Expenses struct {
		FixedCostsPerMonth        float64 `yaml:"fixed_costs_per_month"`
		VariableCostPerSubscriber float64 `yaml:"variable_cost_per_subscriber"`
		SalesAndMarketingPerMonth float64 `yaml:"sales_and_marketing_per_month"`
	} `yaml:"expenses"`
	Growth struct {
		ChurnRate              float64 `yaml:"churn_rate"`
		NewSubscribersPerMonth int     `yaml:"new_subscribers_per_month"`
	} `yaml:"growth"`
	Funding struct {
		CashOnHand        float64 `yaml:"cash_on_hand"`
		AdditionalFunding float64 `yaml:"additional_funding"`
		FundingMonth      *int    `yaml:"funding_month"`
		RevenueMultiple   float64 `yaml:"revenue_multiple"`
	} `yaml:"funding"`
}

type TierEntry struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	PricePerMonth float64 `yaml:"price_per_month"`
	Subscribers   int     `yaml:"subscribers"`
}

// Load reads and parses the scenario file at path.
func Load(path string) (saasmetrics.Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return saasmetrics.Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return saasmetrics.Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario document, converts its amounts to base currency,
// assigns ids to tiers that lack one, and validates the result.
func Parse(b []byte) (saasmetrics.Scenario, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return saasmetrics.Scenario{}, errors.New("decode scenario: empty document")
		}
		return saasmetrics.Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	s, err := f.Scenario()
	if err != nil {
		return saasmetrics.Scenario{}, err
	}
	if err := Validate(s); err != nil {
		return saasmetrics.Scenario{}, err
	}
	return s, nil
}

// Scenario converts f to base-currency inputs. An omitted funding month
// defaults to 1.
func (f File) Scenario() (saasmetrics.Scenario, error) {
	c := currency.Base
	if f.Currency != "" {
		parsed, err := currency.Parse(f.Currency)
		if err != nil {
			return saasmetrics.Scenario{}, err
		}
		c = parsed
	}
	base := func(v float64) float64 { return currency.FromDisplay(v, c) }

	tiers := make([]saasmetrics.Tier, 0, len(f.Tiers))
	for _, t := range f.Tiers {
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		tiers = append(tiers, saasmetrics.Tier{
			ID:             id,
			Name:           t.Name,
			PricePerMonth:  base(t.PricePerMonth),
			NumSubscribers: t.Subscribers,
		})
	}

	fundingMonth := 1
	if f.Funding.FundingMonth != nil {
		fundingMonth = *f.Funding.FundingMonth
	}

	return saasmetrics.Scenario{
		Tiers: tiers,
		Expenses: saasmetrics.Expenses{
			TotalFixedCostsPerMonth:             base(f.Expenses.FixedCostsPerMonth),
			VariableCostPerSubscriber:           base(f.Expenses.VariableCostPerSubscriber),
			TotalSalesAndMarketingCostsPerMonth: base(f.Expenses.SalesAndMarketingPerMonth),
		},
		OtherMetrics: saasmetrics.OtherMetrics{
			ChurnRate:              f.Growth.ChurnRate,
			NewSubscribersPerMonth: f.Growth.NewSubscribersPerMonth,
			TotalCashOnHand:        base(f.Funding.CashOnHand),
			AdditionalFunding:      base(f.Funding.AdditionalFunding),
			FundingMonth:           fundingMonth,
			RevenueMultiple:        f.Funding.RevenueMultiple,
		},
	}, nil
}
