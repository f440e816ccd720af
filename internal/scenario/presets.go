package scenario

import (
	"errors"
	"fmt"
	"slices"

	"github.com/joelkehle/saascalc/internal/saasmetrics"
)

var ErrUnknownPreset = errors.New("unknown preset")

const (
	PresetDefault = "default"
	PresetReset   = "reset"
)

var presets = map[string]saasmetrics.Scenario{
	PresetDefault: {
		Tiers: []saasmetrics.Tier{
			{ID: "1", Name: "Basic", PricePerMonth: 10, NumSubscribers: 100},
			{ID: "2", Name: "Pro", PricePerMonth: 30, NumSubscribers: 50},
		},
		Expenses: saasmetrics.Expenses{
			TotalFixedCostsPerMonth:             5000,
			VariableCostPerSubscriber:           1,
			TotalSalesAndMarketingCostsPerMonth: 2000,
		},
		OtherMetrics: saasmetrics.OtherMetrics{
			ChurnRate:              5,
			NewSubscribersPerMonth: 20,
			TotalCashOnHand:        100000,
			AdditionalFunding:      500000,
			FundingMonth:           6,
			RevenueMultiple:        10,
		},
	},
	PresetReset: {
		Tiers: []saasmetrics.Tier{
			{ID: "1", Name: "Basic"},
			{ID: "2", Name: "Pro"},
		},
		OtherMetrics: saasmetrics.OtherMetrics{FundingMonth: 1},
	},
}

// Preset returns a copy of the named built-in scenario.
func Preset(name string) (saasmetrics.Scenario, error) {
	p, ok := presets[name]
	if !ok {
		return saasmetrics.Scenario{}, fmt.Errorf("%w %q (have %v)", ErrUnknownPreset, name, PresetNames())
	}
	p.Tiers = slices.Clone(p.Tiers)
	return p, nil
}

// PresetNames lists the built-in presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
