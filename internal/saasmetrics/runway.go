package saasmetrics

// MaxSimulatedMonths bounds the runway simulation. Past the cap the result
// saturates.
const MaxSimulatedMonths = 1_000_000

// SimulateAdjustedRunway projects cash month by month and returns the number
// of full months survived before the month in which cash runs out. Funding
// lands once, at fundingMonth, before that month's burn is subtracted. A
// business that has already run dry before fundingMonth is not revived.
func SimulateAdjustedRunway(monthlyProfit, cashOnHand, additionalFunding float64, fundingMonth int) Runway {
	if monthlyProfit >= 0 {
		return Infinite()
	}

	burn := -monthlyProfit
	remaining := cashOnHand
	month := 0
	for remaining > 0 {
		if month == MaxSimulatedMonths {
			return Months(MaxSimulatedMonths)
		}
		month++
		if month == fundingMonth {
			remaining += additionalFunding
		}
		remaining -= burn
	}
	return Months(max(0, month-1))
}
