// Package currency converts and formats base-currency (USD) amounts for
// display. Stored values are always USD; SAR exists only at the edges.
package currency

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

type Currency string

const (
	USD Currency = "USD"
	SAR Currency = "SAR"
)

// Base is the currency every stored amount is expressed in.
const Base = USD

// Fixed exchange rates. SAR is pegged, so the rate is a constant.
const (
	USDToSAR = 3.75
	SARToUSD = 1 / USDToSAR
)

var ErrUnknownCurrency = errors.New("unknown currency")

// Parse accepts a currency code case-insensitively.
func Parse(code string) (Currency, error) {
	switch c := Currency(strings.ToUpper(strings.TrimSpace(code))); c {
	case USD, SAR:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
}

func (c Currency) String() string { return string(c) }

// ToDisplay converts a base amount into c.
func ToDisplay(base float64, c Currency) float64 {
	if c == SAR {
		return base * USDToSAR
	}
	return base
}

// FromDisplay converts an amount entered in c back to base currency, rounded
// to cents. Converting out and back again is lossy by at most one unit.
func FromDisplay(amount float64, c Currency) float64 {
	d := decimal.NewFromFloat(amount)
	if c == SAR {
		d = d.Div(decimal.NewFromFloat(USDToSAR))
	}
	return d.Round(2).InexactFloat64()
}

// Whole renders the display value of base rounded half up to a whole unit,
// with no grouping or symbol. Used by the CSV export.
func Whole(base float64, c Currency) string {
	x := ToDisplay(base, c)
	v := math.Floor(x)
	if x-v >= 0.5 {
		v++
	}
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Format renders base in en-US currency style with no fraction digits:
// "$1,234", "-$1,234", "SAR 1,234" (no-break space). Ties round away from
// zero and negative zero keeps its sign.
func Format(base float64, c Currency) string {
	v := ToDisplay(base, c)
	prefix := "$"
	if c == SAR {
		prefix = "SAR\u00a0"
	}

	var digits string
	switch {
	case math.IsNaN(v):
		return prefix + "NaN"
	case math.IsInf(v, 0):
		digits = "∞"
	default:
		whole, _ := big.NewFloat(math.Abs(math.Round(v))).Int(nil)
		digits = humanize.BigComma(whole)
	}
	if math.Signbit(v) {
		return "-" + prefix + digits
	}
	return prefix + digits
}
