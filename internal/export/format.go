package export

import (
	"math"
	"math/big"
	"strconv"
)

// fixed1 formats x with one decimal. An exact binary tie rounds away from
// zero, negative zero prints as "0.0" and non-finite values are spelled out.
func fixed1(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}
	sign := ""
	if x < 0 {
		sign = "-"
	}
	x = math.Abs(x)
	if isTenthTie(x) {
		// strconv breaks exact ties to even.
		x = math.Nextafter(x, math.Inf(1))
	}
	return sign + strconv.FormatFloat(x, 'f', 1, 64)
}

// isTenthTie reports whether x lies exactly halfway between two multiples
// of 0.1 in its exact binary value.
func isTenthTie(x float64) bool {
	r := new(big.Rat).SetFloat64(x)
	if r == nil {
		return false
	}
	r.Mul(r, big.NewRat(10, 1))
	return r.Denom().Cmp(big.NewInt(2)) == 0
}

// number renders a plain number in its shortest form.
func number(x float64) string {
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
