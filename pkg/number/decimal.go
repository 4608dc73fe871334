package number

import (
	"github.com/shopspring/decimal"
)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

func Floor(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Floor().Shift(-precision)
}

// RoundAwayFromZero ceil for positive values, floor for negative ones
func RoundAwayFromZero(d decimal.Decimal, precision int32) decimal.Decimal {
	if d.Sign() >= 0 {
		return Ceil(d, precision)
	}
	return Floor(d, precision)
}

// GetPartial target * numerator / denominator, rounded toward zero.
//
// The asymmetry against GetPartialRoundUp is deliberate: the protocol
// always rounds in its own favor so it never owes fractional tokens it
// does not hold.
func GetPartial(target, numerator, denominator decimal.Decimal, precision int32) decimal.Decimal {
	return target.Mul(numerator).Div(denominator).Truncate(precision)
}

// GetPartialRoundUp target * numerator / denominator, rounded away from zero
func GetPartialRoundUp(target, numerator, denominator decimal.Decimal, precision int32) decimal.Decimal {
	return RoundAwayFromZero(target.Mul(numerator).Div(denominator), precision)
}
