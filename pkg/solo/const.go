package solo

import (
	"github.com/shopspring/decimal"
)

var (
	// MaxPrecision max precision
	MaxPrecision int32 = 16
	// MarginRatioMax margin ratio must not exceed this value
	MarginRatioMax = decimal.NewFromFloat(2.0)
	// SpreadMax liquidation spread must not exceed this value
	SpreadMax = decimal.NewFromFloat(0.5)
	// MarginPremiumMax per market margin premium cap
	MarginPremiumMax = decimal.NewFromFloat(2.0)
	// SpreadPremiumMax per market spread premium cap
	SpreadPremiumMax = decimal.NewFromFloat(2.0)
)
