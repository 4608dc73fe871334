package core

import (
	"github.com/shopspring/decimal"
)

// Amount a requested quantity, either an exact value or everything
// available. An explicit flag avoids colliding with any legitimate
// numeric value.
type Amount struct {
	All   bool            `json:"all,omitempty"`
	Value decimal.Decimal `json:"value"`
}

// Exact amount of the given value
func Exact(value decimal.Decimal) Amount {
	return Amount{Value: value}
}

// MaxAmount liquidate until zero or until bounded by collateral
func MaxAmount() Amount {
	return Amount{All: true}
}
