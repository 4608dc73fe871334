package core

import (
	"github.com/shopspring/decimal"
)

// System stores engine wide parameters.
type System struct {
	// addresses allowed to invoke the core liquidate entry point
	GlobalOperators []string
	// base collateral requirement, e.g. 0.15 for 115%
	MarginRatio decimal.Decimal
	// base liquidation spread before per market premiums, e.g. 0.05
	BaseSpread decimal.Decimal
	// seconds over which the expiry spread ramps from zero to full
	ExpiryRampTime int64
	// accounts borrowing less than this are trivially collateralized
	MinBorrowedValue decimal.Decimal
	Location         string
	Version          string
}

// IsGlobalOperator is the address a protocol wide operator
func (s *System) IsGlobalOperator(address string) bool {
	for _, op := range s.GlobalOperators {
		if op == address {
			return true
		}
	}

	return false
}
