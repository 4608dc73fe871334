package solo

import (
	"time"

	"solo/core"

	"github.com/shopspring/decimal"
)

// AccrueIndex advances an index pair to the given time using simple
// per second rates.
//
// The borrow side is ceiled and the supply side truncated so accrued
// borrow obligations always cover accrued supply claims.
func AccrueIndex(index core.Index, borrowRate, supplyRate decimal.Decimal, at time.Time) core.Index {
	borrow := positive(index.Borrow)
	supply := positive(index.Supply)

	elapsed := at.Unix() - index.UpdatedAt.Unix()
	if elapsed <= 0 {
		return core.Index{Borrow: borrow, Supply: supply, UpdatedAt: index.UpdatedAt}
	}

	times := decimal.NewFromInt(elapsed)
	borrow = borrow.Add(
		borrow.Mul(borrowRate).Mul(times).
			Shift(MaxPrecision).Ceil().Shift(-MaxPrecision))
	supply = supply.Add(
		supply.Mul(supplyRate).Mul(times).
			Truncate(MaxPrecision))

	return core.Index{Borrow: borrow, Supply: supply, UpdatedAt: at}
}
