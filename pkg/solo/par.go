package solo

import (
	"solo/core"
	"solo/pkg/number"

	"github.com/shopspring/decimal"
)

// ParToWei current token equivalent of a stored principal.
//
// positive principal grows with the supply index, negative with the
// borrow index. Rounds toward zero, sign preserved.
func ParToWei(par decimal.Decimal, index core.Index) decimal.Decimal {
	if par.Sign() >= 0 {
		return par.Mul(positive(index.Supply)).Truncate(MaxPrecision)
	}

	return par.Mul(positive(index.Borrow)).Truncate(MaxPrecision)
}

// WeiToPar principal needed to represent the given token amount.
//
// Rounds away from zero so a debtor can never end up owing a residual
// dust amount after repaying the computed principal.
func WeiToPar(wei decimal.Decimal, index core.Index) decimal.Decimal {
	if wei.Sign() >= 0 {
		return number.RoundAwayFromZero(wei.Div(positive(index.Supply)), MaxPrecision)
	}

	return number.RoundAwayFromZero(wei.Div(positive(index.Borrow)), MaxPrecision)
}

// ApplyParDelta moves a balance's contribution to the market totals
// from oldPar to newPar, handling supply/borrow sign transitions.
func ApplyParDelta(market *core.Market, oldPar, newPar decimal.Decimal) {
	if oldPar.Sign() > 0 {
		market.TotalSupplyPar = market.TotalSupplyPar.Sub(oldPar)
	} else {
		market.TotalBorrowPar = market.TotalBorrowPar.Sub(oldPar.Abs())
	}

	if newPar.Sign() > 0 {
		market.TotalSupplyPar = market.TotalSupplyPar.Add(newPar)
	} else {
		market.TotalBorrowPar = market.TotalBorrowPar.Add(newPar.Abs())
	}
}

func positive(d decimal.Decimal) decimal.Decimal {
	if !d.IsPositive() {
		return decimal.New(1, 0)
	}
	return d
}
