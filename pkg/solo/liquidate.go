package solo

import (
	"time"

	"solo/core"
	"solo/pkg/number"

	"github.com/shopspring/decimal"
)

// SpreadForPair full liquidation spread for a held/owed market pair
//
// spread = base * (1 + heldPremium) * (1 + owedPremium)
func SpreadForPair(base decimal.Decimal, held, owed *core.Market) decimal.Decimal {
	one := decimal.New(1, 0)
	return base.
		Mul(one.Add(held.SpreadPremium)).
		Mul(one.Add(owed.SpreadPremium)).
		Truncate(MaxPrecision)
}

// RampedSpread scales the spread linearly from zero at expiry up to
// the full value over rampTime seconds, then holds it there. Never
// negative.
func RampedSpread(spread decimal.Decimal, expiresAt uint32, now time.Time, rampTime int64) decimal.Decimal {
	elapsed := now.Unix() - int64(expiresAt)
	if elapsed <= 0 {
		return decimal.Zero
	}

	if rampTime > 0 && elapsed < rampTime {
		return spread.
			Mul(decimal.NewFromInt(elapsed)).
			Div(decimal.NewFromInt(rampTime)).
			Truncate(MaxPrecision)
	}

	return spread
}

// SpreadAdjustedPrices applies the spread multiplicatively to the owed
// price only; the held price is passed through unchanged.
func SpreadAdjustedPrices(held, owed *core.Market, spread decimal.Decimal) *core.Prices {
	return &core.Prices{
		HeldPrice: held.Price,
		OwedPrice: owed.Price.Mul(decimal.New(1, 0).Add(spread)).Truncate(MaxPrecision),
	}
}

// ResolveOwedWei turns the requested amount into a concrete owed wei
// target, never exceeding the outstanding debt.
//
// owedWeiBalance is the liquid account's (negative) owed balance.
func ResolveOwedWei(amount core.Amount, owedWeiBalance decimal.Decimal) decimal.Decimal {
	debt := owedWeiBalance.Abs()
	if amount.All {
		return debt
	}

	if amount.Value.GreaterThan(debt) {
		return debt
	}

	return amount.Value
}

// LiquidationAmounts computes both legs of a liquidation.
//
// The held equivalent of the owed target is rounded up in the
// protocol's favor; when the liquid account's collateral is the
// binding constraint the transfer is clamped to maxHeldWei and the
// owed repayment recomputed rounded down. The held leg can therefore
// never exceed what the liquid account possessed.
func LiquidationAmounts(owedWei, maxHeldWei decimal.Decimal, prices *core.Prices) (heldWei, owed decimal.Decimal, clamped bool) {
	heldWei = number.GetPartialRoundUp(owedWei, prices.OwedPrice, prices.HeldPrice, MaxPrecision)
	if heldWei.GreaterThan(maxHeldWei) {
		heldWei = maxHeldWei
		owed = number.GetPartial(heldWei, prices.HeldPrice, prices.OwedPrice, MaxPrecision)
		return heldWei, owed, true
	}

	return heldWei, owedWei, false
}
