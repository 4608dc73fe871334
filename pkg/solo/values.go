package solo

import (
	"solo/core"

	"github.com/shopspring/decimal"
)

// AccountValues sums supply and borrow values of the balances under
// one cache snapshot. Every borrow leg is raised by its market's
// margin premium.
func AccountValues(balances []*core.Balance, cache *core.MarketCache) (*core.AccountValues, error) {
	values := &core.AccountValues{
		SupplyValue: decimal.Zero,
		BorrowValue: decimal.Zero,
	}

	for _, balance := range balances {
		if balance.Principal.IsZero() {
			continue
		}

		market, err := cache.Get(balance.MarketID)
		if err != nil {
			return nil, err
		}

		wei := ParToWei(balance.Principal, market.Index())
		value := wei.Abs().Mul(market.Price).Truncate(MaxPrecision)

		if wei.Sign() >= 0 {
			values.SupplyValue = values.SupplyValue.Add(value)
		} else {
			premium := decimal.New(1, 0).Add(market.MarginPremium)
			values.BorrowValue = values.BorrowValue.Add(value.Mul(premium).Truncate(MaxPrecision))
		}
	}

	return values, nil
}

// IsCollateralized supply value covers the borrow value raised by the
// margin ratio. An account without debt is trivially collateralized,
// and so is one borrowing less than the protocol minimum when
// requireMinBorrow is set.
func IsCollateralized(values *core.AccountValues, marginRatio, minBorrowedValue decimal.Decimal, requireMinBorrow bool) bool {
	if !values.BorrowValue.IsPositive() {
		return true
	}

	if requireMinBorrow && values.BorrowValue.LessThan(minBorrowedValue) {
		return true
	}

	required := values.BorrowValue.Mul(decimal.New(1, 0).Add(marginRatio))
	return values.SupplyValue.GreaterThanOrEqual(required)
}

// IsVaporizable only negative balances remain; an account with every
// balance at zero is neither liquidatable nor vaporizable.
func IsVaporizable(balances []*core.Balance, cache *core.MarketCache) (bool, error) {
	hasBorrow := false

	for _, balance := range balances {
		if balance.Principal.IsZero() {
			continue
		}

		if _, err := cache.Get(balance.MarketID); err != nil {
			return false, err
		}

		if balance.Principal.Sign() > 0 {
			return false, nil
		}
		hasBorrow = true
	}

	return hasBorrow, nil
}
