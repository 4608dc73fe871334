package solo

import (
	"testing"
	"time"

	"solo/core"
	"solo/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(markets ...*core.Market) *core.MarketCache {
	return core.NewMarketCache(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), markets)
}

func testMarket(id uint64, price, marginPremium string) *core.Market {
	return &core.Market{
		ID:            id,
		Price:         number.Decimal(price),
		BorrowIndex:   number.Decimal("1"),
		SupplyIndex:   number.Decimal("1"),
		MarginPremium: number.Decimal(marginPremium),
	}
}

func balance(marketID uint64, principal string) *core.Balance {
	return &core.Balance{MarketID: marketID, Principal: number.Decimal(principal)}
}

func TestAccountValues(t *testing.T) {
	cache := testCache(
		testMarket(1, "2000", "0"),
		testMarket(2, "1", "0.1"),
	)

	values, err := AccountValues([]*core.Balance{
		balance(1, "1"),     // 2000 supplied
		balance(2, "-1000"), // 1000 borrowed, 10% premium
	}, cache)
	require.NoError(t, err)

	assert.Equal(t, "2000", values.SupplyValue.String())
	assert.Equal(t, "1100", values.BorrowValue.String())
}

func TestAccountValuesMissingMarket(t *testing.T) {
	cache := testCache(testMarket(1, "1", "0"))

	_, err := AccountValues([]*core.Balance{balance(9, "10")}, cache)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMarketNotFound)
}

func TestIsCollateralizedBoundary(t *testing.T) {
	marginRatio := number.Decimal("0.15")
	minBorrow := number.Decimal("5")

	// exactly at the threshold counts as collateralized
	values := &core.AccountValues{
		SupplyValue: number.Decimal("115"),
		BorrowValue: number.Decimal("100"),
	}
	assert.True(t, IsCollateralized(values, marginRatio, minBorrow, true))

	values.SupplyValue = number.Decimal("114.9999")
	assert.False(t, IsCollateralized(values, marginRatio, minBorrow, true))
}

func TestIsCollateralizedNoBorrow(t *testing.T) {
	values := &core.AccountValues{
		SupplyValue: decimal.Zero,
		BorrowValue: decimal.Zero,
	}
	assert.True(t, IsCollateralized(values, number.Decimal("0.15"), number.Decimal("5"), true))
}

func TestIsCollateralizedMinBorrow(t *testing.T) {
	// dust borrows below the minimum are trivially collateralized
	values := &core.AccountValues{
		SupplyValue: decimal.Zero,
		BorrowValue: number.Decimal("4.99"),
	}
	assert.True(t, IsCollateralized(values, number.Decimal("0.15"), number.Decimal("5"), true))
	assert.False(t, IsCollateralized(values, number.Decimal("0.15"), number.Decimal("5"), false))
}

func TestIsCollateralizedIdempotent(t *testing.T) {
	values := &core.AccountValues{
		SupplyValue: number.Decimal("120"),
		BorrowValue: number.Decimal("100"),
	}

	first := IsCollateralized(values, number.Decimal("0.15"), number.Decimal("5"), true)
	second := IsCollateralized(values, number.Decimal("0.15"), number.Decimal("5"), true)
	assert.Equal(t, first, second)
}

func TestIsVaporizable(t *testing.T) {
	cache := testCache(
		testMarket(1, "1", "0"),
		testMarket(2, "1", "0"),
	)

	// only negative balances
	ok, err := IsVaporizable([]*core.Balance{balance(1, "-10")}, cache)
	require.NoError(t, err)
	assert.True(t, ok)

	// any positive balance disqualifies
	ok, err = IsVaporizable([]*core.Balance{balance(1, "-10"), balance(2, "1")}, cache)
	require.NoError(t, err)
	assert.False(t, ok)

	// all zero is neither liquidatable nor vaporizable
	ok, err = IsVaporizable([]*core.Balance{balance(1, "0")}, cache)
	require.NoError(t, err)
	assert.False(t, ok)
}
