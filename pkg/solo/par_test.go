package solo

import (
	"testing"

	"solo/core"
	"solo/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParToWei(t *testing.T) {
	index := core.Index{
		Borrow: number.Decimal("1.2"),
		Supply: number.Decimal("1.1"),
	}

	// positive principal uses the supply index
	assert.Equal(t, "110", ParToWei(number.Decimal("100"), index).String())
	// negative principal uses the borrow index
	assert.Equal(t, "-120", ParToWei(number.Decimal("-100"), index).String())
	assert.True(t, ParToWei(number.Decimal("0"), index).IsZero())
}

func TestWeiToParRoundTrip(t *testing.T) {
	index := core.Index{
		Borrow: number.Decimal("1.25"),
		Supply: number.Decimal("1.1"),
	}

	// clean inputs round trip exactly
	for _, s := range []string{"100", "-80", "0.5", "-0.4"} {
		par := number.Decimal(s)
		got := WeiToPar(ParToWei(par, index), index)
		assert.Equal(t, par.String(), got.String(), "round trip %s", s)
	}
}

func TestWeiToParRoundsAwayFromZero(t *testing.T) {
	index := core.Index{
		Borrow: number.Decimal("3"),
		Supply: number.Decimal("3"),
	}

	// 1/3 is inexact; the principal magnitude must never understate
	// the wei amount it represents
	pos := WeiToPar(number.Decimal("1"), index)
	neg := WeiToPar(number.Decimal("-1"), index)

	require.True(t, pos.Mul(index.Supply).GreaterThanOrEqual(number.Decimal("1")))
	require.True(t, neg.Mul(index.Borrow).LessThanOrEqual(number.Decimal("-1")))
}

func TestParToWeiZeroIndexDefaultsToOne(t *testing.T) {
	wei := ParToWei(number.Decimal("42"), core.Index{})
	assert.Equal(t, "42", wei.String())
}

func TestApplyParDelta(t *testing.T) {
	market := &core.Market{
		TotalSupplyPar: number.Decimal("1000"),
		TotalBorrowPar: number.Decimal("400"),
	}

	// supply shrinks
	ApplyParDelta(market, number.Decimal("100"), number.Decimal("60"))
	assert.Equal(t, "960", market.TotalSupplyPar.String())
	assert.Equal(t, "400", market.TotalBorrowPar.String())

	// borrow partially repaid
	ApplyParDelta(market, number.Decimal("-50"), number.Decimal("-20"))
	assert.Equal(t, "960", market.TotalSupplyPar.String())
	assert.Equal(t, "370", market.TotalBorrowPar.String())

	// supply flips into borrow
	ApplyParDelta(market, number.Decimal("10"), number.Decimal("-5"))
	assert.Equal(t, "950", market.TotalSupplyPar.String())
	assert.Equal(t, "375", market.TotalBorrowPar.String())
}
