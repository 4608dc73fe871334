package solo

import (
	"testing"
	"time"

	"solo/core"
	"solo/pkg/number"

	"github.com/stretchr/testify/assert"
)

func spreadMarket(price, spreadPremium string) *core.Market {
	return &core.Market{
		Price:         number.Decimal(price),
		SpreadPremium: number.Decimal(spreadPremium),
	}
}

func TestSpreadForPair(t *testing.T) {
	base := number.Decimal("0.05")

	spread := SpreadForPair(base, spreadMarket("1", "0"), spreadMarket("1", "0"))
	assert.Equal(t, "0.05", spread.String())

	spread = SpreadForPair(base, spreadMarket("1", "0.1"), spreadMarket("1", "0.2"))
	assert.Equal(t, "0.066", spread.String())
}

func TestSpreadAdjustedPrices(t *testing.T) {
	prices := SpreadAdjustedPrices(spreadMarket("2000", "0"), spreadMarket("1", "0"), number.Decimal("0.05"))
	assert.Equal(t, "2000", prices.HeldPrice.String())
	assert.Equal(t, "1.05", prices.OwedPrice.String())
}

func TestRampedSpread(t *testing.T) {
	spread := number.Decimal("0.05")
	expiresAt := uint32(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC).Unix())
	rampTime := int64(3600)

	at := func(offset time.Duration) time.Time {
		return time.Unix(int64(expiresAt), 0).Add(offset)
	}

	// zero at expiry, half way through the ramp, full after it
	assert.Equal(t, "0", RampedSpread(spread, expiresAt, at(0), rampTime).String())
	assert.Equal(t, "0.025", RampedSpread(spread, expiresAt, at(30*time.Minute), rampTime).String())
	assert.Equal(t, "0.05", RampedSpread(spread, expiresAt, at(time.Hour), rampTime).String())
	assert.Equal(t, "0.05", RampedSpread(spread, expiresAt, at(2*time.Hour), rampTime).String())

	// before expiry there is no discount at all
	assert.Equal(t, "0", RampedSpread(spread, expiresAt, at(-time.Minute), rampTime).String())
}

func TestResolveOwedWei(t *testing.T) {
	owedBalance := number.Decimal("-100")

	assert.Equal(t, "100", ResolveOwedWei(core.MaxAmount(), owedBalance).String())
	assert.Equal(t, "40", ResolveOwedWei(core.Exact(number.Decimal("40")), owedBalance).String())
	// requests above the debt are clamped to it
	assert.Equal(t, "100", ResolveOwedWei(core.Exact(number.Decimal("500")), owedBalance).String())
}

func TestLiquidationAmounts(t *testing.T) {
	prices := &core.Prices{
		HeldPrice: number.Decimal("1"),
		OwedPrice: number.Decimal("1.05"),
	}

	// enough collateral: full repayment at the spread adjusted rate
	heldWei, owedWei, clamped := LiquidationAmounts(number.Decimal("100"), number.Decimal("105"), prices)
	assert.False(t, clamped)
	assert.Equal(t, "105", heldWei.String())
	assert.Equal(t, "100", owedWei.String())
}

func TestLiquidationAmountsClamped(t *testing.T) {
	prices := &core.Prices{
		HeldPrice: number.Decimal("1"),
		OwedPrice: number.Decimal("1.05"),
	}

	// collateral binds: transfer everything held, repay what it buys
	heldWei, owedWei, clamped := LiquidationAmounts(number.Decimal("100"), number.Decimal("50"), prices)
	assert.True(t, clamped)
	assert.Equal(t, "50", heldWei.String())
	assert.Equal(t, "47.619047619047619", owedWei.String())

	// the held leg never exceeds what the account possessed
	assert.True(t, heldWei.LessThanOrEqual(number.Decimal("50")))
	// the repayment never exceeds the request
	assert.True(t, owedWei.LessThanOrEqual(number.Decimal("100")))
}
