package market

import (
	"context"
	"testing"
	"time"

	"solo/core"
	"solo/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcessWei(t *testing.T) {
	s := New(nil, nil)

	market := &core.Market{
		BorrowIndex:    number.Decimal("1.2"),
		SupplyIndex:    number.Decimal("1"),
		TotalSupplyPar: number.Decimal("150"),
		TotalBorrowPar: number.Decimal("50"),
		TotalBalance:   number.Decimal("100"),
	}

	// held 100, owed 50*1.2 = 60, owing suppliers 150
	excess := s.ExcessWei(context.Background(), market)
	assert.Equal(t, "10", excess.String())
}

func TestExcessWeiNeverOverstated(t *testing.T) {
	s := New(nil, nil)

	market := &core.Market{
		BorrowIndex:    number.Decimal("1.0000000000000000003"),
		SupplyIndex:    number.Decimal("1.0000000000000000003"),
		TotalSupplyPar: number.Decimal("100"),
		TotalBorrowPar: number.Decimal("100"),
		TotalBalance:   number.Decimal("0"),
	}

	// borrow claims truncated, supply claims ceiled: the surplus of a
	// perfectly matched book rounds down, never up
	excess := s.ExcessWei(context.Background(), market)
	assert.True(t, excess.Sign() <= 0)
}

func TestAccrueInterestInMemory(t *testing.T) {
	s := New(nil, nil)

	begin := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	market := &core.Market{
		BorrowIndex:    number.Decimal("1"),
		SupplyIndex:    number.Decimal("1"),
		IndexUpdatedAt: begin,
		BorrowRate:     number.Decimal("0.000001"),
		SupplyRate:     number.Decimal("0.0000008"),
	}

	// nil tx accrues in memory only
	err := s.AccrueInterest(context.Background(), nil, market, begin.Add(100*time.Second))
	require.NoError(t, err)

	assert.Equal(t, "1.0001", market.BorrowIndex.String())
	assert.Equal(t, "1.00008", market.SupplyIndex.String())
	assert.Equal(t, begin.Add(100*time.Second), market.IndexUpdatedAt)
}
