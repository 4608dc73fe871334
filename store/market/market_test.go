package market

import (
	"testing"

	"solo/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMarketColumnsKeepZeroFields(t *testing.T) {
	market := &core.Market{
		ID:      1,
		Version: 5,
	}

	cols := marketColumns(market)

	// a cleared flag or a rate set back to zero must still be written
	assert.Equal(t, false, cols["isolation_mode"])
	assert.True(t, cols["borrow_rate"].(decimal.Decimal).IsZero())
	assert.True(t, cols["total_balance"].(decimal.Decimal).IsZero())
	assert.Equal(t, int64(5), cols["version"])
}
