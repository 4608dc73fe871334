package account

import (
	"testing"

	"solo/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStateColumnsKeepZeroStatus(t *testing.T) {
	state := &core.AccountState{
		Status:  core.AccountStatusNormal,
		Version: 3,
	}

	cols := stateColumns(state)

	// Normal is the zero status; losing it keeps an account sticky
	// Liquidating forever
	status, ok := cols["status"]
	assert.True(t, ok)
	assert.Equal(t, core.AccountStatusNormal, status)
	assert.Equal(t, int64(3), cols["version"])
}

func TestBalanceColumnsKeepZeroPrincipal(t *testing.T) {
	balance := &core.Balance{
		Principal: decimal.Zero,
		Version:   7,
	}

	cols := balanceColumns(balance)

	principal, ok := cols["principal"]
	assert.True(t, ok)
	assert.True(t, principal.(decimal.Decimal).IsZero())
	assert.Equal(t, int64(7), cols["version"])
}
