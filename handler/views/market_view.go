package views

import (
	"solo/core"

	"github.com/shopspring/decimal"
)

// Market market view
type Market struct {
	core.Market
	// protocol surplus of this market's token
	ExcessWei decimal.Decimal `json:"excess_wei"`
}
