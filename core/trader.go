package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// TraderType trader plugin variant
type TraderType int

const (
	// TraderTypeExternalLiquidity route through an external liquidity source
	TraderTypeExternalLiquidity TraderType = iota
	// TraderTypeInternalLiquidity settle against another account internally
	TraderTypeInternalLiquidity
	// TraderTypeIsolationModeWrapper wrap into an isolation mode asset
	TraderTypeIsolationModeWrapper
	// TraderTypeIsolationModeUnwrapper unwrap out of an isolation mode asset
	TraderTypeIsolationModeUnwrapper
)

func (t TraderType) String() string {
	switch t {
	case TraderTypeExternalLiquidity:
		return "ExternalLiquidity"
	case TraderTypeInternalLiquidity:
		return "InternalLiquidity"
	case TraderTypeIsolationModeWrapper:
		return "IsolationModeWrapper"
	case TraderTypeIsolationModeUnwrapper:
		return "IsolationModeUnwrapper"
	default:
		return "Unknown"
	}
}

// TradeRequest fixed call contract for all trader variants
type TradeRequest struct {
	InputMarketID  uint64          `json:"input_market_id"`
	OutputMarketID uint64          `json:"output_market_id"`
	InputAmount    decimal.Decimal `json:"input_amount"`
	// slippage protection, validated by the caller not the trader
	MinOutputAmount decimal.Decimal `json:"min_output_amount"`
	// opaque order data forwarded untouched
	Data []byte `json:"data,omitempty"`
}

// TradeResult settlement instruction returned by a trader.
// Never trusted to self report correctly, always validated
// against the caller supplied bounds.
type TradeResult struct {
	InputAmount  decimal.Decimal `json:"input_amount"`
	OutputAmount decimal.Decimal `json:"output_amount"`
}

// TradeStep one hop of a post liquidation trade path. The first hop
// sells recovered collateral, the last hop must land in the owed
// market.
type TradeStep struct {
	Trader          Trader          `json:"-"`
	OutputMarketID  uint64          `json:"output_market_id"`
	MinOutputAmount decimal.Decimal `json:"min_output_amount"`
	Data            []byte          `json:"data,omitempty"`
}

// Trader opaque trading plugin invoked at most once per liquidation path
type Trader interface {
	Type() TraderType
	Trade(ctx context.Context, req *TradeRequest) (*TradeResult, error)
}

// ILiquidatorRegistry allow list consulted before a proxy may liquidate an asset
type ILiquidatorRegistry interface {
	IsWhitelisted(ctx context.Context, marketID uint64, proxy string) (bool, error)
}

// ILiquidationCallback best effort notification after amounts are
// finalized but before balances commit. Failures are swallowed so a
// misbehaving account cannot block its own liquidation.
type ILiquidationCallback interface {
	OnLiquidate(ctx context.Context, liquid Account, heldMarketID uint64, heldDelta decimal.Decimal, owedMarketID uint64, owedDelta decimal.Decimal) error
}
