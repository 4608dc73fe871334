package core

import (
	"context"
	"time"
)

// LiquidationRequest arguments of one liquidate call, never persisted
type LiquidationRequest struct {
	Caller       string  `json:"caller"`
	Solid        Account `json:"solid"`
	Liquid       Account `json:"liquid"`
	HeldMarketID uint64  `json:"held_market_id"`
	OwedMarketID uint64  `json:"owed_market_id"`
	Amount       Amount  `json:"amount"`
	// optional price override, used by expiry based closings in
	// place of the standard liquidation spread
	Prices *Prices `json:"prices,omitempty"`
	// Forced skips the collateralization gate; the caller already
	// established eligibility (an expired borrow closes regardless)
	Forced bool `json:"forced,omitempty"`
	// Trades optionally sells the recovered collateral through a
	// chain of traders inside the same transaction; the final output
	// is credited to the solid account in the owed market. Any
	// failing hop aborts the whole operation.
	Trades []TradeStep `json:"-"`
	// ambient clock of the enclosing operation; zero means now
	At time.Time `json:"-"`
}

// VaporizationRequest arguments of one vaporize call
type VaporizationRequest struct {
	Caller       string  `json:"caller"`
	Solid        Account `json:"solid"`
	Vapor        Account `json:"vapor"`
	HeldMarketID uint64  `json:"held_market_id"`
	OwedMarketID uint64  `json:"owed_market_id"`
	Amount       Amount  `json:"amount"`
}

// ILiquidateService liquidate and vaporize engine
type ILiquidateService interface {
	Liquidate(ctx context.Context, req *LiquidationRequest) (*LiquidationEvent, error)
	Vaporize(ctx context.Context, req *VaporizationRequest) (*VaporizationEvent, error)
}
