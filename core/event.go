package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// LiquidationEvent final wei deltas of both legs of one liquidation
type LiquidationEvent struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID       string          `sql:"size:36;unique_index:liquidation_trace_idx" json:"trace_id"`
	SolidOwner    string          `sql:"size:64" json:"solid_owner"`
	SolidNumber   uint64          `json:"solid_number"`
	LiquidOwner   string          `sql:"size:64" json:"liquid_owner"`
	LiquidNumber  uint64          `json:"liquid_number"`
	HeldMarketID  uint64          `json:"held_market_id"`
	OwedMarketID  uint64          `json:"owed_market_id"`
	HeldWei       decimal.Decimal `sql:"type:decimal(32,16)" json:"held_wei"`
	OwedWei       decimal.Decimal `sql:"type:decimal(32,16)" json:"owed_wei"`
	HeldPrice     decimal.Decimal `sql:"type:decimal(32,16)" json:"held_price"`
	OwedPrice     decimal.Decimal `sql:"type:decimal(32,16)" json:"owed_price"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// VaporizationEvent record of one vaporization, including the same
// token repayment and the excess consumed
type VaporizationEvent struct {
	ID             uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID        string          `sql:"size:36;unique_index:vaporization_trace_idx" json:"trace_id"`
	SolidOwner     string          `sql:"size:64" json:"solid_owner"`
	SolidNumber    uint64          `json:"solid_number"`
	VaporOwner     string          `sql:"size:64" json:"vapor_owner"`
	VaporNumber    uint64          `json:"vapor_number"`
	HeldMarketID   uint64          `json:"held_market_id"`
	OwedMarketID   uint64          `json:"owed_market_id"`
	SameTokenWei   decimal.Decimal `sql:"type:decimal(32,16)" json:"same_token_wei"`
	HeldWei        decimal.Decimal `sql:"type:decimal(32,16)" json:"held_wei"`
	OwedWei        decimal.Decimal `sql:"type:decimal(32,16)" json:"owed_wei"`
	ExcessConsumed decimal.Decimal `sql:"type:decimal(32,16)" json:"excess_consumed"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IEventStore persisted engine events
type IEventStore interface {
	CreateLiquidation(ctx context.Context, tx *db.DB, event *LiquidationEvent) error
	CreateVaporization(ctx context.Context, tx *db.DB, event *VaporizationEvent) error
	ListLiquidations(ctx context.Context, account Account, limit int) ([]*LiquidationEvent, error)
}
