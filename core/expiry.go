package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Expiry per account per market expiration record.
//
// set only for negative balances; zero means unset. Cleared
// automatically when the borrow is fully repaid.
type Expiry struct {
	ID            uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Owner         string    `sql:"size:64;unique_index:expiry_idx" json:"owner"`
	AccountNumber uint64    `sql:"unique_index:expiry_idx" json:"account_number"`
	MarketID      uint64    `sql:"unique_index:expiry_idx" json:"market_id"`
	ExpiresAt     uint32    `sql:"default:0" json:"expires_at"`
	Version       int64     `sql:"default:0" json:"version"`
	CreatedAt     time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ApprovedSender a sender the owner pre approved to set expiries,
// with the minimum time delta the sender must leave before expiration
type ApprovedSender struct {
	ID           uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Owner        string    `sql:"size:64;unique_index:approved_sender_idx" json:"owner"`
	Sender       string    `sql:"size:64;unique_index:approved_sender_idx" json:"sender"`
	MinTimeDelta uint32    `sql:"default:0" json:"min_time_delta"`
	CreatedAt    time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IExpiryStore expiry store interface
type IExpiryStore interface {
	Find(ctx context.Context, account Account, marketID uint64) (*Expiry, error)
	FindByAccount(ctx context.Context, account Account) ([]*Expiry, error)
	// ListDue expirations at or past the given clock
	ListDue(ctx context.Context, now uint32, limit int) ([]*Expiry, error)
	Save(ctx context.Context, tx *db.DB, expiry *Expiry) error
	FindApprovedSender(ctx context.Context, owner, sender string) (*ApprovedSender, error)
	SaveApprovedSender(ctx context.Context, tx *db.DB, approval *ApprovedSender) error
}

// Prices spread adjusted price pair used by one liquidation
type Prices struct {
	HeldPrice decimal.Decimal `json:"held_price"`
	// owed price raised by the (possibly ramped) liquidation spread
	OwedPrice decimal.Decimal `json:"owed_price"`
}

// ExpireRequest forced closing of an expired borrow
type ExpireRequest struct {
	Caller       string  `json:"caller"`
	Solid        Account `json:"solid"`
	Liquid       Account `json:"liquid"`
	HeldMarketID uint64  `json:"held_market_id"`
	OwedMarketID uint64  `json:"owed_market_id"`
	// must equal the expiration currently on record
	ExpiresAt uint32 `json:"expires_at"`
	Amount    Amount `json:"amount"`
}

// IExpiryService expiry engine
type IExpiryService interface {
	GetExpiry(ctx context.Context, account Account, marketID uint64) (uint32, error)
	// SetExpiry permitted for the owner or an approved sender; zero unsets
	SetExpiry(ctx context.Context, caller string, account Account, marketID uint64, expiresAt uint32) error
	// SpreadAdjustedPrices ramps the spread linearly from expiry over the
	// configured window, applied to the owed price only
	SpreadAdjustedPrices(cache *MarketCache, heldMarketID, owedMarketID uint64, expiresAt uint32) (*Prices, error)
	Expire(ctx context.Context, req *ExpireRequest) (*LiquidationEvent, error)
}
