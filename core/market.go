package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Market market info
type Market struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Symbol  string `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	AssetID string `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	// latest oracle price, value per unit
	Price decimal.Decimal `sql:"type:decimal(32,16)" json:"price"`
	// interest indices, monotonically non-decreasing
	BorrowIndex    decimal.Decimal `sql:"type:decimal(32,16);default:1" json:"borrow_index"`
	SupplyIndex    decimal.Decimal `sql:"type:decimal(32,16);default:1" json:"supply_index"`
	IndexUpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"index_updated_at"`
	// per second rates, written by the interest setter
	BorrowRate decimal.Decimal `sql:"type:decimal(32,16)" json:"borrow_rate"`
	SupplyRate decimal.Decimal `sql:"type:decimal(32,16)" json:"supply_rate"`
	// risk multiplier raising the collateral requirement for this market
	MarginPremium decimal.Decimal `sql:"type:decimal(20,8)" json:"margin_premium"`
	// risk multiplier raising the liquidation reward for this market
	SpreadPremium decimal.Decimal `sql:"type:decimal(20,8)" json:"spread_premium"`
	IsolationMode bool            `sql:"default:false" json:"isolation_mode"`
	// zero caps close the market, markets are never deleted
	BorrowCap decimal.Decimal `sql:"type:decimal(32,16);default:0" json:"borrow_cap"`
	SupplyCap decimal.Decimal `sql:"type:decimal(32,16);default:0" json:"supply_cap"`
	// aggregate principals across all accounts
	TotalSupplyPar decimal.Decimal `sql:"type:decimal(32,16)" json:"total_supply_par"`
	TotalBorrowPar decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrow_par"`
	// tokens actually held by the protocol for this market
	TotalBalance decimal.Decimal `sql:"type:decimal(32,16)" json:"total_balance"`
	Version      int64           `sql:"default:0" json:"version"`
	CreatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Index interest index pair of a market
type Index struct {
	Borrow    decimal.Decimal `json:"borrow"`
	Supply    decimal.Decimal `json:"supply"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Index current index pair
func (m *Market) Index() Index {
	return Index{
		Borrow:    m.BorrowIndex,
		Supply:    m.SupplyIndex,
		UpdatedAt: m.IndexUpdatedAt,
	}
}

// IsClosing both caps at zero means the market is being decommissioned
func (m *Market) IsClosing() bool {
	return !m.BorrowCap.IsPositive() && !m.SupplyCap.IsPositive()
}

// IMarketStore market store interface
type IMarketStore interface {
	Save(ctx context.Context, tx *db.DB, market *Market) error
	Find(ctx context.Context, id uint64) (*Market, error)
	FindBySymbol(ctx context.Context, symbol string) (*Market, error)
	All(ctx context.Context) ([]*Market, error)
	Update(ctx context.Context, tx *db.DB, market *Market) error
}

// IMarketService market service interface
type IMarketService interface {
	// AccrueInterest advances both indices of the market up to the given time
	AccrueInterest(ctx context.Context, tx *db.DB, market *Market, at time.Time) error
	// ExcessWei protocol surplus of the market's token, may be negative
	ExcessWei(ctx context.Context, market *Market) decimal.Decimal
	// BuildCache snapshots every market either account touches plus the named ids
	BuildCache(ctx context.Context, at time.Time, accounts []Account, marketIDs ...uint64) (*MarketCache, error)
}
