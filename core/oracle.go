package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceTicker price ticker
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// IPriceOracleService price oracle collaborator. Prices must be
// positive; freshness is the oracle's responsibility.
type IPriceOracleService interface {
	GetPrice(ctx context.Context, market *Market) (decimal.Decimal, error)
	PullPriceTicker(ctx context.Context, symbol string, t time.Time) (*PriceTicker, error)
	PullAllPriceTickers(ctx context.Context, t time.Time) ([]*PriceTicker, error)
}
