package views

import (
	"github.com/shopspring/decimal"
)

// BalanceLeg one market leg of an account
type BalanceLeg struct {
	MarketID  uint64          `json:"market_id"`
	Symbol    string          `json:"symbol"`
	Principal decimal.Decimal `json:"principal"`
	Wei       decimal.Decimal `json:"wei"`
	Value     decimal.Decimal `json:"value"`
	// unix seconds, zero when the borrow has no expiration
	ExpiresAt uint32 `json:"expires_at,omitempty"`
}

// Account account view with its current collateral summary
type Account struct {
	Owner          string          `json:"owner"`
	Number         uint64          `json:"number"`
	Status         string          `json:"status"`
	SupplyValue    decimal.Decimal `json:"supply_value"`
	BorrowValue    decimal.Decimal `json:"borrow_value"`
	Collateralized bool            `json:"collateralized"`
	Legs           []BalanceLeg    `json:"legs"`
}
