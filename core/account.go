package core

import (
	"context"
	"fmt"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// AccountStatus account status
type AccountStatus int

const (
	// AccountStatusNormal normal
	AccountStatusNormal AccountStatus = iota
	// AccountStatusLiquidating being liquidated, sticky across calls
	AccountStatusLiquidating
	// AccountStatusVaporizing being settled from protocol excess
	AccountStatusVaporizing
)

func (s AccountStatus) String() string {
	switch s {
	case AccountStatusLiquidating:
		return "Liquidating"
	case AccountStatusVaporizing:
		return "Vaporizing"
	default:
		return "Normal"
	}
}

// Account a numbered sub account of an owner
type Account struct {
	Owner  string `json:"owner"`
	Number uint64 `json:"number"`
}

func (a Account) String() string {
	return fmt.Sprintf("%s#%d", a.Owner, a.Number)
}

// Balance signed principal of an account in one market
//
// positive principal is supply, negative is borrow. Wei value is
// principal times the matching side of the market index.
type Balance struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Owner         string          `sql:"size:64;unique_index:balance_idx" json:"owner"`
	AccountNumber uint64          `sql:"unique_index:balance_idx" json:"account_number"`
	MarketID      uint64          `sql:"unique_index:balance_idx" json:"market_id"`
	Principal     decimal.Decimal `sql:"type:decimal(32,16)" json:"principal"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Account the account this balance belongs to
func (b *Balance) Account() Account {
	return Account{Owner: b.Owner, Number: b.AccountNumber}
}

// AccountState per account status row, created on first touch
type AccountState struct {
	ID            uint64        `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Owner         string        `sql:"size:64;unique_index:account_state_idx" json:"owner"`
	AccountNumber uint64        `sql:"unique_index:account_state_idx" json:"account_number"`
	Status        AccountStatus `sql:"default:0" json:"status"`
	Version       int64         `sql:"default:0" json:"version"`
	CreatedAt     time.Time     `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time     `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IAccountStore account store interface, the ledger of record
type IAccountStore interface {
	FindBalance(ctx context.Context, account Account, marketID uint64) (*Balance, error)
	FindBalances(ctx context.Context, account Account) ([]*Balance, error)
	// MarketIDsWithBalances every market id any of the accounts has a nonzero balance in
	MarketIDsWithBalances(ctx context.Context, accounts ...Account) ([]uint64, error)
	SaveBalance(ctx context.Context, tx *db.DB, balance *Balance) error
	FindState(ctx context.Context, account Account) (*AccountState, error)
	SaveState(ctx context.Context, tx *db.DB, state *AccountState) error
	// Accounts all accounts holding at least one borrow
	AccountsWithBorrows(ctx context.Context) ([]Account, error)
}

// AccountValues collateral summary of one account under one cache
type AccountValues struct {
	// sum of price times supply wei over all markets
	SupplyValue decimal.Decimal `json:"supply_value"`
	// sum of price times borrow wei, each leg raised by its margin premium
	BorrowValue decimal.Decimal `json:"borrow_value"`
}

// IAccountService collateralization engine
type IAccountService interface {
	AccountValues(ctx context.Context, account Account, cache *MarketCache) (*AccountValues, error)
	IsCollateralized(ctx context.Context, account Account, cache *MarketCache, requireMinBorrow bool) (bool, error)
	IsVaporizable(ctx context.Context, account Account, cache *MarketCache) (bool, error)
	ListLiquidatable(ctx context.Context) ([]Account, error)
}
