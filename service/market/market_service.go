package market

import (
	"context"
	"fmt"
	"time"

	"solo/core"
	"solo/pkg/number"
	"solo/pkg/solo"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type marketService struct {
	marketStore  core.IMarketStore
	accountStore core.IAccountStore
}

// New new market service
func New(marketStore core.IMarketStore, accountStore core.IAccountStore) core.IMarketService {
	return &marketService{
		marketStore:  marketStore,
		accountStore: accountStore,
	}
}

// AccrueInterest advances both indices up to the given time.
//
// Accrual happens whenever an operation touches the market, so every
// calculation downstream of a cache build sees indices as of the
// operation's clock.
func (s *marketService) AccrueInterest(ctx context.Context, tx *db.DB, market *core.Market, at time.Time) error {
	index := solo.AccrueIndex(market.Index(), market.BorrowRate, market.SupplyRate, at)

	market.BorrowIndex = index.Borrow
	market.SupplyIndex = index.Supply
	market.IndexUpdatedAt = index.UpdatedAt

	if tx != nil {
		return s.marketStore.Update(ctx, tx, market)
	}

	return nil
}

// ExcessWei protocol surplus of the market's token: everything the
// protocol holds plus what it is owed, minus what it owes suppliers.
// Supply claims are ceiled and borrow claims truncated so the excess
// is never overstated.
func (s *marketService) ExcessWei(ctx context.Context, market *core.Market) decimal.Decimal {
	index := market.Index()
	borrowWei := solo.ParToWei(market.TotalBorrowPar.Neg(), index).Abs()
	supplyWei := number.Ceil(market.TotalSupplyPar.Mul(index.Supply), solo.MaxPrecision)

	return market.TotalBalance.Add(borrowWei).Sub(supplyWei)
}

// BuildCache snapshots every market either account has a balance in,
// plus the ids the caller names. Built once per top level operation;
// all markets are accrued in memory to the same clock.
func (s *marketService) BuildCache(ctx context.Context, at time.Time, accounts []core.Account, marketIDs ...uint64) (*core.MarketCache, error) {
	ids, err := s.accountStore.MarketIDsWithBalances(ctx, accounts...)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]bool, len(ids)+len(marketIDs))
	for _, id := range ids {
		seen[id] = true
	}
	for _, id := range marketIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	markets := make([]*core.Market, 0, len(ids))
	for _, id := range ids {
		market, err := s.marketStore.Find(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := solo.RequireCode(
			market.ID > 0,
			core.ErrMarketNotFound,
			fmt.Sprintf("market/not-found id=%d", id),
		); err != nil {
			return nil, err
		}

		// the store may serve shared cached rows; snapshot rows are
		// mutated by accrual and settlement and must be private copies
		snapshot := *market
		if err := s.AccrueInterest(ctx, nil, &snapshot, at); err != nil {
			return nil, err
		}

		markets = append(markets, &snapshot)
	}

	return core.NewMarketCache(at, markets), nil
}
