package account

import (
	"context"
	"testing"
	"time"

	"solo/core"
	"solo/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccountStore struct {
	core.IAccountStore
	balances map[core.Account][]*core.Balance
}

func (s *fakeAccountStore) FindBalances(ctx context.Context, account core.Account) ([]*core.Balance, error) {
	return s.balances[account], nil
}

func (s *fakeAccountStore) AccountsWithBorrows(ctx context.Context) ([]core.Account, error) {
	accounts := make([]core.Account, 0, len(s.balances))
	for account, balances := range s.balances {
		for _, b := range balances {
			if b.Principal.IsNegative() {
				accounts = append(accounts, account)
				break
			}
		}
	}
	return accounts, nil
}

type fakeMarketService struct {
	core.IMarketService
	markets []*core.Market
}

func (s *fakeMarketService) BuildCache(ctx context.Context, at time.Time, accounts []core.Account, marketIDs ...uint64) (*core.MarketCache, error) {
	return core.NewMarketCache(at, s.markets), nil
}

func testSystem() *core.System {
	return &core.System{
		MarginRatio:      number.Decimal("0.15"),
		MinBorrowedValue: number.Decimal("5"),
	}
}

func testMarket(id uint64, price string) *core.Market {
	return &core.Market{
		ID:          id,
		Price:       number.Decimal(price),
		BorrowIndex: number.Decimal("1"),
		SupplyIndex: number.Decimal("1"),
	}
}

func balance(marketID uint64, principal string) *core.Balance {
	return &core.Balance{MarketID: marketID, Principal: number.Decimal(principal)}
}

func TestAccountValues(t *testing.T) {
	account := core.Account{Owner: "alice", Number: 0}
	store := &fakeAccountStore{balances: map[core.Account][]*core.Balance{
		account: {balance(1, "1"), balance(2, "-500")},
	}}
	markets := &fakeMarketService{markets: []*core.Market{
		testMarket(1, "2000"),
		testMarket(2, "1"),
	}}

	s := New(testSystem(), store, markets, nil)

	cache := core.NewMarketCache(time.Now(), markets.markets)
	values, err := s.AccountValues(context.Background(), account, cache)
	require.NoError(t, err)

	assert.Equal(t, "2000", values.SupplyValue.String())
	assert.Equal(t, "500", values.BorrowValue.String())
}

func TestIsCollateralized(t *testing.T) {
	account := core.Account{Owner: "alice", Number: 0}
	store := &fakeAccountStore{balances: map[core.Account][]*core.Balance{
		account: {balance(1, "115"), balance(2, "-100")},
	}}
	markets := &fakeMarketService{markets: []*core.Market{
		testMarket(1, "1"),
		testMarket(2, "1"),
	}}

	s := New(testSystem(), store, markets, nil)

	cache := core.NewMarketCache(time.Now(), markets.markets)
	ok, err := s.IsCollateralized(context.Background(), account, cache, true)
	require.NoError(t, err)
	assert.True(t, ok)

	// shave the collateral below the requirement
	store.balances[account][0].Principal = number.Decimal("114.99")
	ok, err = s.IsCollateralized(context.Background(), account, cache, true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListLiquidatable(t *testing.T) {
	healthy := core.Account{Owner: "alice", Number: 0}
	sick := core.Account{Owner: "bob", Number: 0}
	noDebt := core.Account{Owner: "carol", Number: 0}

	store := &fakeAccountStore{balances: map[core.Account][]*core.Balance{
		healthy: {balance(1, "200"), balance(2, "-100")},
		sick:    {balance(1, "100"), balance(2, "-100")},
		noDebt:  {balance(1, "50")},
	}}
	markets := &fakeMarketService{markets: []*core.Market{
		testMarket(1, "1"),
		testMarket(2, "1"),
	}}

	s := New(testSystem(), store, markets, nil)

	accounts, err := s.ListLiquidatable(context.Background())
	require.NoError(t, err)

	require.Len(t, accounts, 1)
	assert.Equal(t, sick, accounts[0])
}

func TestIsVaporizable(t *testing.T) {
	vapor := core.Account{Owner: "bob", Number: 1}
	store := &fakeAccountStore{balances: map[core.Account][]*core.Balance{
		vapor: {balance(1, "0"), balance(2, "-25")},
	}}
	markets := &fakeMarketService{markets: []*core.Market{
		testMarket(1, "1"),
		testMarket(2, "1"),
	}}

	s := New(testSystem(), store, markets, nil)

	cache := core.NewMarketCache(time.Now(), markets.markets)
	ok, err := s.IsVaporizable(context.Background(), vapor, cache)
	require.NoError(t, err)
	assert.True(t, ok)

	store.balances[vapor][0].Principal = decimal.New(1, 0)
	ok, err = s.IsVaporizable(context.Background(), vapor, cache)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValuesKeyPerOperation(t *testing.T) {
	s := &accountService{}
	account := core.Account{Owner: "alice", Number: 0}

	at := time.Now()

	// one operation, one key
	assert.Equal(t, s.valuesKey(account, at), s.valuesKey(account, at))

	// two operations inside the same wall clock second must not share
	// an entry, or a repeat eligibility check reads stale values
	later := at.Add(time.Millisecond)
	assert.NotEqual(t, s.valuesKey(account, at), s.valuesKey(account, later))
}
