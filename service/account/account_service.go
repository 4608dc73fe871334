package account

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"solo/core"
	"solo/pkg/solo"

	"github.com/fox-one/pkg/logger"
	"github.com/go-redis/redis"
)

type accountService struct {
	system        *core.System
	accountStore  core.IAccountStore
	marketService core.IMarketService
	redis         *redis.Client
}

// New new account service
func New(
	system *core.System,
	accountStore core.IAccountStore,
	marketService core.IMarketService,
	redis *redis.Client,
) core.IAccountService {
	return &accountService{
		system:        system,
		accountStore:  accountStore,
		marketService: marketService,
		redis:         redis,
	}
}

func (s *accountService) AccountValues(ctx context.Context, account core.Account, cache *core.MarketCache) (*core.AccountValues, error) {
	if values, ok := s.cachedValues(account, cache.Time()); ok {
		return values, nil
	}

	balances, err := s.accountStore.FindBalances(ctx, account)
	if err != nil {
		return nil, err
	}

	values, err := solo.AccountValues(balances, cache)
	if err != nil {
		return nil, err
	}

	s.cacheValues(account, cache.Time(), values)
	return values, nil
}

func (s *accountService) IsCollateralized(ctx context.Context, account core.Account, cache *core.MarketCache, requireMinBorrow bool) (bool, error) {
	values, err := s.AccountValues(ctx, account, cache)
	if err != nil {
		return false, err
	}

	return solo.IsCollateralized(values, s.system.MarginRatio, s.system.MinBorrowedValue, requireMinBorrow), nil
}

func (s *accountService) IsVaporizable(ctx context.Context, account core.Account, cache *core.MarketCache) (bool, error) {
	balances, err := s.accountStore.FindBalances(ctx, account)
	if err != nil {
		return false, err
	}

	return solo.IsVaporizable(balances, cache)
}

func (s *accountService) ListLiquidatable(ctx context.Context) ([]core.Account, error) {
	log := logger.FromContext(ctx)

	accounts, err := s.accountStore.AccountsWithBorrows(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	liquidatable := make([]core.Account, 0, 4)
	for _, account := range accounts {
		cache, err := s.marketService.BuildCache(ctx, now, []core.Account{account})
		if err != nil {
			log.WithError(err).Errorln("markets.BuildCache", account)
			continue
		}

		ok, err := s.IsCollateralized(ctx, account, cache, true)
		if err != nil {
			log.WithError(err).Errorln("accounts.IsCollateralized", account)
			continue
		}

		if !ok {
			liquidatable = append(liquidatable, account)
		}
	}

	return liquidatable, nil
}

// value cache keyed by account and operation clock; two eligibility
// checks within one operation must agree
func (s *accountService) cachedValues(account core.Account, at time.Time) (*core.AccountValues, bool) {
	if s.redis == nil {
		return nil, false
	}

	bs, err := s.redis.Get(s.valuesKey(account, at)).Bytes()
	if err != nil {
		return nil, false
	}

	var values core.AccountValues
	if err := json.Unmarshal(bs, &values); err != nil {
		return nil, false
	}

	return &values, true
}

func (s *accountService) cacheValues(account core.Account, at time.Time, values *core.AccountValues) {
	if s.redis == nil {
		return
	}

	if bs, err := json.Marshal(values); err == nil {
		s.redis.Set(s.valuesKey(account, at), bs, time.Hour)
	}
}

// keyed by the nanosecond operation clock: checks sharing one cache
// share an entry, while back to back operations in the same second
// never see each other's stale values
func (s *accountService) valuesKey(account core.Account, at time.Time) string {
	return fmt.Sprintf("solo:values:%s:%d:%d", account.Owner, account.Number, at.UnixNano())
}
