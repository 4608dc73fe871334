package market

import (
	"context"
	"fmt"
	"time"

	"solo/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a market store with a read through lru cache.
//
// Writes pass through and drop the cached row instead of refreshing
// it: the write may still roll back with its transaction, so the next
// read refetches whatever actually committed.
func Cache(store core.IMarketStore, exp time.Duration) core.IMarketStore {
	return &cacheMarketStore{
		IMarketStore: store,
		cache:        gcache.New(512).LRU().Expiration(exp).Build(),
		sf:           &singleflight.Group{},
	}
}

type cacheMarketStore struct {
	core.IMarketStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheMarketStore) Find(ctx context.Context, id uint64) (*core.Market, error) {
	key := s.marketKey(id)
	if v, err := s.cache.Get(key); err == nil {
		if market, ok := v.(*core.Market); ok {
			return market, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		market, err := s.IMarketStore.Find(ctx, id)
		if err != nil {
			return nil, err
		}

		s.cacheMarket(market)
		return market, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*core.Market), nil
}

func (s *cacheMarketStore) Save(ctx context.Context, tx *db.DB, market *core.Market) error {
	if err := s.IMarketStore.Save(ctx, tx, market); err != nil {
		return err
	}

	s.cache.Remove(s.marketKey(market.ID))
	return nil
}

func (s *cacheMarketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	if err := s.IMarketStore.Update(ctx, tx, market); err != nil {
		return err
	}

	s.cache.Remove(s.marketKey(market.ID))
	return nil
}

func (s *cacheMarketStore) cacheMarket(market *core.Market) {
	if market.ID > 0 {
		_ = s.cache.Set(s.marketKey(market.ID), market)
	}
}

func (s *cacheMarketStore) marketKey(id uint64) string {
	return fmt.Sprintf("market:%d", id)
}
