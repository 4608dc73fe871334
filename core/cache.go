package core

import (
	"fmt"
	"sort"
	"time"
)

// MarketCache per operation snapshot of every referenced market.
//
// Built once per top level call; repeated Get calls within the same
// operation always return the identical snapshot, never re-reading
// from storage mid operation.
type MarketCache struct {
	at      time.Time
	markets map[uint64]*Market
}

// NewMarketCache new market cache
func NewMarketCache(at time.Time, markets []*Market) *MarketCache {
	m := make(map[uint64]*Market, len(markets))
	for _, market := range markets {
		m[market.ID] = market
	}

	return &MarketCache{at: at, markets: m}
}

// Time the ambient clock of the operation this cache belongs to
func (c *MarketCache) Time() time.Time {
	return c.at
}

// Get snapshot of the market. A missing id is a fatal error, not a default.
func (c *MarketCache) Get(marketID uint64) (*Market, error) {
	market, ok := c.markets[marketID]
	if !ok {
		return nil, fmt.Errorf("market cache: market %d not loaded: %w", marketID, ErrMarketNotFound)
	}

	return market, nil
}

// IDs all cached market ids, ascending
func (c *MarketCache) IDs() []uint64 {
	ids := make([]uint64, 0, len(c.markets))
	for id := range c.markets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
