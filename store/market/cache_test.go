package market

import (
	"context"
	"testing"
	"time"

	"solo/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarketStore struct {
	core.IMarketStore
	markets map[uint64]*core.Market
	finds   int
}

func (s *fakeMarketStore) Find(ctx context.Context, id uint64) (*core.Market, error) {
	s.finds++
	m := *s.markets[id]
	return &m, nil
}

func (s *fakeMarketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	m := *market
	s.markets[market.ID] = &m
	return nil
}

func TestCacheInvalidatesOnUpdate(t *testing.T) {
	ctx := context.Background()

	inner := &fakeMarketStore{markets: map[uint64]*core.Market{
		1: {ID: 1, Symbol: "BTC", Price: decimal.New(100, 0)},
	}}
	store := Cache(inner, time.Minute)

	m, err := store.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.finds)

	// second read served from cache
	_, err = store.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.finds)

	updated := *m
	updated.Price = decimal.New(200, 0)
	require.NoError(t, store.Update(ctx, nil, &updated))

	// the write dropped the cached row; the next read refetches and
	// sees whatever the store committed
	got, err := store.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.finds)
	assert.True(t, got.Price.Equal(updated.Price))
}
