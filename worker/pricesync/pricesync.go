package pricesync

import (
	"context"
	"time"

	"solo/core"
	"solo/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
)

const checkpointKey = "price_sync_checkpoint"

// Worker pulls oracle tickers into the market rows. The checkpoint
// keeps restarts from rewriting prices with an older tick.
type Worker struct {
	worker.BaseJob
	db            *db.DB
	marketStore   core.IMarketStore
	priceService  core.IPriceOracleService
	property      property.Store
}

// New new price sync worker
func New(
	location string,
	database *db.DB,
	marketStore core.IMarketStore,
	priceService core.IPriceOracleService,
	property property.Store,
) *Worker {
	job := Worker{
		db:           database,
		marketStore:  marketStore,
		priceService: priceService,
		property:     property,
	}

	l, _ := time.LoadLocation(location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 5s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pricesync")

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	now := time.Now()
	if offset := v.Time(); !offset.IsZero() && !now.After(offset) {
		return nil
	}

	tickers, err := w.priceService.PullAllPriceTickers(ctx, now)
	if err != nil {
		log.WithError(err).Errorln("oracle.PullAllPriceTickers")
		return err
	}

	bySymbol := make(map[string]*core.PriceTicker, len(tickers))
	for _, t := range tickers {
		bySymbol[t.Symbol] = t
	}

	markets, err := w.marketStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.All")
		return err
	}

	for _, market := range markets {
		ticker, ok := bySymbol[market.Symbol]
		if !ok || !ticker.Price.IsPositive() {
			continue
		}

		if market.Price.Equal(ticker.Price) {
			continue
		}

		market.Price = ticker.Price
		market := market
		err := w.db.Tx(func(tx *db.DB) error {
			return w.marketStore.Update(ctx, tx, market)
		})
		if err != nil {
			log.WithError(err).Errorln("markets.Update", market.Symbol)
			continue
		}
	}

	if err := w.property.Save(ctx, checkpointKey, now); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}
