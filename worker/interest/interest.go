package interest

import (
	"context"
	"time"

	"solo/core"
	"solo/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
)

// Worker accrues every market's interest indices on a fixed schedule
// so stored indices never fall far behind the operation clock
type Worker struct {
	worker.BaseJob
	db            *db.DB
	marketStore   core.IMarketStore
	marketService core.IMarketService
}

// New new interest worker
func New(
	location string,
	database *db.DB,
	marketStore core.IMarketStore,
	marketService core.IMarketService,
) *Worker {
	job := Worker{
		db:            database,
		marketStore:   marketStore,
		marketService: marketService,
	}

	l, _ := time.LoadLocation(location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 10s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "interest")

	markets, err := w.marketStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.All")
		return err
	}

	now := time.Now()
	for _, market := range markets {
		market := market
		err := w.db.Tx(func(tx *db.DB) error {
			return w.marketService.AccrueInterest(ctx, tx, market, now)
		})
		if err != nil {
			log.WithError(err).Errorln("markets.AccrueInterest", market.Symbol)
			continue
		}
	}

	return nil
}
