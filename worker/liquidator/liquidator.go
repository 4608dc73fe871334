package liquidator

import (
	"context"
	"time"

	"solo/core"
	"solo/service/proxy"
	"solo/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Worker scans for undercollateralized accounts and liquidates them
// into the configured solid account through the direct proxy
type Worker struct {
	worker.BaseJob
	caller         string
	solid          core.Account
	minValueRatio  decimal.Decimal
	accountService core.IAccountService
	proxy          *proxy.Proxy
}

// New new liquidator worker
func New(
	location string,
	caller string,
	solid core.Account,
	minValueRatio decimal.Decimal,
	accountService core.IAccountService,
	liquidationProxy *proxy.Proxy,
) *Worker {
	job := Worker{
		caller:         caller,
		solid:          solid,
		minValueRatio:  minValueRatio,
		accountService: accountService,
		proxy:          liquidationProxy,
	}

	l, _ := time.LoadLocation(location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 30s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "liquidator")

	accounts, err := w.accountService.ListLiquidatable(ctx)
	if err != nil {
		log.WithError(err).Errorln("accounts.ListLiquidatable")
		return err
	}

	if len(accounts) == 0 {
		return nil
	}

	log.Infoln("liquidatable accounts:", len(accounts))

	var g errgroup.Group
	g.SetLimit(4)

	for _, account := range accounts {
		account := account
		g.Go(func() error {
			events, err := w.proxy.LiquidateDirect(ctx, &proxy.DirectRequest{
				Caller:        w.caller,
				Solid:         w.solid,
				Liquid:        account,
				MinValueRatio: w.minValueRatio,
			})
			if err != nil {
				// a single stubborn account must not stop the sweep
				log.WithError(err).Errorln("proxy.LiquidateDirect", account)
				return nil
			}

			log.Infoln("liquidated", account, "legs", len(events))
			return nil
		})
	}

	return g.Wait()
}
