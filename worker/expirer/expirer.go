package expirer

import (
	"context"
	"time"

	"solo/core"
	"solo/pkg/solo"
	"solo/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// Worker force-closes borrows whose expiration has passed,
// seizing into the configured solid account
type Worker struct {
	worker.BaseJob
	caller        string
	solid         core.Account
	accountStore  core.IAccountStore
	expiryStore   core.IExpiryStore
	marketService core.IMarketService
	expiryService core.IExpiryService
}

// New new expirer worker
func New(
	location string,
	caller string,
	solid core.Account,
	accountStore core.IAccountStore,
	expiryStore core.IExpiryStore,
	marketService core.IMarketService,
	expiryService core.IExpiryService,
) *Worker {
	job := Worker{
		caller:        caller,
		solid:         solid,
		accountStore:  accountStore,
		expiryStore:   expiryStore,
		marketService: marketService,
		expiryService: expiryService,
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
	log := logger.FromContext(ctx).WithField("worker", "expirer")

	now := time.Now()
	expiries, err := w.expiryStore.ListDue(ctx, uint32(now.Unix()), 100)
	if err != nil {
		log.WithError(err).Errorln("expiries.ListDue")
		return err
	}

	for _, expiry := range expiries {
		liquid := core.Account{Owner: expiry.Owner, Number: expiry.AccountNumber}

		heldMarketID, err := w.selectHeldMarket(ctx, liquid, expiry.MarketID, now)
		if err != nil {
			log.WithError(err).Errorln("expirer.selectHeldMarket", liquid)
			continue
		}

		if heldMarketID == 0 {
			// nothing positive to seize; the liquidator sweep owns this account
			continue
		}

		event, err := w.expiryService.Expire(ctx, &core.ExpireRequest{
			Caller:       w.caller,
			Solid:        w.solid,
			Liquid:       liquid,
			HeldMarketID: heldMarketID,
			OwedMarketID: expiry.MarketID,
			ExpiresAt:    expiry.ExpiresAt,
			Amount:       core.MaxAmount(),
		})
		if err != nil {
			// races with repayment or the liquidator are expected
			log.WithError(err).Infoln("expiries.Expire", liquid, "market", expiry.MarketID)
			continue
		}

		log.Infoln("expired", liquid, "market", expiry.MarketID, "owed", event.OwedWei)
	}

	return nil
}

// selectHeldMarket the most valuable positive balance of the account,
// zero when the account holds nothing to seize
func (w *Worker) selectHeldMarket(ctx context.Context, account core.Account, owedMarketID uint64, now time.Time) (uint64, error) {
	balances, err := w.accountStore.FindBalances(ctx, account)
	if err != nil {
		return 0, err
	}

	cache, err := w.marketService.BuildCache(ctx, now, []core.Account{account})
	if err != nil {
		return 0, err
	}

	var (
		best      uint64
		bestValue decimal.Decimal
	)
	for _, balance := range balances {
		if !balance.Principal.IsPositive() || balance.MarketID == owedMarketID {
			continue
		}

		market, err := cache.Get(balance.MarketID)
		if err != nil {
			return 0, err
		}

		value := solo.ParToWei(balance.Principal, market.Index()).Mul(market.Price)
		if value.GreaterThan(bestValue) {
			best = balance.MarketID
			bestValue = value
		}
	}

	return best, nil
}
