package cmd

import (
	"solo/core"
	"solo/worker"
	"solo/worker/expirer"
	"solo/worker/interest"
	"solo/worker/liquidator"
	"solo/worker/pricesync"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run solo background workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		propertyStore := providePropertyStore(database)
		marketStore := provideMarketStore(database)
		accountStore := provideAccountStore(database)
		expiryStore := provideExpiryStore(database)
		operatorStore := provideOperatorStore(database)
		eventStore := provideEventStore(database)

		priceService := providePriceService()
		marketService := provideMarketService(marketStore, accountStore)
		accountService := provideAccountService(system, accountStore, marketService)
		liquidateService := provideLiquidateService(
			database, system, provideGuard(),
			marketStore, accountStore, expiryStore, operatorStore, eventStore,
			marketService, accountService,
		)
		expiryService := provideExpiryService(
			database, system, accountStore, expiryStore, operatorStore,
			marketService, liquidateService,
		)
		liquidationProxy := provideProxy(
			system, accountStore, operatorStore,
			marketService, accountService, liquidateService,
		)

		solid := core.Account{
			Owner:  cfg.Liquidator.SolidOwner,
			Number: cfg.Liquidator.SolidNumber,
		}

		jobs := []worker.IJob{
			interest.New(cfg.App.Location, database, marketStore, marketService),
			pricesync.New(cfg.App.Location, database, marketStore, priceService, propertyStore),
			liquidator.New(
				cfg.App.Location,
				cfg.Liquidator.Caller,
				solid,
				cfg.Liquidator.MinValueRatio,
				accountService,
				liquidationProxy,
			),
			expirer.New(
				cfg.App.Location,
				cfg.Liquidator.Caller,
				solid,
				accountStore,
				expiryStore,
				marketService,
				expiryService,
			),
		}

		for _, job := range jobs {
			job.Start()
		}

		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			for _, job := range jobs {
				job.Stop()
			}
			close(done)
		})

		log.Infoln("workers started")
		<-done
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
