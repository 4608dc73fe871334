package cmd

import (
	"strings"
	"time"

	"solo/core"
	"solo/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/gofrs/uuid"
	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "manage markets",
}

var addMarketCmd = &cobra.Command{
	Use:     "add <symbol> <asset_id> <price>",
	Aliases: []string{"am"},
	Short:   "add a market",
	Args:    cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		marketStore := provideMarketStore(database)

		assetID, err := uuid.FromString(args[1])
		if err != nil {
			cmd.PrintErrln("invalid asset id:", args[1])
			return
		}

		symbol := strings.ToUpper(args[0])
		existing, err := marketStore.FindBySymbol(ctx, symbol)
		if err != nil {
			cmd.PrintErrln("find market error:", err)
			return
		}

		if existing.ID > 0 {
			cmd.PrintErrln("market", symbol, "already exists")
			return
		}

		marginPremium, _ := cmd.Flags().GetString("margin-premium")
		spreadPremium, _ := cmd.Flags().GetString("spread-premium")
		borrowRate, _ := cmd.Flags().GetString("borrow-rate")
		supplyRate, _ := cmd.Flags().GetString("supply-rate")

		market := &core.Market{
			Symbol:         symbol,
			AssetID:        assetID.String(),
			Price:          number.Decimal(args[2]),
			BorrowIndex:    number.Decimal("1"),
			SupplyIndex:    number.Decimal("1"),
			IndexUpdatedAt: time.Now(),
			BorrowRate:     number.Decimal(borrowRate),
			SupplyRate:     number.Decimal(supplyRate),
			MarginPremium:  number.Decimal(marginPremium),
			SpreadPremium:  number.Decimal(spreadPremium),
		}

		err = database.Tx(func(tx *db.DB) error {
			return marketStore.Save(ctx, tx, market)
		})
		if err != nil {
			cmd.PrintErrln("save market error:", err)
			return
		}

		cmd.Println("market", symbol, "created")
	},
}

var listMarketsCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "list all markets",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		markets, err := provideMarketStore(database).All(ctx)
		if err != nil {
			cmd.PrintErrln("list markets error:", err)
			return
		}

		for _, m := range markets {
			cmd.Printf("%d\t%s\t%s\tprice=%s supply=%s borrow=%s\n",
				m.ID, m.Symbol, m.AssetID, m.Price, m.TotalSupplyPar, m.TotalBorrowPar)
		}
	},
}

func init() {
	addMarketCmd.Flags().String("margin-premium", "0", "margin premium")
	addMarketCmd.Flags().String("spread-premium", "0", "spread premium")
	addMarketCmd.Flags().String("borrow-rate", "0", "borrow rate per second")
	addMarketCmd.Flags().String("supply-rate", "0", "supply rate per second")

	marketCmd.AddCommand(addMarketCmd)
	marketCmd.AddCommand(listMarketsCmd)
	rootCmd.AddCommand(marketCmd)
}
