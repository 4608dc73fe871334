package cmd

import (
	"solo/core"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var expiryCmd = &cobra.Command{
	Use:   "expiry",
	Short: "manage borrow expirations",
}

var setExpiryCmd = &cobra.Command{
	Use:   "set <owner> <number> <market_id> <expires_at>",
	Short: "set or unset (zero) the expiration of a borrow",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		accountStore := provideAccountStore(database)
		expiryStore := provideExpiryStore(database)
		operatorStore := provideOperatorStore(database)
		marketStore := provideMarketStore(database)
		marketService := provideMarketService(marketStore, accountStore)

		expiryService := provideExpiryService(
			database, system,
			accountStore, expiryStore, operatorStore,
			marketService, nil,
		)

		caller, _ := cmd.Flags().GetString("caller")
		account := core.Account{
			Owner:  args[0],
			Number: cast.ToUint64(args[1]),
		}

		err := expiryService.SetExpiry(ctx, caller, account, cast.ToUint64(args[2]), cast.ToUint32(args[3]))
		if err != nil {
			cmd.PrintErrln("set expiry error:", err)
			return
		}

		cmd.Println("expiry updated for", account.String())
	},
}

var getExpiryCmd = &cobra.Command{
	Use:   "get <owner> <number> <market_id>",
	Short: "show the expiration of a borrow",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		account := core.Account{
			Owner:  args[0],
			Number: cast.ToUint64(args[1]),
		}

		expiresAt, err := provideExpiryStore(database).Find(ctx, account, cast.ToUint64(args[2]))
		if err != nil {
			cmd.PrintErrln("find expiry error:", err)
			return
		}

		cmd.Println("expires_at:", expiresAt.ExpiresAt)
	},
}

func init() {
	setExpiryCmd.Flags().String("caller", "", "address acting for the owner")

	expiryCmd.AddCommand(setExpiryCmd)
	expiryCmd.AddCommand(getExpiryCmd)
	rootCmd.AddCommand(expiryCmd)
}
