package cmd

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// migrateCmd creates or upgrades the ledger tables registered by the
// store packages (markets, balances, expiries, operators, events)
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "migrate ledger tables",
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			cmd.PrintErrln("migrate tables error:", err)
			return
		}

		cmd.Println("tables migrated")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
