package cmd

import (
	"solo/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

var operatorCmd = &cobra.Command{
	Use:   "operator",
	Short: "manage account operators",
}

var addOperatorCmd = &cobra.Command{
	Use:   "add <owner> <operator>",
	Short: "allow an address to operate the owner's accounts",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		operatorStore := provideOperatorStore(database)
		err := database.Tx(func(tx *db.DB) error {
			return operatorStore.Save(ctx, tx, &core.OperatorPair{
				Owner:    args[0],
				Operator: args[1],
			})
		})
		if err != nil {
			cmd.PrintErrln("save operator error:", err)
			return
		}

		cmd.Println("operator", args[1], "added for", args[0])
	},
}

var removeOperatorCmd = &cobra.Command{
	Use:     "remove <owner> <operator>",
	Aliases: []string{"rm"},
	Short:   "revoke an operator",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		operatorStore := provideOperatorStore(database)
		err := database.Tx(func(tx *db.DB) error {
			return operatorStore.Delete(ctx, tx, args[0], args[1])
		})
		if err != nil {
			cmd.PrintErrln("delete operator error:", err)
			return
		}

		cmd.Println("operator", args[1], "removed for", args[0])
	},
}

func init() {
	operatorCmd.AddCommand(addOperatorCmd)
	operatorCmd.AddCommand(removeOperatorCmd)
	rootCmd.AddCommand(operatorCmd)
}
