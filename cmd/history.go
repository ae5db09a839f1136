package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/betguide449-cyber/betguide-cli/internal/entitlement"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show today's saved VIP predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		envr, err := initEnv()
		if err != nil {
			return err
		}
		defer envr.Close()

		preds, err := envr.Engine.History(cmd.Context())
		if eris.Is(err, entitlement.ErrNoHistory) {
			fmt.Println("No history found for today.")
			return nil
		}
		if err != nil {
			return err
		}

		printBatch(preds, nil)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
