package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current tier, quota, and cache state",
	RunE: func(cmd *cobra.Command, args []string) error {
		envr, err := initEnv()
		if err != nil {
			return err
		}
		defer envr.Close()

		s := envr.Engine.Status(cmd.Context())
		fmt.Printf("Date:   %s\n", s.Date)
		switch s.Role {
		case model.RoleAdmin:
			fmt.Println("Status: SUPER VIP (Admin)")
		case model.RoleVip:
			fmt.Printf("Status: VIP (%d total)  Today: %d / %d\n", s.PredictionsLeft, s.DailyCount, s.DailyLimit)
			if s.DailyLimitReached {
				fmt.Println("Daily limit reached. Resets at midnight.")
			}
		default:
			fmt.Println("Status: Free user")
		}
		if s.FreeCachedToday {
			fmt.Println("Free tips for today are already generated.")
		}
		if s.HistoryAvailable {
			fmt.Println("Today's VIP history is available: betguide history")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
