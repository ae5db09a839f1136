package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/betguide449-cyber/betguide-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "betguide",
	Short: "AI football prediction tips with free and VIP tiers",
	Long:  "Generates daily AI football predictions under a freemium model: one capped free batch per day, and a VIP tier unlocked by redeemable access codes with total-pool and daily quotas.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
