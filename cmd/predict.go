package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/betguide449-cyber/betguide-cli/internal/entitlement"
	"github.com/betguide449-cyber/betguide-cli/internal/model"
)

var (
	predictVip    bool
	predictCount  int
	predictMarket string
	predictForce  bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Generate today's predictions",
	Long:  "Generates the free daily batch, or a custom VIP batch when a code has been redeemed. The free batch is served from today's cache once generated.",
	RunE: func(cmd *cobra.Command, args []string) error {
		envr, err := initEnv()
		if err != nil {
			return err
		}
		defer envr.Close()

		ctx := cmd.Context()
		tier := model.TierFree
		count := predictCount
		market := "Any"
		if predictVip {
			tier = model.TierVip
			market = predictMarket
			if !cmd.Flags().Changed("count") {
				count = cfg.Engine.DefaultVipBatch
			}
			count = envr.Engine.NormalizeBatchSize(ctx, count)
			if count == 0 {
				fmt.Println("Nothing fetchable: your code pool or today's allowance is exhausted.")
				return nil
			}
		}

		res, err := envr.Engine.Fetch(ctx, entitlement.FetchRequest{
			Tier:      tier,
			BatchSize: count,
			Market:    market,
			Force:     predictForce,
		})
		if err != nil {
			return printDenial(err)
		}

		if predictVip && len(res.Predictions) == 0 {
			status := envr.Engine.Status(ctx)
			if status.Role == model.RoleFree {
				fmt.Println("VIP is locked. Redeem an access code first: betguide redeem <code>")
				return nil
			}
			fmt.Println("No suitable matches found for your filters. Try --market \"Any\".")
			return nil
		}

		if res.FromCache {
			fmt.Println("Serving today's free batch from cache. Use --force to regenerate.")
		}
		printBatch(res.Predictions, res.Sources)
		return nil
	},
}

// printDenial turns engine denials into actionable messages; anything else
// propagates as a command error.
func printDenial(err error) error {
	var remainder *entitlement.DailyRemainderError
	switch {
	case eris.As(err, &remainder):
		fmt.Printf("Only %d predictions left for today. Lower the count or wait for the daily reset.\n", remainder.Remaining)
	case eris.Is(err, entitlement.ErrDailyLimitReached):
		fmt.Println("Daily VIP limit reached. Your saved history is still available: betguide history")
	case eris.Is(err, entitlement.ErrInsufficientTotalPool):
		fmt.Println("Not enough predictions left in your code's total pool. Redeem a new code: betguide redeem <code>")
	case eris.Is(err, entitlement.ErrSessionExpired):
		fmt.Println("Your access code no longer exists. You have been switched back to the free tier.")
	case eris.Is(err, entitlement.ErrServiceSaturated):
		fmt.Println("The prediction service is temporarily saturated. Please try again later.")
	default:
		return err
	}
	return nil
}

func printBatch(preds []model.Prediction, sources []model.Source) {
	if len(preds) == 0 {
		fmt.Println("No predictions available at the moment.")
		return
	}
	for i, p := range preds {
		fmt.Printf("%2d. %s vs %s  [%s]\n", i+1, p.HomeTeam, p.AwayTeam, p.League)
		fmt.Printf("    %s @ %.2f  (confidence %d%%, risk %s, kickoff %s)\n",
			p.Prediction, p.Odds, p.Confidence, p.RiskLevel, p.KickoffTime)
		if p.Analysis != "" {
			fmt.Printf("    %s\n", p.Analysis)
		}
	}
	if len(sources) > 0 {
		fmt.Println("\nSources:")
		for _, s := range sources {
			fmt.Printf("  - %s (%s)\n", s.Title, s.URL)
		}
	}
}

func init() {
	predictCmd.Flags().BoolVar(&predictVip, "vip", false, "request the VIP tier")
	predictCmd.Flags().IntVar(&predictCount, "count", 6, "number of predictions (VIP only, default from config)")
	predictCmd.Flags().StringVar(&predictMarket, "market", "Any", "market filter (VIP only)")
	predictCmd.Flags().BoolVar(&predictForce, "force", false, "bypass today's free cache")
	rootCmd.AddCommand(predictCmd)
}
