package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/betguide449-cyber/betguide-cli/internal/entitlement"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Manage VIP access codes (admin only)",
}

var codesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all access codes",
	RunE: func(cmd *cobra.Command, args []string) error {
		envr, err := initEnv()
		if err != nil {
			return err
		}
		defer envr.Close()

		codes, err := envr.Engine.ListCodes(cmd.Context())
		if err != nil {
			return codesErr(err)
		}
		if len(codes) == 0 {
			fmt.Println("No codes found.")
			return nil
		}

		fmt.Printf("%-16s %-12s %-8s %-10s %s\n", "CODE", "USED/TOTAL", "ACTIVE", "CREATED", "ASSIGNED TO")
		for _, c := range codes {
			assigned := c.AssignedTo
			if assigned == "" {
				assigned = "unassigned"
			}
			created := time.UnixMilli(c.CreatedAt).Format("2006-01-02")
			fmt.Printf("%-16s %-12s %-8t %-10s %s\n",
				c.Code, fmt.Sprintf("%d/%d", c.UsedPredictions, c.Predictions), c.Active, created, assigned)
		}
		return nil
	},
}

var codesCreateCmd = &cobra.Command{
	Use:   "create <code> <quota>",
	Short: "Create a new access code with a total prediction pool",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		envr, err := initEnv()
		if err != nil {
			return err
		}
		defer envr.Close()

		quota, err := strconv.Atoi(args[1])
		if err != nil {
			return eris.Wrapf(err, "invalid quota %q", args[1])
		}

		if err := envr.Engine.CreateCode(cmd.Context(), args[0], quota); err != nil {
			if eris.Is(err, entitlement.ErrDuplicateCode) {
				fmt.Println("Code already exists.")
				return nil
			}
			return codesErr(err)
		}
		fmt.Println("Code created successfully.")
		return nil
	},
}

var codesToggleCmd = &cobra.Command{
	Use:   "toggle <code>",
	Short: "Activate or deactivate a code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		envr, err := initEnv()
		if err != nil {
			return err
		}
		defer envr.Close()

		active, err := envr.Engine.ToggleCode(cmd.Context(), args[0])
		if err != nil {
			if eris.Is(err, entitlement.ErrInvalidCode) {
				fmt.Println("Code not found.")
				return nil
			}
			return codesErr(err)
		}
		if active {
			fmt.Println("Code activated.")
		} else {
			fmt.Println("Code deactivated.")
		}
		return nil
	},
}

var codesDeleteYes bool

var codesDeleteCmd = &cobra.Command{
	Use:   "delete <code>",
	Short: "Delete a code permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		envr, err := initEnv()
		if err != nil {
			return err
		}
		defer envr.Close()

		if !codesDeleteYes {
			fmt.Printf("Delete code %s permanently? [y/N] ", args[0])
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := envr.Engine.DeleteCode(cmd.Context(), args[0]); err != nil {
			return codesErr(err)
		}
		fmt.Println("Code deleted.")
		return nil
	},
}

func codesErr(err error) error {
	if eris.Is(err, entitlement.ErrNotAdmin) {
		fmt.Println("Admin role required. Redeem the master code first.")
		return nil
	}
	return err
}

func init() {
	codesDeleteCmd.Flags().BoolVar(&codesDeleteYes, "yes", false, "skip the confirmation prompt")
	codesCmd.AddCommand(codesListCmd, codesCreateCmd, codesToggleCmd, codesDeleteCmd)
	rootCmd.AddCommand(codesCmd)
}
