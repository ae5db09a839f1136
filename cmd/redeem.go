package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/betguide449-cyber/betguide-cli/internal/entitlement"
)

var redeemCmd = &cobra.Command{
	Use:   "redeem <code>",
	Short: "Redeem an access code to unlock the VIP tier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		envr, err := initEnv()
		if err != nil {
			return err
		}
		defer envr.Close()

		ctx := cmd.Context()
		res, err := envr.Engine.Redeem(ctx, args[0])
		if err != nil {
			switch {
			case eris.Is(err, entitlement.ErrInvalidCode):
				fmt.Println("Invalid code.")
			case eris.Is(err, entitlement.ErrInactiveCode):
				fmt.Println("Code is inactive.")
			case eris.Is(err, entitlement.ErrDeviceMismatch):
				fmt.Println("This code is already used on another device.")
			case eris.Is(err, entitlement.ErrExhaustedCode):
				fmt.Println("Code has exhausted its predictions.")
			default:
				return err
			}
			return nil
		}

		if res.AdminChallenge {
			fmt.Print("Enter admin key: ")
			reader := bufio.NewReader(os.Stdin)
			key, _ := reader.ReadString('\n')
			if err := envr.Engine.ConfirmAdmin(ctx, strings.TrimSpace(key)); err != nil {
				if eris.Is(err, entitlement.ErrAdminDenied) {
					fmt.Println("Access denied.")
					return nil
				}
				return err
			}
			fmt.Println("Admin mode enabled.")
			return nil
		}

		fmt.Printf("Code accepted. You have %d VIP predictions.\n", res.Remaining)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(redeemCmd)
}
