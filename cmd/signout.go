package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out and return to the free tier",
	Long:  "Clears the local entitlement record. Daily counters and caches are kept, so signing back in the same day resumes the same quota.",
	RunE: func(cmd *cobra.Command, args []string) error {
		envr, err := initEnv()
		if err != nil {
			return err
		}
		defer envr.Close()

		if err := envr.Engine.SignOut(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signoutCmd)
}
