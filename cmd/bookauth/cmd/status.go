package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gowtham404/bookstore-auth-go/claims"
	"github.com/gowtham404/bookstore-auth-go/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(renewCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored session and its expiry",
	Run: func(cmd *cobra.Command, args []string) {
		manager, _, err := newManager()
		cobra.CheckErr(err)

		current, err := manager.Current()
		cobra.CheckErr(err)
		if current == nil {
			fmt.Println("No session")
			return
		}

		fmt.Printf("User:  %s <%s>\n", current.User.Name, current.User.Email)
		expiresAt, err := claims.ExpiresAt(current.AccessToken)
		if err != nil {
			fmt.Printf("Token: undecodable (%v), treated as expired\n", err)
			return
		}
		if manager.IsExpired(current) {
			fmt.Printf("Token: expired at %s\n", expiresAt.Format(time.RFC3339))
		} else {
			fmt.Printf("Token: valid until %s\n", expiresAt.Format(time.RFC3339))
		}
	},
}

var renewCmd = &cobra.Command{
	Use:   "renew",
	Short: "Renew the access token of the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		manager, _, err := newManager()
		cobra.CheckErr(err)

		current, err := manager.Refresh(cmd.Context(), nil)
		if errors.Is(err, session.ErrNoSession) {
			slog.Error("no session to renew, log in first")
			os.Exit(1)
		}
		if err != nil {
			slog.Error("renewal failed, session left untouched", "error", err)
			os.Exit(1)
		}

		expiresAt, _ := claims.ExpiresAt(current.AccessToken)
		fmt.Printf("Token renewed, valid until %s\n", expiresAt.Format(time.RFC3339))
	},
}
