package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gowtham404/bookstore-auth-go/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and store the session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manager, _, err := newManager()
		cobra.CheckErr(err)

		password, err := readPassword("Password: ")
		cobra.CheckErr(err)

		current, err := manager.Login(cmd.Context(), args[0], password)
		if errors.Is(err, session.ErrVerificationRequired) {
			slog.Error("account is not verified, redeem the verification mail first", "error", err)
			os.Exit(1)
		}
		if err != nil {
			slog.Error("login failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Logged in as %s <%s>\n", current.User.Name, current.User.Email)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Terminate the session and clear the stored record",
	Run: func(cmd *cobra.Command, args []string) {
		manager, _, err := newManager()
		cobra.CheckErr(err)

		if err := manager.Logout(cmd.Context()); err != nil {
			slog.Error("logout failed", "error", err)
			os.Exit(1)
		}
		fmt.Println("Logged out")
	},
}
