package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resetLinkCmd)
	rootCmd.AddCommand(resetPasswordCmd)
}

var resetLinkCmd = &cobra.Command{
	Use:   "reset-link <email>",
	Short: "Request a password reset mail",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, err := newManager()
		cobra.CheckErr(err)

		ack, err := client.SendPasswordResetLink(cmd.Context(), args[0])
		if err != nil {
			slog.Error("reset link request failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(ack.Message)
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <token>",
	Short: "Set a new password with the token from the reset mail",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, err := newManager()
		cobra.CheckErr(err)

		password, err := readPassword("New password: ")
		cobra.CheckErr(err)

		ack, err := client.ResetPassword(cmd.Context(), args[0], password)
		if err != nil {
			slog.Error("password reset failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(ack.Message)
	},
}
