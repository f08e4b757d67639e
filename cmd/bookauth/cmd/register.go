package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(verifyCmd)
}

// readPassword prompts on stderr and reads one line from stdin, so the
// password never appears in the shell history via an argument.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var registerCmd = &cobra.Command{
	Use:   "register <name> <email>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, err := newManager()
		cobra.CheckErr(err)

		password, err := readPassword("Password: ")
		cobra.CheckErr(err)

		ack, err := client.Register(cmd.Context(), args[0], args[1], password)
		if err != nil {
			slog.Error("registration failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(ack.Message)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <token> <email>",
	Short: "Verify an account with the token from the verification mail",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, err := newManager()
		cobra.CheckErr(err)

		ack, err := client.VerifyAccount(cmd.Context(), args[0], args[1])
		if err != nil {
			slog.Error("verification failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(ack.Message)
	},
}
