package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gowtham404/bookstore-auth-go/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the session and renew the access token when it expires",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		cobra.CheckErr(err)

		manager, _, err := newManager()
		cobra.CheckErr(err)

		watchdog := session.NewWatchdog(manager, cfg.WatchInterval, func(s *session.Session) {
			slog.Info("access token expired, renewing", "user", s.User.Email)
			if _, err := manager.Refresh(cmd.Context(), s); err != nil {
				slog.Error("renewal failed, run 'bookauth logout' to clear the session", "error", err)
				return
			}
			slog.Info("access token renewed", "user", s.User.Email)
		})

		watchdog.Start()
		defer watchdog.Stop()
		slog.Info("watching session", "interval", cfg.WatchInterval)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		slog.Info("stopping")
	},
}
