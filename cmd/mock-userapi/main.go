package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	console "github.com/phsym/console-slog"

	"github.com/gowtham404/bookstore-auth-go/mockapi"
)

func main() {
	godotenv.Load()

	logger := slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	address := flag.String("addr", ":8000", "listen address")
	accessTTL := flag.Duration("access-ttl", 15*time.Minute, "access token lifetime")
	refreshTTL := flag.Duration("refresh-ttl", 7*24*time.Hour, "refresh token lifetime")
	seed := flag.Bool("seed", false, "seed a verified demo user (a@b.com / Abc@1234)")
	flag.Parse()

	signingKey := os.Getenv("MOCK_USERAPI_SIGNING_KEY")
	if signingKey == "" {
		signingKey = "mock-userapi-dev-key"
		slog.Warn("MOCK_USERAPI_SIGNING_KEY not set, using built-in development key")
	}

	server, err := mockapi.New(mockapi.Config{
		SigningKey:      []byte(signingKey),
		AccessTokenTTL:  *accessTTL,
		RefreshTokenTTL: *refreshTTL,
	})
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	if *seed {
		userID := server.CreateUser("Demo User", "a@b.com", "Abc@1234", true)
		slog.Info("seeded demo user", "email", "a@b.com", "user_id", userID)
	}

	slog.Info("mock user API listening", "addr", *address)
	if err := server.Start(*address); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
