package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lingo/internal/apitest"
)

var (
	addr     string
	username string
	password string
	tokenTTL time.Duration
	verbose  bool
)

func main() {
	root := &cobra.Command{
		Use:          "devapi",
		Short:        "In-memory lingo API for local development",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	f := root.Flags()
	f.StringVar(&addr, "addr", ":5130", "listen address")
	f.StringVar(&username, "user", "demo", "seeded username (empty to skip)")
	f.StringVar(&password, "password", "demo1234", "seeded password")
	f.DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "lifetime of issued tokens")
	f.BoolVarP(&verbose, "verbose", "v", false, "log every request")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	api := apitest.New(apitest.WithTokenTTL(tokenTTL), apitest.WithLogger(logger))
	if username != "" {
		api.AddUser(username, password)
		logger.Info("seeded account", "username", username)
	}

	srv := &http.Server{Addr: addr, Handler: api, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("dev API listening", "addr", addr, "base", "/api")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
