// Command winprob hosts the win-probability viewer and offers one-shot lookups.
//
// Usage:
//
//	winprob serve
//	winprob schedule --date 2024-06-28
//	winprob series --game 745444
//	winprob series --date 2024-06-28 --team yankees
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/winprob-viewer/internal/config"
	"github.com/preston-bernstein/winprob-viewer/internal/logging"
	"github.com/preston-bernstein/winprob-viewer/internal/metrics"
	"github.com/preston-bernstein/winprob-viewer/internal/providers"
	"github.com/preston-bernstein/winprob-viewer/internal/server"
)

const (
	appName    = "winprob-viewer"
	appVersion = "dev"
)

// buildProvider is swapped in tests to avoid network access.
var buildProvider = func(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	return server.Build(cfg, logger, metrics.NewRecorder())
}

// app carries what every subcommand needs after the root pre-run.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}
	var envFile string

	root := &cobra.Command{
		Use:           "winprob",
		Short:         "MLB win-probability viewer",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; real environment variables win over file values.
			_ = godotenv.Load(envFile)

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.NewLogger(logging.Config{
				Level:   cfg.LogLevel,
				Format:  cfg.LogFormat,
				Service: appName,
				Version: appVersion,
				Output:  errOut,
			})
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(serveCmd(a))
	root.AddCommand(scheduleCmd(a))
	root.AddCommand(seriesCmd(a))
	return root
}

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP host with the live viewer session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv("SKIP_SERVER_RUN") == "1" {
				return nil
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.cfg, a.logger)
			srv.Run(ctx, stop)
			return nil
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
