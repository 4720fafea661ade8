package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/faqbot/pkg/log"
	"github.com/sandevgo/faqbot/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and chat bots",
	Long:  `Opens the database, rebuilds the search indexes and starts every enabled transport (HTTP API, Telegram).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting faqbot")

		services := NewServices(ctx)

		srv.StartServices(ctx, services)

		srv.ShutdownServices(ctx, services, srv.DefaultShutdownTimeout)
		logger.Info().Msg("faqbot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
