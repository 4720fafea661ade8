package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/faqbot/internal/config"
	"github.com/sandevgo/faqbot/internal/service/installer"
	"github.com/sandevgo/faqbot/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Create the runtime directory and its .env interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		runtimePath := config.GetRuntimePath()

		if _, err := installer.RunWizard(runtimePath); err != nil {
			return err
		}

		envPath := filepath.Join(runtimePath, ".env")
		if _, err := godotenv.Read(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("written .env could not be read back")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Installation complete! You can now run 'faqbot serve'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
