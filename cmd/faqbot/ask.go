package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askSession string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		res, err := a.orchestrator.HandleTurn(ctx, strings.Join(args, " "), askSession)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res.Answer)
		if res.MatchedItemID != nil {
			fmt.Fprintf(out, "\n(knowledge base item %s)\n", *res.MatchedItemID)
		}
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the bot in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		rl, err := a.newReadLine()
		if err != nil {
			return err
		}
		defer rl.Shutdown(ctx)

		return rl.Start(ctx)
	},
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", "", "continue an existing session id")
	rootCmd.AddCommand(askCmd, chatCmd)
}
