package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/service/ui"
	"github.com/sandevgo/faqbot/pkg/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Manage the knowledge base",
}

var kbImportCmd = &cobra.Command{
	Use:   "import [file.yaml]",
	Short: "Import knowledge items from a YAML file",
	Long: `Imports a YAML list of items:

  - question: How do I reset my password?
    answer: Use the reset link on the login page.
    language: en
    references: [https://example.com/help]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		var items []core.KnowledgeItem
		if err := yaml.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		n, err := a.catalog.ImportItems(ctx, items)
		if err != nil {
			return err
		}
		log.FromCtx(ctx).Info().Int("items", n).Str("file", args[0]).Msg("imported knowledge items")
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d items\n", n)
		return nil
	},
}

var kbUnansweredCmd = &cobra.Command{
	Use:   "unanswered",
	Short: "List questions the knowledge base could not answer",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		questions, err := a.catalog.ListUnanswered(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, q := range questions {
			fmt.Fprintf(out, "%s  %s  %s\n",
				ui.IDStyle.Render(q.ID),
				ui.DescStyle.Render(q.FirstSeenAt.Format("2006-01-02 15:04")),
				q.Question)
		}
		if len(questions) == 0 {
			fmt.Fprintln(out, "no unanswered questions")
		}
		return nil
	},
}

var kbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List knowledge items",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		items, err := a.catalog.ListItems(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, it := range items {
			fmt.Fprintf(out, "%s  [%s]  %s\n", ui.IDStyle.Render(it.ID), it.Language, it.Question)
		}
		return nil
	},
}

func init() {
	kbCmd.AddCommand(kbImportCmd, kbUnansweredCmd, kbListCmd)
	rootCmd.AddCommand(kbCmd)
}
