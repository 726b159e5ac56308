package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/abhisek/opclass/internal/report"
	"github.com/abhisek/opclass/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and prune recorded classifications",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent classifications, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		minCatalog, _ := cmd.Flags().GetString("catalog")
		if minCatalog != "" && !semver.IsValid(minCatalog) {
			return fmt.Errorf("--catalog %q is not a semver version (e.g. v1.0.0)", minCatalog)
		}

		env, err := openEnv(cmd, storeRequired)
		if err != nil {
			return err
		}
		defer env.Close()

		events, err := env.store.EventRepo().QueryClassifications(cmd.Context(), store.QueryOpts{
			Limit:      limit,
			MinCatalog: minCatalog,
		})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		return report.History(cmd.OutOrStdout(), format, report.NewHistoryViews(events))
	},
}

var historyLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "List recorded LLM calls with token usage and cost",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		env, err := openEnv(cmd, storeRequired)
		if err != nil {
			return err
		}
		defer env.Close()

		events, err := env.store.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query LLM events: %w", err)
		}
		return report.LLMEvents(cmd.OutOrStdout(), format, report.NewLLMEventViews(events))
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent classifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		if keep < 0 {
			return fmt.Errorf("--keep must not be negative")
		}

		env, err := openEnv(cmd, storeRequired)
		if err != nil {
			return err
		}
		defer env.Close()

		n, err := env.store.EventRepo().Prune(cmd.Context(), keep)
		if err != nil {
			return fmt.Errorf("prune history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d registros removidos\n", n)
		return nil
	},
}

func init() {
	addFormatFlags(historyListCmd)
	historyListCmd.Flags().Int("limit", 20, "Maximum number of entries (0 for all)")
	historyListCmd.Flags().String("catalog", "", "Only entries recorded with this catalogue version or newer")

	addFormatFlags(historyLLMCmd)
	historyLLMCmd.Flags().Int("limit", 20, "Maximum number of entries (0 for all)")

	historyPruneCmd.Flags().Int("keep", 1000, "Number of most recent classifications to keep")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyLLMCmd)
	historyCmd.AddCommand(historyPruneCmd)
}
