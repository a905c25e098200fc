package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/audiobatch/internal/adapter/report"
	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/port"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect previous batches",
	}

	listCmd := newHistoryListCommand(ctx)
	historyCmd.AddCommand(listCmd)
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryDeleteCommand(ctx))

	// `audiobatch history` alone lists.
	historyCmd.RunE = listCmd.RunE
	return historyCmd
}

func withHistory(ctx *commandContext, fn func(port.HistoryStore) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("history is disabled (history.backend = \"none\")")
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent batches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store port.HistoryStore) error {
				if limit == 0 {
					limit = ctx.config.History.ListLimit
				}
				summaries, err := store.ListOutcomes(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("list history: %w", err)
				}
				out := cmd.OutOrStdout()
				if len(summaries) == 0 {
					fmt.Fprintln(out, "No batches recorded.")
					return nil
				}
				fmt.Fprintln(out, report.HistoryTable(summaries))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of batches to list (default from config, -1 for all)")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <batch-id>",
		Short: "Print the full report of a stored batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			return withHistory(ctx, func(store port.HistoryStore) error {
				outcome, err := store.GetOutcome(cmd.Context(), args[0])
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("no batch with id %q", args[0])
				}
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				return report.Render(cmd.Context(), out, outcome, f, report.ShouldColorize(out))
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or html")
	return cmd
}

func newHistoryDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <batch-id>...",
		Short: "Remove stored batches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store port.HistoryStore) error {
				for _, id := range args {
					err := store.DeleteOutcome(cmd.Context(), id)
					if errors.Is(err, domain.ErrNotFound) {
						return fmt.Errorf("no batch with id %q", id)
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
				}
				return nil
			})
		},
	}
}
