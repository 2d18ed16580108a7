package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/botirk38/argmap/internal/history"
)

var errHistoryDisabled = errors.New("history is disabled (set history.enabled = true)")

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect stored pipeline runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryDeleteCommand(ctx))
	return historyCmd
}

func withHistory(ctx *commandContext, fn func(*history.Store) error) error {
	store, err := ctx.openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return errHistoryDisabled
	}
	defer store.Close()
	return fn(store)
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if jsonOut {
					if runs == nil {
						runs = []*history.Run{}
					}
					return writeJSON(out, runs)
				}
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, r := range runs {
					llm := "-"
					if r.LLMScore != nil {
						llm = formatScore(*r.LLMScore)
					}
					rows = append(rows, []string{
						r.ID,
						r.CreatedAt.Local().Format(time.DateTime),
						formatScore(r.LocalScore),
						llm,
						excerpt(r.MainClaim, 50),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Created", "Local", "LLM", "Main claim"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "Maximum runs to list")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print runs as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var diagramOnly bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				switch {
				case jsonOut:
					return writeJSON(out, run)
				case diagramOnly:
					fmt.Fprintln(out, run.Diagram)
					return nil
				}

				fmt.Fprintf(out, "ID:         %s\n", run.ID)
				fmt.Fprintf(out, "Created:    %s\n", run.CreatedAt.Local().Format(time.DateTime))
				fmt.Fprintf(out, "Provider:   %s\n", run.Provider)
				fmt.Fprintf(out, "Duration:   %s\n", run.Duration)
				fmt.Fprintf(out, "Local:      %s\n", formatScore(run.LocalScore))
				if run.LLMScore != nil {
					fmt.Fprintf(out, "LLM:        %s\n", formatScore(*run.LLMScore))
				}
				fmt.Fprintf(out, "Main claim: %s\n\n", run.MainClaim)
				fmt.Fprintln(out, run.Diagram)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the run as JSON")
	cmd.Flags().BoolVar(&diagramOnly, "diagram", false, "Print only the Mermaid diagram")
	return cmd
}

func newHistoryDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
				return nil
			})
		},
	}
}
