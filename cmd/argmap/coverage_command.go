package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/botirk38/argmap"
)

func newCoverageCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var width int

	cmd := &cobra.Command{
		Use:   "coverage <transcript-file> <diagram-file>",
		Short: "Score each part of a transcript against a diagram",
		Long:  "Split the transcript into token chunks and show how well the diagram covers each one, so parts of the debate it leaves out stand out.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript, err := readText(cmd, args[0])
			if err != nil {
				return err
			}
			diagram, err := readText(cmd, args[1])
			if err != nil {
				return err
			}

			analyzer, err := ctx.newAnalyzer(cmd.Context())
			if err != nil {
				return err
			}
			defer analyzer.Close()

			scores, err := analyzer.Coverage(cmd.Context(), transcript, argmap.CleanMermaidCode(diagram))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, scores)
			}

			rows := make([][]string, 0, len(scores))
			for _, s := range scores {
				rows = append(rows, []string{
					strconv.Itoa(s.Index),
					fmt.Sprintf("%d-%d", s.StartToken, s.EndToken),
					formatScore(s.Score),
					excerpt(s.Text, width),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Tokens", "Score", "Text"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print chunk scores as JSON")
	cmd.Flags().IntVar(&width, "width", 60, "Maximum characters of chunk text to show")
	return cmd
}
