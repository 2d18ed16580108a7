package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/botirk38/argmap"
	"github.com/botirk38/argmap/tfidf"
	"github.com/botirk38/argmap/tokenizer"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var terms int
	var jsonOut bool
	var metric string

	cmd := &cobra.Command{
		Use:   "compare <file1> <file2>",
		Short: "Score the TF-IDF similarity of two texts",
		Long:  "Score how similar two texts are in [0, 1] and list the terms that drove the score. Use - to read one of the files from stdin.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" && args[1] == "-" {
				return errors.New("only one of the two files can be read from stdin")
			}
			text1, err := readText(cmd, args[0])
			if err != nil {
				return err
			}
			text2, err := readText(cmd, args[1])
			if err != nil {
				return err
			}

			cmp := argmap.Explain(text1, text2, terms)
			if metric != "" {
				fn, err := ctx.comparator(metric)
				if err != nil {
					return err
				}
				cmp.Score = argmap.CompareTextsWith(fn, text1, text2)
			}
			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, cmp)
			}

			fmt.Fprintf(out, "Similarity: %s\n", formatScore(cmp.Score))
			fmt.Fprintf(out, "Tokens: %d / %d\n", cmp.Tokens1, cmp.Tokens2)
			if len(cmp.SharedTerms) > 0 {
				fmt.Fprintln(out, renderTermTable(cmp.SharedTerms))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&terms, "terms", "n", 10, "Number of shared terms to list (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the comparison as JSON")
	cmd.Flags().StringVar(&metric, "metric", "", "Vector similarity (cosine, dot, euclidean, manhattan); defaults to cosine")
	return cmd
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var useLLM bool

	cmd := &cobra.Command{
		Use:   "check <transcript-file> <diagram-file>",
		Short: "Score how well a Mermaid diagram covers a transcript",
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

			diagram = argmap.CleanMermaidCode(diagram)
			local := argmap.CompareTexts(transcript, tokenizer.ExtractDiagramText(diagram))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Local similarity: %s\n", formatScore(local))

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if local < cfg.Analysis.LowSimilarityThreshold {
				fmt.Fprintf(out, "Warning: below the %.2f threshold\n", cfg.Analysis.LowSimilarityThreshold)
			}

			if !useLLM {
				return nil
			}
			analyzer, err := ctx.newAnalyzer(cmd.Context())
			if err != nil {
				return err
			}
			defer analyzer.Close()

			score, err := analyzer.CheckSimilarityLLM(cmd.Context(), transcript, diagram)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "LLM similarity: %s\n", formatScore(score))
			return nil
		},
	}

	cmd.Flags().BoolVar(&useLLM, "llm", false, "Also ask the configured model to rate the diagram")
	return cmd
}

func renderTermTable(terms []tfidf.TermScore) string {
	rows := make([][]string, 0, len(terms))
	for _, t := range terms {
		rows = append(rows, []string{t.Term, fmt.Sprintf("%.6f", t.Score)})
	}
	return renderTable([]string{"Term", "Weight"}, rows, []columnAlignment{alignLeft, alignRight})
}
