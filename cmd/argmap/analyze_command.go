package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/botirk38/argmap"
	"github.com/botirk38/argmap/internal/history"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var audio bool
	var noSave bool
	var jsonOut bool
	var outputPath string

	cmd := &cobra.Command{
		Use:   "analyze <transcript-file>",
		Short: "Run the full transcript to diagram pipeline",
		Long: `Extract the main claim, draft a Mermaid diagram, restyle it, make it more
descriptive and score it against the transcript. With --audio the file is sent
to the transcription service first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			analyzer, err := ctx.newAnalyzer(cmd.Context())
			if err != nil {
				return err
			}
			defer analyzer.Close()

			var res *argmap.Result
			if audio {
				res, err = analyzer.ProcessAudio(cmd.Context(), input)
			} else {
				res, err = analyzer.Process(cmd.Context(), string(input))
			}
			if err != nil {
				return err
			}

			var runID string
			if !noSave {
				runID, err = saveRun(ctx, cmd, res)
				if err != nil {
					return err
				}
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, []byte(res.Diagram+"\n"), 0o644); err != nil {
					return fmt.Errorf("write diagram: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, struct {
					ID string `json:"id,omitempty"`
					*argmap.Result
				}{runID, res})
			}

			fmt.Fprintf(out, "Main claim: %s\n\n", res.MainClaim)
			fmt.Fprintln(out, res.Diagram)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Local similarity: %s\n", formatScore(res.LocalScore))
			if res.LLMScore != nil {
				fmt.Fprintf(out, "LLM similarity:   %s\n", formatScore(*res.LLMScore))
			} else {
				fmt.Fprintf(out, "LLM similarity:   unavailable (%s)\n", res.LLMScoreError)
			}
			if res.LowSimilarity {
				fmt.Fprintln(out, "Warning: the diagram may not fully capture the transcript")
			}
			if runID != "" {
				fmt.Fprintf(out, "Saved run %s\n", runID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&audio, "audio", false, "Treat the input file as audio and transcribe it first")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record the run in history")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full result as JSON")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Also write the final diagram to this file")
	return cmd
}

// saveRun records res in history and returns the new run ID, or "" when
// history is disabled.
func saveRun(ctx *commandContext, cmd *cobra.Command, res *argmap.Result) (string, error) {
	store, err := ctx.openHistory()
	if err != nil {
		return "", err
	}
	if store == nil {
		return "", nil
	}
	defer store.Close()

	run := history.FromResult(res)
	if err := store.Save(cmd.Context(), run); err != nil {
		return "", err
	}
	return run.ID, nil
}
