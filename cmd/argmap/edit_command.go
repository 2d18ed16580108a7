package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var instruction string
	var audioPath string
	var write bool

	cmd := &cobra.Command{
		Use:   "edit <diagram-file>",
		Short: "Apply a natural-language or spoken edit to a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (strings.TrimSpace(instruction) == "") == (audioPath == "") {
				return errors.New("exactly one of --instruction or --audio is required")
			}
			if write && args[0] == "-" {
				return errors.New("--write needs a diagram file, not stdin")
			}

			diagram, err := readText(cmd, args[0])
			if err != nil {
				return err
			}

			analyzer, err := ctx.newAnalyzer(cmd.Context())
			if err != nil {
				return err
			}
			defer analyzer.Close()

			var edited string
			if audioPath != "" {
				audio, err := os.ReadFile(audioPath)
				if err != nil {
					return fmt.Errorf("read %s: %w", audioPath, err)
				}
				edited, err = analyzer.EditDiagramFromAudio(cmd.Context(), diagram, audio)
				if err != nil {
					return err
				}
			} else {
				edited, err = analyzer.EditDiagram(cmd.Context(), diagram, instruction)
				if err != nil {
					return err
				}
			}

			if write {
				return os.WriteFile(args[0], []byte(edited+"\n"), 0o644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), edited)
			return nil
		},
	}

	cmd.Flags().StringVarP(&instruction, "instruction", "i", "", "Edit to apply, in plain language")
	cmd.Flags().StringVar(&audioPath, "audio", "", "Audio file holding a spoken edit instruction")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the diagram file")
	return cmd
}
