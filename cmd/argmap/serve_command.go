package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/botirk38/argmap/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			analyzer, err := ctx.newAnalyzer(cmd.Context())
			if err != nil {
				return err
			}
			defer analyzer.Close()

			var store server.RunStore
			hist, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if hist != nil {
				defer hist.Close()
				store = hist
			}

			srv, err := server.New(analyzer, store, logger)
			if err != nil {
				return err
			}

			addr := strings.TrimSpace(bind)
			if addr == "" {
				addr = cfg.Server.Bind
			}
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (defaults to server.bind)")
	return cmd
}
