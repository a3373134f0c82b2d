package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurolab-io/bidsmap/internal/render"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/store/sqlite"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded mapping runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.DatabasePath == "" {
				return fmt.Errorf("no database configured: set database_path in the config")
			}

			st, err := sqlite.Open(cmd.Context(), cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			render.RunsTable(cmd.OutOrStdout(), runs)
			return nil
		},
	}
	return cmd
}
