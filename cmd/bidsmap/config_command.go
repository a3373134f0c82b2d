package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurolab-io/bidsmap/internal/cliconfig"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the tool configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ctx.configPath
			if err := cliconfig.WriteSample(path); err != nil {
				return err
			}
			if path == "" {
				path = cliconfig.DefaultPath()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "raw_dir        = %q\n", cfg.RawDir)
			fmt.Fprintf(out, "heuristics_dir = %q\n", cfg.HeuristicsDir)
			fmt.Fprintf(out, "bidsmap        = %q\n", cfg.Bidsmap)
			fmt.Fprintf(out, "database_path  = %q\n", cfg.DatabasePath)
			fmt.Fprintf(out, "log_level      = %q\n", cfg.LogLevel)
			return nil
		},
	}

	cmd.AddCommand(initCmd)
	cmd.AddCommand(showCmd)
	return cmd
}
