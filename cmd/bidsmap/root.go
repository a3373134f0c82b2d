package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/neurolab-io/bidsmap/internal/cliconfig"
)

// commandContext carries flag values and lazily loaded config between
// subcommands.
type commandContext struct {
	configPath string
	cfg        *cliconfig.Config
	logger     *slog.Logger
}

func (c *commandContext) ensureConfig() (cliconfig.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := cliconfig.Load(c.configPath)
	if err != nil {
		return cliconfig.Config{}, err
	}
	c.cfg = &cfg
	c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "bidsmap",
		Short:         "Map DICOM acquisition folders onto BIDS labels",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newMapCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newRunsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
