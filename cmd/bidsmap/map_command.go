package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurolab-io/bidsmap/internal/render"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/dicomtag"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/heuristics"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/store"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/store/sqlite"
)

func newMapCommand(ctx *commandContext) *cobra.Command {
	var rawDir string
	var heuristicsFile string
	var output string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Scan a raw data folder and classify its series",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if rawDir == "" {
				rawDir = cfg.RawDir
			}
			if rawDir == "" {
				return fmt.Errorf("no raw data folder: pass --raw or set raw_dir in the config")
			}
			if heuristicsFile == "" {
				heuristicsFile = cfg.Bidsmap
			}

			heur, err := heuristics.Load(heuristicsFile, cfg.HeuristicsDir)
			if err != nil {
				return err
			}

			var st store.Store
			if cfg.DatabasePath != "" {
				st, err = sqlite.Open(cmd.Context(), cfg.DatabasePath)
				if err != nil {
					return err
				}
			}

			mapper := bidsmap.New(bidsmap.Options{
				Resolver:       dicomtag.NewResolver(nil, ctx.logger),
				Heuristics:     heur,
				HeuristicsName: heuristicsFile,
				Store:          st,
				Logger:         ctx.logger,
			})
			defer mapper.Close()

			report, err := mapper.MapFolder(cmd.Context(), rawDir)
			if err != nil {
				return err
			}

			render.SeriesTable(cmd.OutOrStdout(), report.Series)
			fmt.Fprintf(cmd.OutOrStdout(),
				"run %s: %d folders, %d accepted, %d duplicates, %d unknown\n",
				report.RunID, report.Folders, report.Accepted, report.Skipped, report.Unknown)

			if output != "" {
				if err := heuristics.Save(bidsmap.ReportHeuristics(report), output); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote bidsmap to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rawDir, "raw", "", "Raw data folder to scan")
	cmd.Flags().StringVar(&heuristicsFile, "heuristics", "", "Heuristics file (bare names resolve into the heuristics dir)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the discovered series as a bidsmap YAML")
	return cmd
}
