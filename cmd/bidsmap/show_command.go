package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/neurolab-io/bidsmap/pkg/bidsmap/heuristics"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <heuristics-file>",
		Short: "Display the templates of a heuristics file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			heur, err := heuristics.Load(args[0], cfg.HeuristicsDir)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Modality", "Attribute patterns", "Labels"})

			modalities := make([]string, 0, len(heur.DICOM))
			for m := range heur.DICOM {
				modalities = append(modalities, m)
			}
			sort.Strings(modalities)

			for _, modality := range modalities {
				for _, tpl := range heur.DICOM[modality] {
					t.AppendRow(table.Row{modality, kvSummary(tpl.Attributes), kvSummary(tpl.Labels)})
				}
			}
			t.Render()
			return nil
		},
	}
	return cmd
}

func kvSummary(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += k + "=" + m[k]
	}
	return out
}
