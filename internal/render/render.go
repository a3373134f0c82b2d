// Package render formats mapping results as tables for the CLI.
package render

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/neurolab-io/bidsmap/pkg/bidsmap/series"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/store"
)

// Styled reports whether w is an interactive terminal that should get the
// decorated table style.
func Styled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if Styled(w) {
		t.SetStyle(table.StyleLight)
	} else {
		t.SetStyle(table.StyleDefault)
	}
	return t
}

// SeriesTable renders one row per classified series
func SeriesTable(w io.Writer, records []series.Record) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Folder", "Modality", "Labels", "Attributes"})
	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.Provenance,
			rec.Labels.Modality.String(),
			labelSummary(rec.Labels),
			attrSummary(rec.Attributes),
		})
	}
	t.Render()
}

// RunsTable renders one row per mapping run
func RunsTable(w io.Writer, runs []store.Run) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Run", "Raw dir", "Started", "Folders", "Accepted", "Skipped"})
	for _, r := range runs {
		started := ""
		if !r.StartedAt.IsZero() {
			started = r.StartedAt.Format("2006-01-02 15:04:05")
		}
		t.AppendRow(table.Row{r.ID, r.RawDir, started, r.Folders, r.Accepted, r.Skipped})
	}
	t.Render()
}

func labelSummary(labels series.Labels) string {
	var parts []string
	labels.Each(func(name string, v series.Value) {
		if name == "modality" || v.IsAbsent() {
			return
		}
		parts = append(parts, name+"="+v.String())
	})
	return strings.Join(parts, " ")
}

func attrSummary(attrs series.AttributeSet) string {
	var parts []string
	for _, key := range sortedKeys(attrs) {
		v := attrs[key]
		if v.IsAbsent() {
			continue
		}
		parts = append(parts, key+"="+v.String())
	}
	return strings.Join(parts, " ")
}

func sortedKeys(attrs series.AttributeSet) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
