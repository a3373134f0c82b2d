// Package bidsmap maps raw DICOM acquisition folders onto BIDS
// classification labels using user-authored heuristics.
package bidsmap

import (
	"context"
	"log/slog"
	"time"

	"github.com/neurolab-io/bidsmap/pkg/bidsmap/dicomtag"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/filetype"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/heuristics"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/series"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/store"
)

// Mapper is the main mapping engine facade
type Mapper struct {
	resolver *dicomtag.Resolver
	heur     *heuristics.Heuristics
	heurName string
	store    store.Store
	logger   *slog.Logger
}

// Options configures a Mapper instance
type Options struct {
	// Resolver extracts attributes from DICOM files. Nil means a default
	// resolver over the parser provider.
	Resolver *dicomtag.Resolver
	// Heuristics holds the classification templates. Required.
	Heuristics *heuristics.Heuristics
	// HeuristicsName is recorded in run provenance
	HeuristicsName string
	// Store persists run provenance; nil disables persistence
	Store  store.Store
	Logger *slog.Logger
}

// New creates a Mapper with the given dependencies
func New(opts Options) *Mapper {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = dicomtag.NewResolver(nil, logger)
	}
	return &Mapper{
		resolver: resolver,
		heur:     opts.Heuristics,
		heurName: opts.HeuristicsName,
		store:    opts.Store,
		logger:   logger,
	}
}

// Close cleanly shuts down the Mapper
func (m *Mapper) Close() error {
	if m.store == nil {
		return nil
	}
	return m.store.Close()
}

// RunReport summarizes one mapping run
type RunReport struct {
	RunID    string
	Series   []series.Record
	Folders  int
	Accepted int
	Skipped  int
	Unknown  int
}

// MapFolder scans rawDir (one subdirectory per subject, one series folder
// per acquisition below that), classifies every acquisition and returns the
// deduplicated series list. Per-folder extraction failures degrade to
// warnings; only context cancellation and store failures abort the run.
func (m *Mapper) MapFolder(ctx context.Context, rawDir string) (*RunReport, error) {
	report := &RunReport{RunID: store.NewRunID()}

	if m.store != nil {
		run := store.Run{
			ID:         report.RunID,
			RawDir:     rawDir,
			Heuristics: m.heurName,
			StartedAt:  time.Now(),
		}
		if err := m.store.RecordRun(ctx, run); err != nil {
			return nil, err
		}
	}

	subjects, err := filetype.ListDirs(rawDir, "")
	if err != nil {
		return nil, err
	}

	for _, subject := range subjects {
		folders, err := filetype.ListDirs(subject, "")
		if err != nil {
			m.logger.Warn("cannot list series folders", "subject", subject, "error", err)
			continue
		}
		for _, folder := range folders {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := m.mapSeries(ctx, folder, report); err != nil {
				return nil, err
			}
		}
	}

	if m.store != nil {
		err := m.store.FinishRun(ctx, report.RunID, time.Now(),
			report.Folders, report.Accepted, report.Skipped)
		if err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (m *Mapper) mapSeries(ctx context.Context, folder string, report *RunReport) error {
	report.Folders++

	file, err := filetype.FindDICOMFile(folder)
	if err != nil {
		m.logger.Warn("skipping folder", "folder", folder, "error", err)
		report.Skipped++
		return nil
	}
	if filetype.IsIncompleteAcquisition(folder, m.resolver, m.logger) {
		report.Skipped++
		return nil
	}

	attrs := make(series.AttributeSet)
	for _, key := range m.heur.AttributeKeys() {
		attrs[key] = m.resolver.Resolve(key, file)
	}

	labels, ok := m.heur.Classify(attrs)
	if !ok {
		labels = series.Labels{Modality: series.Text(series.UnknownModality)}
		report.Unknown++
	}

	rec := series.Record{Provenance: folder, Attributes: attrs, Labels: labels}
	if series.Exists(rec, report.Series, true) {
		report.Skipped++
		return nil
	}

	report.Series = append(report.Series, rec)
	report.Accepted++

	if m.store != nil {
		entry := store.SeriesEntry{
			ID:         store.NewSeriesID(),
			RunID:      report.RunID,
			Folder:     folder,
			Modality:   labels.Modality.String(),
			Labels:     labelMap(labels),
			Attributes: attrMap(attrs),
		}
		if err := m.store.RecordSeries(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// labelMap flattens assigned labels for storage, skipping absent ones
func labelMap(labels series.Labels) map[string]string {
	out := make(map[string]string)
	labels.Each(func(name string, v series.Value) {
		if !v.IsAbsent() {
			out[name] = v.String()
		}
	})
	return out
}

// attrMap flattens extracted attributes for storage, skipping absent ones
func attrMap(attrs series.AttributeSet) map[string]string {
	out := make(map[string]string)
	for key, v := range attrs {
		if !v.IsAbsent() {
			out[key] = v.String()
		}
	}
	return out
}

// ReportHeuristics converts a run's accepted series into heuristic
// templates, one exact-match template per record under its modality. Saving
// the result gives a bidsmap that re-classifies the same data without
// rescanning. Label values are cleaned so the written bidsmap only carries
// valid BIDS labels; suffix and modality are schema terms and pass through.
func ReportHeuristics(report *RunReport) *heuristics.Heuristics {
	h := &heuristics.Heuristics{
		Version: "1.0",
		DICOM:   make(map[string][]heuristics.Template),
	}
	for _, rec := range report.Series {
		modality := rec.Labels.Modality.String()
		if modality == "" {
			modality = series.UnknownModality
		}
		labels := labelMap(rec.Labels)
		for key, val := range labels {
			if key == "modality" || key == "suffix" {
				continue
			}
			labels[key] = series.CleanLabel(val)
		}
		tpl := heuristics.Template{
			Attributes: attrMap(rec.Attributes),
			Labels:     labels,
		}
		h.DICOM[modality] = append(h.DICOM[modality], tpl)
	}
	return h
}
