// Package heuristics loads the user-authored rules that map acquisition
// attributes to BIDS labels, and classifies attribute sets against them.
package heuristics

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neurolab-io/bidsmap/internal/errs"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/series"
)

// Template is one heuristic rule: if the attribute patterns all match an
// acquisition's attributes, the labels apply.
type Template struct {
	Attributes map[string]string `yaml:"attributes"`
	Labels     map[string]string `yaml:"labels"`
}

// Heuristics is a parsed heuristics file: per-modality template lists
type Heuristics struct {
	Version string                `yaml:"version"`
	DICOM   map[string][]Template `yaml:"dicom"`
}

// labelSetters maps heuristic label keys onto the fixed label schema
var labelSetters = map[string]func(*series.Labels, series.Value){
	"modality": func(l *series.Labels, v series.Value) { l.Modality = v },
	"suffix":   func(l *series.Labels, v series.Value) { l.Suffix = v },
	"task":     func(l *series.Labels, v series.Value) { l.Task = v },
	"acq":      func(l *series.Labels, v series.Value) { l.Acq = v },
	"ce":       func(l *series.Labels, v series.Value) { l.Ce = v },
	"rec":      func(l *series.Labels, v series.Value) { l.Rec = v },
	"dir":      func(l *series.Labels, v series.Value) { l.Dir = v },
	"run":      func(l *series.Labels, v series.Value) { l.Run = v },
	"echo":     func(l *series.Labels, v series.Value) { l.Echo = v },
}

// Load reads a heuristics file. A path without an extension gets ".yaml"
// appended; a bare file name resolves into the "heuristics" directory under
// baseDir. A leading "~/" expands to the user's home directory.
func Load(file, baseDir string) (*Heuristics, error) {
	file = resolvePath(file, baseDir)

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var h Heuristics
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrInvalidHeuristics, file, err)
	}
	if err := h.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrInvalidHeuristics, file, err)
	}
	return &h, nil
}

func resolvePath(file, baseDir string) string {
	if strings.HasPrefix(file, "~"+string(os.PathSeparator)) {
		if home, err := os.UserHomeDir(); err == nil {
			file = filepath.Join(home, file[2:])
		}
	}
	if filepath.Ext(file) == "" {
		file += ".yaml"
	}
	if filepath.Base(file) == file && baseDir != "" {
		file = filepath.Join(baseDir, "heuristics", file)
	}
	return file
}

func (h *Heuristics) validate() error {
	known := make(map[string]bool, len(series.Modalities)+1)
	for _, m := range series.Modalities {
		known[m] = true
	}
	known[series.UnknownModality] = true

	for modality, templates := range h.DICOM {
		if !known[modality] {
			return fmt.Errorf("unknown modality %q", modality)
		}
		for i, tpl := range templates {
			for key := range tpl.Labels {
				if _, ok := labelSetters[key]; !ok {
					return fmt.Errorf("%s template %d: unknown label %q", modality, i, key)
				}
			}
		}
	}
	return nil
}

// AttributeKeys returns the union of attribute names used by any template,
// sorted. Mapping resolves exactly these fields for each acquisition.
func (h *Heuristics) AttributeKeys() []string {
	set := make(map[string]struct{})
	for _, templates := range h.DICOM {
		for _, tpl := range templates {
			for key := range tpl.Attributes {
				set[key] = struct{}{}
			}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Classify matches attrs against the templates in modality order and returns
// the labels of the first template whose patterns all match. The boolean is
// false when nothing matched; callers then file the series under the unknown
// modality.
func (h *Heuristics) Classify(attrs series.AttributeSet) (series.Labels, bool) {
	for _, modality := range series.Modalities {
		for _, tpl := range h.DICOM[modality] {
			if tpl.matches(attrs) {
				return tpl.labels(modality), true
			}
		}
	}
	return series.Labels{}, false
}

// matches reports whether every non-empty attribute pattern matches the
// attribute's value. Patterns use glob syntax; a template with no attribute
// patterns never matches, so an empty template cannot swallow everything.
func (t Template) matches(attrs series.AttributeSet) bool {
	patterns := 0
	for key, pattern := range t.Attributes {
		if pattern == "" {
			continue
		}
		patterns++
		val, ok := attrs[key]
		if !ok || val.IsAbsent() {
			return false
		}
		if matched, err := path.Match(pattern, val.String()); err != nil || !matched {
			return false
		}
	}
	return patterns > 0
}

func (t Template) labels(modality string) series.Labels {
	labels := series.Labels{Modality: series.Text(modality)}
	for key, val := range t.Labels {
		if val == "" {
			continue
		}
		if set, ok := labelSetters[key]; ok {
			set(&labels, series.Text(val))
		}
	}
	return labels
}
