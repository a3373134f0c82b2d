// Package filetype identifies source imaging files and acquisition folders.
package filetype

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/neurolab-io/bidsmap/pkg/bidsmap/dicomtag"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/series"

	"github.com/neurolab-io/bidsmap/internal/errs"
)

// dicomMagicOffset is where the DICM marker sits in a DICOM file
const dicomMagicOffset = 0x80

var dicomMagic = []byte("DICM")

// IsDICOMFile reports whether the file carries the DICM marker at its fixed
// offset.
func IsDICOMFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, len(dicomMagic))
	if _, err := f.ReadAt(buf, dicomMagicOffset); err != nil {
		return false
	}
	return string(buf) == string(dicomMagic)
}

// IsSiemensDICOM reports whether the file embeds the Siemens protocol dump
func IsSiemensDICOM(path string) bool {
	ok, err := dicomtag.IsSiemensDump(path)
	return err == nil && ok
}

// FindDICOMFile returns the first DICOM file in folder, in lexical order.
// Returns errs.ErrNoDICOM when the folder holds none.
func FindDICOMFile(folder string) (string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(folder, e.Name())
		if IsDICOMFile(path) {
			return path, nil
		}
	}
	return "", errs.ErrNoDICOM
}

// ListDirs returns the subdirectories of folder whose names match the glob
// pattern, sorted lexically. An empty pattern means all.
func ListDirs(folder, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	matches, err := filepath.Glob(filepath.Join(folder, pattern))
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err == nil && info.IsDir() {
			dirs = append(dirs, m)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// IsIncompleteAcquisition reports whether the folder holds fewer DICOM files
// than the protocol's planned number of repetitions, which happens when a
// scan is aborted mid-experiment. Folders like that should not be converted.
func IsIncompleteAcquisition(folder string, resolver *dicomtag.Resolver, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}
	file, err := FindDICOMFile(folder)
	if err != nil {
		return false
	}

	nrep, ok := intValue(resolver.Resolve("lRepetitions", file))
	if !ok {
		return false
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return false
	}
	nfiles := int64(len(entries))

	if nrep > nfiles {
		logger.Warn("incomplete acquisition found",
			"folder", folder, "expected", nrep, "found", nfiles)
		return true
	}
	return false
}

func intValue(v series.Value) (int64, bool) {
	switch v.Kind() {
	case series.KindInt:
		return v.Int(), true
	case series.KindText:
		n, err := strconv.ParseInt(v.Text(), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
