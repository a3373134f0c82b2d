package filetype

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/neurolab-io/bidsmap/internal/errs"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/dicomtag"
)

// dicomBytes builds a minimal buffer with the DICM marker at offset 0x80
func dicomBytes(extra []byte) []byte {
	buf := make([]byte, 0x80)
	buf = append(buf, []byte("DICM")...)
	return append(buf, extra...)
}

func TestIsDICOMFile(t *testing.T) {
	dir := t.TempDir()

	dcm := filepath.Join(dir, "scan.ima")
	if err := os.WriteFile(dcm, dicomBytes(nil), 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsDICOMFile(dcm) {
		t.Error("file with DICM marker not recognized")
	}

	plain := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(plain, []byte("just text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if IsDICOMFile(plain) {
		t.Error("short text file recognized as DICOM")
	}

	if IsDICOMFile(filepath.Join(dir, "missing")) {
		t.Error("missing file recognized as DICOM")
	}
}

func TestIsSiemensDICOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.ima")
	if err := os.WriteFile(path, dicomBytes([]byte("### ASCCONV BEGIN ###")), 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsSiemensDICOM(path) {
		t.Error("Siemens dump marker not recognized")
	}
}

func TestFindDICOMFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.ima"), dicomBytes(nil), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindDICOMFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "b.ima") {
		t.Errorf("FindDICOMFile = %q", got)
	}

	empty := t.TempDir()
	if _, err := FindDICOMFile(empty); !errors.Is(err, errs.ErrNoDICOM) {
		t.Errorf("empty folder: err = %v, want ErrNoDICOM", err)
	}
}

func TestIsIncompleteAcquisition(t *testing.T) {
	// The fake DICOM fails structured parsing, so lRepetitions comes from
	// the embedded dump via the x-protocol scan.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	aborted := t.TempDir()
	dump := []byte("\nlRepetitions\t = \t5\n")
	if err := os.WriteFile(filepath.Join(aborted, "00001.ima"), dicomBytes(dump), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(aborted, "00002.ima"), dicomBytes(dump), 0o644); err != nil {
		t.Fatal(err)
	}

	resolver := dicomtag.NewResolver(nil, logger)
	if !IsIncompleteAcquisition(aborted, resolver, logger) {
		t.Error("5 planned repetitions with 2 files should be incomplete")
	}

	complete := t.TempDir()
	dump = []byte("\nlRepetitions\t = \t1\n")
	if err := os.WriteFile(filepath.Join(complete, "00001.ima"), dicomBytes(dump), 0o644); err != nil {
		t.Fatal(err)
	}
	if IsIncompleteAcquisition(complete, dicomtag.NewResolver(nil, logger), logger) {
		t.Error("1 planned repetition with 1 file is complete")
	}

	noRepetitions := t.TempDir()
	if err := os.WriteFile(filepath.Join(noRepetitions, "00001.ima"), dicomBytes(nil), 0o644); err != nil {
		t.Fatal(err)
	}
	if IsIncompleteAcquisition(noRepetitions, dicomtag.NewResolver(nil, logger), logger) {
		t.Error("missing lRepetitions cannot mark a folder incomplete")
	}
}

func TestListDirs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"series2", "series1"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "series3"), []byte("a file"), 0o644); err != nil {
		t.Fatal(err)
	}

	dirs, err := ListDirs(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "series1"), filepath.Join(dir, "series2")}
	if len(dirs) != len(want) || dirs[0] != want[0] || dirs[1] != want[1] {
		t.Errorf("ListDirs = %v, want %v", dirs, want)
	}

	dirs, err = ListDirs(dir, "series1")
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) != 1 || dirs[0] != want[0] {
		t.Errorf("ListDirs with pattern = %v", dirs)
	}
}
