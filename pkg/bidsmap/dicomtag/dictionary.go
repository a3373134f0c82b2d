package dicomtag

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/GoogleCloudPlatform/go-dicom-parser/dicom"

	"github.com/neurolab-io/bidsmap/pkg/bidsmap/series"
)

// ErrUnparsable marks a file that could be opened but not parsed as a DICOM
// data set. The x-protocol scan can still run on such a file.
var ErrUnparsable = errors.New("not parsable as dicom")

// Dictionary is the structured key/value view of a parsed DICOM file. A
// lookup either yields a normalized value or reports that the keyword has no
// element in this file.
type Dictionary interface {
	Lookup(keyword string) (series.Value, bool)
}

// Provider parses a file into its Dictionary. Read errors are I/O level;
// a readable file with missing elements is not an error.
type Provider interface {
	Read(path string) (Dictionary, error)
}

// ParserProvider reads DICOM files with the go-dicom-parser library.
type ParserProvider struct{}

// Read parses the whole data set of the file at path
func (ParserProvider) Read(path string) (Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := dicom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnparsable, path, err)
	}
	return datasetDictionary{ds: ds}, nil
}

type datasetDictionary struct {
	ds *dicom.DataSet
}

func (d datasetDictionary) Lookup(keyword string) (series.Value, bool) {
	tag, ok := TagForKeyword(keyword)
	if !ok {
		return series.Absent(), false
	}
	el, ok := d.ds.Elements[dicom.DataElementTag(tag)]
	if !ok || el == nil {
		return series.Absent(), false
	}
	return normalizeElement(el), true
}

// normalizeElement flattens a data element value to the two scalar kinds the
// matcher understands: single integral values stay integers, everything else
// becomes text. Multi-valued fields are joined with the DICOM value
// separator.
func normalizeElement(el *dicom.DataElement) series.Value {
	switch v := el.ValueField.(type) {
	case []string:
		vals := make([]string, len(v))
		for i, s := range v {
			vals[i] = strings.TrimSpace(s)
		}
		if len(vals) == 1 && el.VR != nil && el.VR.Name == "IS" {
			if n, err := strconv.ParseInt(vals[0], 10, 64); err == nil {
				return series.Int(n)
			}
		}
		return series.Text(strings.Join(vals, `\`))
	case []int16:
		if len(v) == 1 {
			return series.Int(int64(v[0]))
		}
		return joinInts(v)
	case []uint16:
		if len(v) == 1 {
			return series.Int(int64(v[0]))
		}
		return joinInts(v)
	case []int32:
		if len(v) == 1 {
			return series.Int(int64(v[0]))
		}
		return joinInts(v)
	case []uint32:
		if len(v) == 1 {
			return series.Int(int64(v[0]))
		}
		return joinInts(v)
	case []float32:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
		}
		return series.Text(strings.Join(parts, `\`))
	case []float64:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return series.Text(strings.Join(parts, `\`))
	case []byte:
		return series.Text(strings.TrimRight(string(v), "\x00 "))
	default:
		return series.Text(fmt.Sprint(v))
	}
}

func joinInts[T int16 | uint16 | int32 | uint32](vals []T) series.Value {
	parts := make([]string, len(vals))
	for i, n := range vals {
		parts[i] = strconv.FormatInt(int64(n), 10)
	}
	return series.Text(strings.Join(parts, `\`))
}
