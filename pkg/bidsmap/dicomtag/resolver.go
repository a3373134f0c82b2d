package dicomtag

import (
	"errors"
	"log/slog"

	"github.com/neurolab-io/bidsmap/pkg/bidsmap/series"
)

// Resolver reads named fields from DICOM files, preferring the structured
// dictionary and falling back to the embedded x-protocol dump for fields the
// dictionary does not cover.
//
// The resolver caches the parsed dictionary of the most recently resolved
// file, so repeated queries against the same file parse it once. The cache
// holds exactly one entry and is keyed by path: a file modified in place
// after being cached keeps returning the cached data. Not safe for
// concurrent use; give each worker its own Resolver.
type Resolver struct {
	provider Provider
	logger   *slog.Logger

	cachedPath string
	cachedDict Dictionary
}

// NewResolver creates a resolver on the given provider. A nil provider
// defaults to ParserProvider; a nil logger defaults to slog.Default().
func NewResolver(provider Provider, logger *slog.Logger) *Resolver {
	if provider == nil {
		provider = ParserProvider{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{provider: provider, logger: logger}
}

// Resolve returns the value of field in the file at path, or the absent
// value when it cannot be extracted. Extraction failures are warnings, never
// errors: an unreadable file, an unknown field and a fruitless fallback scan
// all degrade to absent. A file that opens but fails structured parsing
// skips straight to the x-protocol scan.
func (r *Resolver) Resolve(field, path string) series.Value {
	dict := r.cachedDict
	if path != r.cachedPath {
		d, err := r.provider.Read(path)
		switch {
		case err == nil:
			r.cachedPath = path
			r.cachedDict = d
			dict = d
		case errors.Is(err, ErrUnparsable):
			// The cache keeps its previous entry; every query against this
			// file goes through the scan below.
			r.logger.Debug("structured parse failed", "file", path, "error", err)
			dict = nil
		default:
			r.logger.Warn("cannot read dicom file", "file", path, "error", err)
			return series.Absent()
		}
	}

	if dict != nil {
		if v, ok := dict.Lookup(field); ok {
			return v
		}
	}

	val, found, err := ScanXProtocol(field, path)
	if err != nil {
		r.logger.Warn("cannot scan x-protocol dump", "field", field, "file", path, "error", err)
		return series.Absent()
	}
	if !found {
		r.logger.Warn("could not extract field", "field", field, "file", path)
		return series.Absent()
	}
	return series.Text(val)
}
