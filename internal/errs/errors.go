package errs

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound          = errors.New("not found")
	ErrNoDICOM           = errors.New("no dicom file in folder")
	ErrInvalidHeuristics = errors.New("invalid heuristics file")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
