package reference

import "errors"

// ErrFileMissing is returned when a reference list cannot be read.
// Callers treat the affected list as empty.
var ErrFileMissing = errors.New("reference file missing")
