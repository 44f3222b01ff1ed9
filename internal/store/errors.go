package store

import "errors"

// Sentinel errors. Every error returned by Store wraps exactly one of these,
// so callers can branch with errors.Is.
var (
	// ErrDataCorruption means the backing file exists but does not hold a
	// JSON array of note records, or a stored timestamp cannot be parsed.
	ErrDataCorruption = errors.New("notes file is corrupt")

	// ErrIO means the backing file could not be read or written.
	ErrIO = errors.New("notes file i/o failed")

	// ErrNotFound means no note has the requested id.
	ErrNotFound = errors.New("note not found")

	// ErrInvalidDateFormat means a filter bound is not in
	// models.TimestampLayout.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD HH:MM:SS")
)
