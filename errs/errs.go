// Package errs defines the sentinel errors surfaced by the slob engine.
//
// Every exported error is a plain sentinel created with errors.New, so callers
// can use errors.Is against the values in this package regardless of how deep
// in the call stack the error originated. Layers that add context wrap with
// fmt.Errorf("...: %w", err) rather than constructing a new sentinel, so the
// original cause survives errors.Is/errors.As.
package errs

import "errors"

var (
	// ErrUnknownFileFormat indicates the source does not start with the archive
	// magic, or names a compression the engine cannot recognize. An
	// unrecognized text encoding is reported as ErrEncoding.
	ErrUnknownFileFormat = errors.New("slob: unknown file format")

	// ErrTruncatedFile indicates fewer bytes were available than the format
	// requires, or the header's declared size does not match the actual size.
	ErrTruncatedFile = errors.New("slob: truncated file")

	// ErrIo wraps a failure from the underlying byte source (seek/read).
	ErrIo = errors.New("slob: io error")

	// ErrEncoding indicates a length-prefixed string could not be decoded
	// under the archive's declared encoding.
	ErrEncoding = errors.New("slob: encoding error")

	// ErrClosed indicates an operation was attempted on a closed Archive.
	ErrClosed = errors.New("slob: archive is closed")

	// ErrBlobIDMalformed indicates a blob id string is not of the form
	// "binIndex-itemIndex".
	ErrBlobIDMalformed = errors.New("slob: malformed blob id")

	// ErrIndexOutOfRange indicates an ordinal index was outside [0, size).
	ErrIndexOutOfRange = errors.New("slob: index out of range")
)
