// Package wire provides positional, big-endian reads over a seekable byte
// source for the slob archive format.
//
// Every field in the on-disk format (§4.1 of the format specification) is
// either a fixed-width big-endian integer or a length-prefixed string, read
// at an absolute offset. Reader wraps an io.ReaderAt so callers never need to
// serialize seek-then-read pairs across goroutines: each read carries its own
// offset.
package wire
