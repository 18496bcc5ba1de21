// Package compress implements the decompressor contract used to expand a
// store bin's compressed bytes into the blob content they hold (§4.5, §6).
//
// The engine never compresses: archives are immutable inputs, so every
// codec here only needs to go one direction. Each codec is registered
// under the name the archive header declares for its compression scheme,
// and the registry is open for a caller to add codecs the core format
// doesn't define natively.
package compress
