// Package testfixture synthesizes valid in-memory archive byte layouts
// for end-to-end tests (§2A, §8), so tests stay hermetic instead of
// depending on checked-in binary fixtures.
package testfixture

import "github.com/mdict/slob/format"

// Blob describes one entry to bake into a fixture archive. Entries must
// already be supplied in their intended ref-list order; Build does not
// sort them (callers that care about collation order list them pre-
// sorted, matching the exercised archive's own on-disk invariant).
type Blob struct {
	Key         string
	Fragment    string
	ContentType string
	Content     []byte
}

// Options configures the synthesized archive's header fields.
type Options struct {
	UUID string
	Tags map[string]string
	// Compression is the header's declared compression name. Defaults to
	// "none" when empty. Bins are always laid out as literal bytes
	// regardless of this value, so a fixture naming a real codec (or a
	// made-up one, to exercise §4.10's open-time deferral) must not have
	// its content actually decompressed.
	Compression string
}

// Build lays out a complete archive, "none"-compressed unless
// opts.Compression overrides it, containing one bin per blob (so each
// GetContent call decompresses trivially under the default) and returns
// its bytes.
func Build(opts Options, blobs []Blob) []byte {
	contentTypeIndex := map[string]uint8{}
	var contentTypes []string
	typeIDFor := func(ct string) uint8 {
		if id, ok := contentTypeIndex[ct]; ok {
			return id
		}
		id := uint8(len(contentTypes))
		contentTypeIndex[ct] = id
		contentTypes = append(contentTypes, ct)

		return id
	}

	storeItemBytes := make([][]byte, len(blobs))
	for i, b := range blobs {
		storeItemBytes[i] = buildStoreItem(typeIDFor(b.ContentType), b.Content)
	}
	storeBytes := buildItemList64(storeItemBytes)

	refItemBytes := make([][]byte, len(blobs))
	for i, b := range blobs {
		refItemBytes[i] = buildRefItem(b.Key, uint32(i), 0, b.Fragment)
	}
	refListBytes := buildItemList64(refItemBytes)

	var header []byte
	header = append(header, format.Magic[:]...)
	header = append(header, make([]byte, 16)...) // uuid placeholder, overwritten below
	writeUUID(header[8:24], opts.UUID)

	compression := opts.Compression
	if compression == "" {
		compression = "none"
	}

	header = appendTinyText(header, "UTF-8")
	header = appendTinyText(header, compression)

	header = append(header, byte(len(opts.Tags)))
	for k, v := range opts.Tags {
		header = appendTinyText(header, k)
		header = appendTinyText(header, v)
	}

	header = append(header, byte(len(contentTypes)))
	for _, ct := range contentTypes {
		header = appendText(header, ct)
	}

	header = appendU32(header, uint32(len(blobs)))

	storeOffsetFieldPos := len(header)
	header = appendI64(header, 0) // placeholder, patched below
	fileSizeFieldPos := len(header)
	header = appendI64(header, 0) // placeholder, patched below

	storeOffset := int64(len(header) + len(refListBytes))
	fileSize := storeOffset + int64(len(storeBytes))

	patchI64(header, storeOffsetFieldPos, storeOffset)
	patchI64(header, fileSizeFieldPos, fileSize)

	out := make([]byte, 0, fileSize)
	out = append(out, header...)
	out = append(out, refListBytes...)
	out = append(out, storeBytes...)

	return out
}

func writeUUID(dst []byte, uuid string) {
	// Accepts a plain 32-hex-digit (no dashes) or dashed UUID string; any
	// non-hex character is skipped and the hex digits found are zero-padded
	// or truncated to 32, so tests can pass an arbitrary identifying string.
	hexDigits := make([]byte, 0, 32)
	for i := 0; i < len(uuid) && len(hexDigits) < 32; i++ {
		c := uuid[i]
		if isHexDigit(c) {
			hexDigits = append(hexDigits, c)
		}
	}
	for len(hexDigits) < 32 {
		hexDigits = append(hexDigits, '0')
	}
	for i := 0; i < 16; i++ {
		dst[i] = hexVal(hexDigits[2*i])<<4 | hexVal(hexDigits[2*i+1])
	}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func appendTinyText(dst []byte, s string) []byte {
	dst = append(dst, byte(len(s)))
	return append(dst, s...)
}

func appendText(dst []byte, s string) []byte {
	n := uint16(len(s))
	dst = append(dst, byte(n>>8), byte(n))
	return append(dst, s...)
}

func appendU32(dst []byte, v uint32) []byte {
	return append(dst, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func appendI64(dst []byte, v int64) []byte {
	for i := 7; i >= 0; i-- {
		dst = append(dst, byte(v>>(8*uint(i))))
	}

	return dst
}

func patchI64(dst []byte, pos int, v int64) {
	for i := 0; i < 8; i++ {
		dst[pos+i] = byte(v >> (8 * uint(7-i)))
	}
}

// buildItemList64 lays out a count + 8-byte-position-table + data-region
// item list (ref-list and store shape) over pre-encoded item byte blobs.
func buildItemList64(items [][]byte) []byte {
	offsets := make([]int64, len(items))
	var data []byte
	for i, it := range items {
		offsets[i] = int64(len(data))
		data = append(data, it...)
	}

	out := appendU32(nil, uint32(len(items)))
	for _, off := range offsets {
		out = appendI64(out, off)
	}

	return append(out, data...)
}

func buildRefItem(key string, binIndex uint32, itemIndex uint16, fragment string) []byte {
	var out []byte
	out = appendText(out, key)
	out = appendU32(out, binIndex)
	out = append(out, byte(itemIndex>>8), byte(itemIndex))
	out = appendTinyText(out, fragment)

	return out
}

func buildStoreItem(contentTypeID uint8, content []byte) []byte {
	bin := buildBin(content)

	var out []byte
	out = appendU32(out, 1) // one item per bin
	out = append(out, contentTypeID)
	out = appendU32(out, uint32(len(bin)))
	out = append(out, bin...)

	return out
}

func buildBin(content []byte) []byte {
	var out []byte
	out = appendU32(out, 0) // single item, position 0
	out = appendU32(out, uint32(len(content)))
	out = append(out, content...)

	return out
}
