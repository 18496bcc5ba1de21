// Package format parses the archive header (§3, §4.2, §6): the magic,
// content UUID, declared encoding and compression names, tag map,
// content-type table, and the offsets that locate the store and ref-list.
package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mdict/slob/errs"
	"github.com/mdict/slob/wire"
)

// Magic is the fixed 8-byte sequence every archive begins with.
var Magic = [8]byte{0x21, 0x2d, 0x31, 0x53, 0x4c, 0x4f, 0x42, 0x1f}

// Header holds every field parsed from the archive's fixed preamble plus
// the derived offset at which the ref-list begins.
type Header struct {
	UUID          string
	Encoding      string
	Compression   string
	Tags          map[string]string
	ContentTypes  []string
	BlobCount     uint32
	StoreOffset   int64
	FileSize      int64
	RefListOffset int64
}

// Parse reads a Header from source, which must report actualSize bytes
// total (the caller supplies this since Header.FileSize is the archive's
// own self-reported claim, checked against it below).
func Parse(source io.ReaderAt, actualSize int64) (*Header, error) {
	r := wire.NewReader(source, 0)

	magic, err := r.ReadBytes(len(Magic))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(magic, Magic[:]) {
		return nil, fmt.Errorf("%w: bad magic", errs.ErrUnknownFileFormat)
	}

	uuid, err := r.ReadUUID()
	if err != nil {
		return nil, err
	}

	encoding, err := r.ReadTinyText("UTF-8")
	if err != nil {
		return nil, err
	}

	compression, err := r.ReadTinyText(encoding)
	if err != nil {
		return nil, err
	}

	tagCount, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	tags := make(map[string]string, tagCount)
	for i := 0; i < int(tagCount); i++ {
		k, err := r.ReadTinyText(encoding)
		if err != nil {
			return nil, err
		}
		v, err := r.ReadTinyText(encoding)
		if err != nil {
			return nil, err
		}
		tags[k] = v
	}

	ctCount, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	contentTypes := make([]string, ctCount)
	for i := 0; i < int(ctCount); i++ {
		ct, err := r.ReadText(encoding)
		if err != nil {
			return nil, err
		}
		contentTypes[i] = ct
	}

	blobCount, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	storeOffset, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}

	fileSize, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}

	if fileSize != actualSize {
		return nil, fmt.Errorf("%w: header declares %d bytes, file is %d", errs.ErrTruncatedFile, fileSize, actualSize)
	}

	return &Header{
		UUID:          uuid,
		Encoding:      encoding,
		Compression:   compression,
		Tags:          tags,
		ContentTypes:  contentTypes,
		BlobCount:     blobCount,
		StoreOffset:   storeOffset,
		FileSize:      fileSize,
		RefListOffset: r.Pos(),
	}, nil
}

// URI returns the "uri" tag, falling back to "slob:<uuid>" (§4.9, §4.8).
func (h *Header) URI() string {
	if u, ok := h.Tags["uri"]; ok {
		return u
	}

	return "slob:" + h.UUID
}

// ContentType resolves a content-type ID into its declared string.
func (h *Header) ContentType(id uint8) (string, error) {
	if int(id) >= len(h.ContentTypes) {
		return "", fmt.Errorf("%w: content type id %d out of range (have %d)", errs.ErrIndexOutOfRange, id, len(h.ContentTypes))
	}

	return h.ContentTypes[id], nil
}
