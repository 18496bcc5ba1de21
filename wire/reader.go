package wire

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/mdict/slob/errs"
	"golang.org/x/text/encoding/ianaindex"
)

// Reader performs positional big-endian reads against a seekable byte
// source. It carries an internal cursor so sequential callers (header
// parsing) can read field-by-field without threading an offset through
// every call, while random-access callers (item-list lookups) can jump to
// an absolute position with Seek.
//
// A Reader is not safe for concurrent use; callers needing concurrent reads
// against the same underlying source should construct one Reader per
// goroutine, since io.ReaderAt itself permits concurrent ReadAt calls.
type Reader struct {
	src io.ReaderAt
	pos int64
}

// NewReader returns a Reader positioned at pos over src.
func NewReader(src io.ReaderAt, pos int64) *Reader {
	return &Reader{src: src, pos: pos}
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int64 { return r.pos }

// Seek moves the cursor to an absolute position.
func (r *Reader) Seek(pos int64) { r.pos = pos }

// readFull reads exactly len(buf) bytes at the cursor and advances it.
func (r *Reader) readFull(buf []byte) error {
	n, err := r.src.ReadAt(buf, r.pos)
	r.pos += int64(n)
	if err != nil {
		if err == io.EOF && n == len(buf) {
			return nil
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: need %d bytes at %d, got %d", errs.ErrTruncatedFile, len(buf), r.pos-int64(n), n)
		}

		return fmt.Errorf("%w: %v", errs.ErrIo, err)
	}

	return nil
}

// ReadBytes reads and returns the next n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.readFull(buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	var buf [1]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}

	return buf[0], nil
}

// ReadUint16 reads a big-endian 16-bit unsigned integer.
func (r *Reader) ReadUint16() (uint16, error) {
	var buf [2]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}

	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// ReadUint32 reads a big-endian 32-bit unsigned integer.
func (r *Reader) ReadUint32() (uint32, error) {
	var buf [4]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}

	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

// ReadUint64 reads a big-endian 64-bit unsigned integer.
func (r *Reader) ReadUint64() (uint64, error) {
	var buf [8]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}

	var v uint64
	for _, b := range buf {
		v = v<<8 | uint64(b)
	}

	return v, nil
}

// ReadInt64 reads a big-endian 64-bit signed integer (used for the header's
// store-offset and file-size fields, which are declared non-negative i64 on
// disk).
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadUUID reads a 16-byte big-endian UUID and formats it in canonical
// 8-4-4-4-12 hex form, e.g. "86b88aa3-0d79-4403-af61-f2117b41520c".
func (r *Reader) ReadUUID() (string, error) {
	buf, err := r.ReadBytes(16)
	if err != nil {
		return "", err
	}

	return formatUUID(buf), nil
}

func formatUUID(b []byte) string {
	var out [36]byte
	hex.Encode(out[0:8], b[0:4])
	out[8] = '-'
	hex.Encode(out[9:13], b[4:6])
	out[13] = '-'
	hex.Encode(out[14:18], b[6:8])
	out[18] = '-'
	hex.Encode(out[19:23], b[8:10])
	out[23] = '-'
	hex.Encode(out[24:36], b[10:16])

	return string(out[:])
}

// decodeString decodes raw bytes under the archive's declared encoding name.
// "UTF-8" (and its common aliases) is the overwhelmingly common case and is
// handled without a round-trip through the transform machinery; any other
// declared name is resolved via golang.org/x/text's IANA encoding registry,
// so archives produced with a legacy encoding still decode correctly.
func decodeString(raw []byte, encodingName string) (string, error) {
	if encodingName == "" || isUTF8Alias(encodingName) {
		return string(raw), nil
	}

	enc, err := ianaindex.MIME.Encoding(encodingName)
	if err != nil || enc == nil {
		return "", fmt.Errorf("%w: unknown encoding %q", errs.ErrEncoding, encodingName)
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrEncoding, err)
	}

	return string(decoded), nil
}

func isUTF8Alias(name string) bool {
	switch name {
	case "UTF-8", "utf-8", "UTF8", "utf8":
		return true
	default:
		return false
	}
}

// ReadTinyText reads a uint8-length-prefixed string.
//
// Compatibility quirk: when the length byte is exactly 255, older writers
// sometimes allocated a fixed 255-byte field and NUL-padded it; if the raw
// payload contains a 0x00 byte, the string is truncated at the first NUL.
// For any length below 255 no truncation occurs, even if the payload
// contains embedded NULs.
func (r *Reader) ReadTinyText(encodingName string) (string, error) {
	length, err := r.ReadUint8()
	if err != nil {
		return "", err
	}

	raw, err := r.ReadBytes(int(length))
	if err != nil {
		return "", err
	}

	if length == 255 {
		if i := indexByte(raw, 0); i >= 0 {
			raw = raw[:i]
		}
	}

	return decodeString(raw, encodingName)
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}

	return -1
}

// ReadText reads a signed-16-bit-length-prefixed string. Writers never emit
// lengths >= 32768, so the signed value is always interpreted as
// non-negative.
func (r *Reader) ReadText(encodingName string) (string, error) {
	length, err := r.ReadUint16()
	if err != nil {
		return "", err
	}

	raw, err := r.ReadBytes(int(length))
	if err != nil {
		return "", err
	}

	return decodeString(raw, encodingName)
}
