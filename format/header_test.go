package format

import (
	"bytes"
	"testing"

	"github.com/mdict/slob/errs"
	"github.com/stretchr/testify/require"
)

// buildHeader assembles a minimal valid header followed by n trailing
// bytes standing in for the ref-list/store region, and returns the full
// byte slice.
func buildHeader(t *testing.T, trailing int) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(Magic[:])
	buf.Write(bytes.Repeat([]byte{0xAB}, 16)) // uuid

	writeTiny := func(s string) {
		buf.WriteByte(byte(len(s)))
		buf.WriteString(s)
	}
	writeTiny("UTF-8")
	writeTiny("none")

	buf.WriteByte(1) // tag count
	writeTiny("uri")
	writeTiny("slob:test")

	buf.WriteByte(0) // content-type count

	writeU32 := func(v uint32) {
		buf.WriteByte(byte(v >> 24))
		buf.WriteByte(byte(v >> 16))
		buf.WriteByte(byte(v >> 8))
		buf.WriteByte(byte(v))
	}
	writeU32(0) // blob count

	writeI64 := func(v int64) {
		for i := 7; i >= 0; i-- {
			buf.WriteByte(byte(v >> (8 * i)))
		}
	}
	writeI64(int64(buf.Len() + 8 + 8)) // store offset: right after the two i64 fields

	headerLenBeforeSize := buf.Len()
	total := headerLenBeforeSize + 8 + trailing
	writeI64(int64(total))

	buf.Write(bytes.Repeat([]byte{0x00}, trailing))

	require.Equal(t, total, buf.Len())

	return buf.Bytes()
}

func TestParseValidHeader(t *testing.T) {
	data := buildHeader(t, 4)
	h, err := Parse(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Equal(t, "none", h.Compression)
	require.Equal(t, "UTF-8", h.Encoding)
	require.Equal(t, "slob:test", h.URI())
	require.Len(t, h.ContentTypes, 0)
	require.Equal(t, int64(len(data)), h.FileSize)
}

func TestParseRejectsBadMagic(t *testing.T) {
	data := buildHeader(t, 0)
	data[0] = 0x00
	_, err := Parse(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, errs.ErrUnknownFileFormat)
}

func TestParseRejectsSizeMismatch(t *testing.T) {
	data := buildHeader(t, 4)
	_, err := Parse(bytes.NewReader(data), int64(len(data)-1))
	require.ErrorIs(t, err, errs.ErrTruncatedFile)
}

func TestURIFallsBackToSlobUUID(t *testing.T) {
	h := &Header{UUID: "abc"}
	require.Equal(t, "slob:abc", h.URI())
}

func TestContentTypeOutOfRange(t *testing.T) {
	h := &Header{ContentTypes: []string{"text/html"}}
	_, err := h.ContentType(1)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}
