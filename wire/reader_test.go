package wire

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestReader(b []byte) *Reader {
	return NewReader(bytes.NewReader(b), 0)
}

func TestReadUint8Boundaries(t *testing.T) {
	cases := []uint8{0, math.MaxInt8, math.MaxInt8 + 1, math.MaxUint8}
	for _, c := range cases {
		r := newTestReader([]byte{c})
		got, err := r.ReadUint8()
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
}

func TestReadUint16Boundaries(t *testing.T) {
	cases := []uint16{0, math.MaxInt16, math.MaxInt16 + 1, math.MaxUint16}
	for _, c := range cases {
		buf := []byte{byte(c >> 8), byte(c)}
		r := newTestReader(buf)
		got, err := r.ReadUint16()
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
}

func TestReadUint32Boundaries(t *testing.T) {
	cases := []uint32{0, math.MaxInt32, math.MaxInt32 + 1, math.MaxUint32}
	for _, c := range cases {
		buf := []byte{byte(c >> 24), byte(c >> 16), byte(c >> 8), byte(c)}
		r := newTestReader(buf)
		got, err := r.ReadUint32()
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
}

func TestReadUUID(t *testing.T) {
	raw := []byte{0x86, 0xb8, 0x8a, 0xa3, 0x0d, 0x79, 0x44, 0x03, 0xaf, 0x61, 0xf2, 0x11, 0x7b, 0x41, 0x52, 0x0c}
	r := newTestReader(raw)
	got, err := r.ReadUUID()
	require.NoError(t, err)
	require.Equal(t, "86b88aa3-0d79-4403-af61-f2117b41520c", got)
}

func TestReadTinyText(t *testing.T) {
	buf := append([]byte{5}, []byte("hello")...)
	r := newTestReader(buf)
	got, err := r.ReadTinyText("UTF-8")
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestReadTinyTextNulTruncationAt255(t *testing.T) {
	payload := make([]byte, 255)
	copy(payload, "hello")
	payload[5] = 0
	buf := append([]byte{255}, payload...)
	r := newTestReader(buf)
	got, err := r.ReadTinyText("UTF-8")
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestReadTinyTextNoTruncationBelow255(t *testing.T) {
	payload := make([]byte, 10)
	copy(payload, "hi")
	// embedded NUL at index 2, length is 10 (< 255): must NOT be truncated.
	buf := append([]byte{10}, payload...)
	r := newTestReader(buf)
	got, err := r.ReadTinyText("UTF-8")
	require.NoError(t, err)
	require.Equal(t, 10, len(got))
}

func TestReadText(t *testing.T) {
	buf := append([]byte{0, 5}, []byte("world")...)
	r := newTestReader(buf)
	got, err := r.ReadText("UTF-8")
	require.NoError(t, err)
	require.Equal(t, "world", got)
}

func TestReadTruncated(t *testing.T) {
	r := newTestReader([]byte{1, 2})
	_, err := r.ReadUint32()
	require.Error(t, err)
}

func TestSeek(t *testing.T) {
	r := newTestReader([]byte{0, 0, 0, 42})
	r.Seek(3)
	got, err := r.ReadUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(42), got)
}
