package itemlist

import (
	"bytes"
	"testing"

	"github.com/mdict/slob/errs"
	"github.com/mdict/slob/wire"
	"github.com/stretchr/testify/require"
)

// buildFixture lays out a 64-bit-position-table item list of tiny-text
// strings, matching the ref-list/store shape (§4.3).
func buildFixture(t *testing.T, items []string) []byte {
	t.Helper()
	var data bytes.Buffer
	offsets := make([]int64, len(items))
	for i, s := range items {
		offsets[i] = int64(data.Len())
		data.WriteByte(byte(len(s)))
		data.WriteString(s)
	}

	var buf bytes.Buffer
	writeU32 := func(v uint32) {
		buf.WriteByte(byte(v >> 24))
		buf.WriteByte(byte(v >> 16))
		buf.WriteByte(byte(v >> 8))
		buf.WriteByte(byte(v))
	}
	writeU64 := func(v int64) {
		for i := 7; i >= 0; i-- {
			buf.WriteByte(byte(v >> (8 * i)))
		}
	}

	writeU32(uint32(len(items)))
	for _, off := range offsets {
		writeU64(off)
	}
	buf.Write(data.Bytes())

	return buf.Bytes()
}

func decodeTinyString(r *wire.Reader) (string, error) {
	return r.ReadTinyText("UTF-8")
}

func TestGetDecodesEachItem(t *testing.T) {
	items := []string{"alpha", "beta", "gamma"}
	data := buildFixture(t, items)

	l, err := Open(bytes.NewReader(data), 0, PosEntry64, 8, decodeTinyString)
	require.NoError(t, err)
	require.Equal(t, 3, l.Len())

	for i, want := range items {
		got, err := l.Get(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestGetIsCached(t *testing.T) {
	data := buildFixture(t, []string{"only"})
	l, err := Open(bytes.NewReader(data), 0, PosEntry64, 8, decodeTinyString)
	require.NoError(t, err)

	v1, err := l.Get(0)
	require.NoError(t, err)
	v2, err := l.Get(0)
	require.NoError(t, err)
	require.Equal(t, v1, v2)
}

func TestGetOutOfRange(t *testing.T) {
	data := buildFixture(t, []string{"x"})
	l, err := Open(bytes.NewReader(data), 0, PosEntry64, 8, decodeTinyString)
	require.NoError(t, err)

	_, err = l.Get(1)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = l.Get(-1)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestOpenAtNonZeroOffset(t *testing.T) {
	data := buildFixture(t, []string{"one", "two"})
	prefix := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	full := append(prefix, data...)

	l, err := Open(bytes.NewReader(full), int64(len(prefix)), PosEntry64, 8, decodeTinyString)
	require.NoError(t, err)
	v, err := l.Get(1)
	require.NoError(t, err)
	require.Equal(t, "two", v)
}
