package refs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildRefListFixture lays out a valid on-disk ref-list for the given
// entries at offset 0, writing each entry's own key, bin index, item index
// and fragment.
func buildRefListFixture(t *testing.T, entries []Ref) []byte {
	t.Helper()
	var data bytes.Buffer
	offsets := make([]int64, len(entries))
	for i, e := range entries {
		offsets[i] = int64(data.Len())

		data.WriteByte(byte(len(e.Key) >> 8))
		data.WriteByte(byte(len(e.Key)))
		data.WriteString(e.Key)

		data.WriteByte(byte(e.BinIndex >> 24))
		data.WriteByte(byte(e.BinIndex >> 16))
		data.WriteByte(byte(e.BinIndex >> 8))
		data.WriteByte(byte(e.BinIndex))

		data.WriteByte(byte(e.ItemIndex >> 8))
		data.WriteByte(byte(e.ItemIndex))

		data.WriteByte(byte(len(e.Fragment)))
		data.WriteString(e.Fragment)
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
	writeU32(uint32(len(entries)))
	for _, off := range offsets {
		writeU64(off)
	}
	buf.Write(data.Bytes())

	return buf.Bytes()
}

func fixtureEntries() []Ref {
	return []Ref{
		{Key: "apple", BinIndex: 0, ItemIndex: 0},
		{Key: "banana", BinIndex: 1, ItemIndex: 0},
		{Key: "cherry", BinIndex: 2, ItemIndex: 0, Fragment: "anchor1"},
	}
}

func TestListGetDecodesAllFields(t *testing.T) {
	entries := fixtureEntries()
	data := buildRefListFixture(t, entries)

	l, err := OpenList(bytes.NewReader(data), 0, "UTF-8", DefaultRefListCacheCapacity)
	require.NoError(t, err)
	require.Equal(t, 3, l.Len())

	got, err := l.Get(2)
	require.NoError(t, err)
	require.Equal(t, entries[2], got)
}

func TestKeyListProjectsOnlyKey(t *testing.T) {
	entries := fixtureEntries()
	data := buildRefListFixture(t, entries)

	kl, err := OpenKeyList(bytes.NewReader(data), 0, "UTF-8", DefaultKeyListCacheCapacity)
	require.NoError(t, err)

	k, err := kl.Get(1)
	require.NoError(t, err)
	require.Equal(t, Keyed{Key: "banana"}, k)
}

func TestLowerBoundFindsExactAndInsertionPoint(t *testing.T) {
	entries := fixtureEntries()
	data := buildRefListFixture(t, entries)
	kl, err := OpenKeyList(bytes.NewReader(data), 0, "UTF-8", DefaultKeyListCacheCapacity)
	require.NoError(t, err)

	cmpAgainst := func(target string) func(string) int {
		return func(candidate string) int {
			switch {
			case candidate < target:
				return -1
			case candidate > target:
				return 1
			default:
				return 0
			}
		}
	}

	i, err := kl.LowerBound(cmpAgainst("banana"))
	require.NoError(t, err)
	require.Equal(t, 1, i)

	i, err = kl.LowerBound(cmpAgainst("aardvark"))
	require.NoError(t, err)
	require.Equal(t, 0, i)

	i, err = kl.LowerBound(cmpAgainst("zebra"))
	require.NoError(t, err)
	require.Equal(t, 3, i)
}
