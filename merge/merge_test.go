package merge

import (
	"bytes"
	"context"
	"testing"

	"github.com/mdict/slob/archive"
	"github.com/mdict/slob/collate"
	"github.com/mdict/slob/internal/testfixture"
	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T, uuid, uri string, blobs []testfixture.Blob) *archive.Archive {
	t.Helper()
	data := testfixture.Build(testfixture.Options{UUID: uuid, Tags: map[string]string{"uri": uri}}, blobs)
	a, err := archive.OpenReaderAt(context.Background(), bytes.NewReader(data), int64(len(data)), nil)
	require.NoError(t, err)

	return a
}

func TestMergeDedupsIdenticalBlobAcrossArchives(t *testing.T) {
	blobs := []testfixture.Blob{{Key: "earth", ContentType: "text/plain", Content: []byte("planet")}}
	a1 := openFixture(t, "11111111111111111111111111111111", "slob:one", blobs)
	a2 := openFixture(t, "11111111111111111111111111111111", "slob:one", blobs)

	m, err := New(context.Background(), "earth", []*archive.Archive{a1, a2})
	require.NoError(t, err)

	var keys []string
	for m.HasNext() {
		b, ok, err := m.Next(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		keys = append(keys, b.Key)
	}
	require.Len(t, keys, 1, "identical uuid+blob-id+fragment across archives must dedup to one match")
}

func TestMergeOrdersStrongerStrengthFirst(t *testing.T) {
	weak := []testfixture.Blob{{Key: "Earth", ContentType: "text/plain", Content: []byte("case-folded match")}}
	strong := []testfixture.Blob{{Key: "earth", ContentType: "text/plain", Content: []byte("exact match")}}

	aWeak := openFixture(t, "22222222222222222222222222222222", "slob:weak", weak)
	aStrong := openFixture(t, "33333333333333333333333333333333", "slob:strong", strong)

	m, err := New(context.Background(), "earth", []*archive.Archive{aWeak, aStrong})
	require.NoError(t, err)

	b, ok, err := m.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, aStrong, b.Owner(), "exact QUATERNARY match must precede a case-folded-only match")
}

func TestMergePreferredArchiveWinsAmongExactMatches(t *testing.T) {
	blobs := []testfixture.Blob{{Key: "earth", ContentType: "text/plain", Content: []byte("x")}}
	a1 := openFixture(t, "44444444444444444444444444444444", "slob:a1", blobs)
	a2 := openFixture(t, "55555555555555555555555555555555", "slob:a2", blobs)

	m, err := New(context.Background(), "earth", []*archive.Archive{a1, a2}, WithPreferred(a2))
	require.NoError(t, err)

	b, ok, err := m.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, a2, b.Owner())
}

// TestLessRanksAnyExactMatchAboveAnyPrefixMatch guards §4.8's "prefix
// levels always weaker than any exact level" rule directly against the
// total order, independent of any particular archive's collation
// behavior: a PRIMARY exact candidate (the weakest exact level) must
// still outrank a QUATERNARY_PREFIX candidate (the strongest prefix
// level).
func TestLessRanksAnyExactMatchAboveAnyPrefixMatch(t *testing.T) {
	m := &Merge{collator: collate.New()}
	a1, a2 := &archive.Archive{}, &archive.Archive{}
	weakExact := &pending{blob: &archive.Blob{Key: "z"}, strength: collate.Primary}
	strongPrefix := &pending{blob: &archive.Blob{Key: "a"}, strength: collate.QuaternaryPrefix}

	require.True(t, m.less(a1, weakExact, a2, strongPrefix))
	require.False(t, m.less(a2, strongPrefix, a1, weakExact))
}

func TestMergeYieldsNothingForUnknownKey(t *testing.T) {
	blobs := []testfixture.Blob{{Key: "earth", ContentType: "text/plain", Content: []byte("x")}}
	a := openFixture(t, "66666666666666666666666666666666", "slob:a", blobs)

	m, err := New(context.Background(), "nonexistent", []*archive.Archive{a})
	require.NoError(t, err)
	require.False(t, m.HasNext())
}
