package slob

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

func TestFindReturnsBlobContent(t *testing.T) {
	a := openFixture(t, "77777777777777777777777777777777", "slob:t", []testfixture.Blob{
		{Key: "earth", ContentType: "text/plain", Content: []byte("a planet")},
	})

	it, err := Find(context.Background(), a, "earth", collate.Quaternary)
	require.NoError(t, err)

	b, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	c, err := b.Content()
	require.NoError(t, err)
	require.Equal(t, "a planet", string(c.Data))
}

func TestFindAllMergesAcrossArchives(t *testing.T) {
	a1 := openFixture(t, "88888888888888888888888888888888", "slob:a", []testfixture.Blob{
		{Key: "earth", ContentType: "text/plain", Content: []byte("from a1")},
	})
	a2 := openFixture(t, "99999999999999999999999999999999", "slob:b", []testfixture.Blob{
		{Key: "earth", ContentType: "text/plain", Content: []byte("from a2")},
	})

	m, err := FindAll(context.Background(), "earth", []*archive.Archive{a1, a2})
	require.NoError(t, err)

	count := 0
	for m.HasNext() {
		_, ok, err := m.Next(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		count++
	}
	require.Equal(t, 2, count, "two distinct archives with distinct uuids both contribute a match")
}
