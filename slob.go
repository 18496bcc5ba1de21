// Package slob provides a read-only reader for the slob dictionary
// archive format: a single immutable file carrying a self-describing
// header, a key index sorted by Unicode collation order, and a
// compressed content store.
//
// # Basic Usage
//
// Opening an archive and looking up a key:
//
//	ctx := context.Background()
//	a, err := slob.Open(ctx, "dictionary.slob")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
//	it, err := a.Find(ctx, "earth", collate.Quaternary)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    b, ok, err := it.Next(ctx)
//	    if err != nil || !ok {
//	        break
//	    }
//	    content, _ := b.Content()
//	    fmt.Printf("%s: %s\n", content.Type, content.Data)
//	}
//
// Merging results across several open archives, preferring one of them:
//
//	m, err := slob.FindAll(ctx, "earth", []*archive.Archive{a1, a2}, merge.WithPreferred(a1))
//	for m.HasNext() {
//	    b, _, _ := m.Next(ctx)
//	    // ...
//	}
//
// # Package Structure
//
// This package is a thin convenience wrapper over archive (the per-file
// handle) and merge (the cross-archive match iterator); advanced callers
// needing finer control over caching, codecs, or the collator should use
// those packages directly.
package slob

import (
	"context"

	"github.com/mdict/slob/archive"
	"github.com/mdict/slob/collate"
	"github.com/mdict/slob/merge"
)

// Open opens the archive at path.
func Open(ctx context.Context, path string, opts ...archive.Option) (*archive.Archive, error) {
	return archive.Open(ctx, path, opts...)
}

// Find looks up key within a single open archive at the given collation
// strength, returning a lazy forward iterator in ref-list order.
func Find(ctx context.Context, a *archive.Archive, key string, strength collate.Strength) (*archive.Iterator, error) {
	return a.Find(ctx, key, strength)
}

// FindAll looks up key across every archive in archives, returning a
// peekable iterator that merges, ranks, and deduplicates matches (§4.8 in
// the engine's own terms: preference- and strength-aware ordering,
// identity-based dedup).
func FindAll(ctx context.Context, key string, archives []*archive.Archive, opts ...merge.Option) (*merge.Merge, error) {
	return merge.New(ctx, key, archives, opts...)
}
