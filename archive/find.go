package archive

import (
	"context"

	"github.com/mdict/slob/collate"
)

// Iterator is a single-pass, lazily-scanning result stream (§4.7). It is
// not restartable: once exhausted, it stays exhausted.
type Iterator struct {
	a        *Archive
	strength collate.Strength
	stop     func(candidateKey string) int
	i        int
	done     bool
}

// Find resolves key against the archive's key-list at strength, returning
// a lazy forward iterator over matching blobs in ref-list (ascending
// collation) order (§4.7).
func (a *Archive) Find(ctx context.Context, key string, strength collate.Strength) (*Iterator, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exact := func(candidateKey string) int { return a.collator.Exact(candidateKey, key, strength) }
	stopCmp := exact
	if strength.IsPrefix() {
		stopCmp = func(candidateKey string) int { return a.collator.Prefix(candidateKey, key, strength) }
	}

	start, err := a.keyList.LowerBound(exact)
	if err != nil {
		return nil, err
	}

	return &Iterator{a: a, strength: strength, stop: stopCmp, i: start}, nil
}

// Next advances the iterator, returning the next matching Blob, or
// ok == false when the scan has stopped (either the archive is exhausted
// or the stop comparator no longer yields equal). ctx is checked once per
// step, not mid-read (§5).
func (it *Iterator) Next(ctx context.Context) (blob *Blob, ok bool, err error) {
	if it.done {
		return nil, false, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	size, err := it.a.Size()
	if err != nil {
		it.done = true
		return nil, false, err
	}
	if it.i >= size {
		it.done = true
		return nil, false, nil
	}

	ref, err := it.a.refList.Get(it.i)
	if err != nil {
		it.done = true
		return nil, false, err
	}

	if it.stop(ref.Key) != 0 {
		it.done = true
		return nil, false, nil
	}

	it.i++

	return it.a.blobFromRef(ref), true, nil
}
