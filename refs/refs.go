// Package refs implements the ref-list and its key-only projection, the
// key-list (§4.4): both are item-list instantiations over the same
// on-disk position table, decoded differently and cached separately so
// binary search over keys stays cheap.
package refs

import (
	"io"

	"github.com/mdict/slob/itemlist"
	"github.com/mdict/slob/wire"
)

// DefaultRefListCacheCapacity and DefaultKeyListCacheCapacity are the
// per-archive LRU sizes named in §3.
const (
	DefaultRefListCacheCapacity = 256
	DefaultKeyListCacheCapacity = 256
)

// Ref is one reference: a lookup key paired with the (bin, item) it
// points to and an optional in-content fragment.
type Ref struct {
	Key       string
	BinIndex  uint32
	ItemIndex uint16
	Fragment  string
}

// Keyed is the minimal shape binary search compares against.
type Keyed struct {
	Key string
}

// List is the full ref-list: random access by ordinal to (key, target,
// fragment) tuples.
type List struct {
	inner *itemlist.List[Ref]
}

// OpenList opens the ref-list at offset, caching up to cacheCapacity
// decoded references.
func OpenList(src io.ReaderAt, offset int64, encoding string, cacheCapacity int) (*List, error) {
	inner, err := itemlist.Open(src, offset, itemlist.PosEntry64, cacheCapacity, decodeRef(encoding))
	if err != nil {
		return nil, err
	}

	return &List{inner: inner}, nil
}

// Len returns the number of references.
func (l *List) Len() int { return l.inner.Len() }

// Get returns the i-th reference.
func (l *List) Get(i int) (Ref, error) { return l.inner.Get(i) }

func decodeRef(encoding string) itemlist.Decoder[Ref] {
	return func(r *wire.Reader) (Ref, error) {
		key, err := r.ReadText(encoding)
		if err != nil {
			return Ref{}, err
		}
		binIndex, err := r.ReadUint32()
		if err != nil {
			return Ref{}, err
		}
		itemIndex, err := r.ReadUint16()
		if err != nil {
			return Ref{}, err
		}
		fragment, err := r.ReadTinyText(encoding)
		if err != nil {
			return Ref{}, err
		}

		return Ref{Key: key, BinIndex: binIndex, ItemIndex: itemIndex, Fragment: fragment}, nil
	}
}

// KeyList is the key-only projection of the same on-disk list, used by
// binary search so scanning many keys doesn't pull bin/item/fragment
// bytes it doesn't need.
type KeyList struct {
	inner *itemlist.List[Keyed]
}

// OpenKeyList opens the key-list view at the same offset as the ref-list,
// caching up to cacheCapacity decoded keys.
func OpenKeyList(src io.ReaderAt, offset int64, encoding string, cacheCapacity int) (*KeyList, error) {
	inner, err := itemlist.Open(src, offset, itemlist.PosEntry64, cacheCapacity, decodeKeyed(encoding))
	if err != nil {
		return nil, err
	}

	return &KeyList{inner: inner}, nil
}

// Len returns the number of keys.
func (l *KeyList) Len() int { return l.inner.Len() }

// Get returns the i-th key.
func (l *KeyList) Get(i int) (Keyed, error) { return l.inner.Get(i) }

// LowerBound returns the smallest index i in [0, keyList.Len()) such that
// cmp(keyList[i].Key) >= 0, or keyList.Len() if no such index exists
// (§4.7 step 2). cmp must be non-decreasing over the key-list's order for
// the result to be meaningful, which holds for the exact comparator at
// any strength since the ref-list is sorted under QUATERNARY collation.
func (l *KeyList) LowerBound(cmp func(candidateKey string) int) (int, error) {
	lo, hi := 0, l.inner.Len()
	for lo < hi {
		mid := lo + (hi-lo)/2
		k, err := l.inner.Get(mid)
		if err != nil {
			return 0, err
		}
		if cmp(k.Key) >= 0 {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo, nil
}

func decodeKeyed(encoding string) itemlist.Decoder[Keyed] {
	return func(r *wire.Reader) (Keyed, error) {
		key, err := r.ReadText(encoding)
		if err != nil {
			return Keyed{}, err
		}

		return Keyed{Key: key}, nil
	}
}
