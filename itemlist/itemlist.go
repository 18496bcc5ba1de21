// Package itemlist implements the generic random-access item-list shape
// shared by the ref-list, key-list, and store (§4.3): a count, a position
// table, a data region, and an LRU-cached per-item decoder.
package itemlist

import (
	"fmt"
	"io"

	"github.com/mdict/slob/errs"
	"github.com/mdict/slob/internal/cache"
	"github.com/mdict/slob/wire"
)

// Decoder decodes one item from r, which is positioned at the item's
// start.
type Decoder[T any] func(r *wire.Reader) (T, error)

// PosEntrySize is the width of one position-table slot. Ref-list and
// store use 8-byte (u64) offsets; in-bin offset tables use 4-byte (u32)
// offsets (§4.3, §4.5).
type PosEntrySize int

const (
	PosEntry32 PosEntrySize = 4
	PosEntry64 PosEntrySize = 8
)

// List is a random-access, LRU-cached view over one on-disk item list.
type List[T any] struct {
	src          io.ReaderAt
	count        int
	posStart     int64
	posEntrySize int64
	dataStart    int64
	decode       Decoder[T]
	cache        *cache.Cache[int, T]
}

// Open reads the count at offset and constructs a List backed by decode.
// capacity bounds the per-item LRU cache.
func Open[T any](src io.ReaderAt, offset int64, entrySize PosEntrySize, capacity int, decode Decoder[T]) (*List[T], error) {
	r := wire.NewReader(src, offset)
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	posStart := r.Pos()
	entryWidth := int64(entrySize)
	dataStart := posStart + int64(count)*entryWidth

	return &List[T]{
		src:          src,
		count:        int(count),
		posStart:     posStart,
		posEntrySize: entryWidth,
		dataStart:    dataStart,
		decode:       decode,
		cache:        cache.New[int, T](capacity),
	}, nil
}

// Len returns the item count.
func (l *List[T]) Len() int { return l.count }

// Get returns the i-th item, decoding and caching it on a cache miss.
// i must satisfy 0 <= i < Len(); an out-of-range i is a programming error
// and returns ErrIndexOutOfRange rather than panicking.
func (l *List[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= l.count {
		return zero, fmt.Errorf("%w: index %d (len %d)", errs.ErrIndexOutOfRange, i, l.count)
	}

	if v, ok := l.cache.Get(i); ok {
		return v, nil
	}

	posReader := wire.NewReader(l.src, l.posStart+int64(i)*l.posEntrySize)
	var offset int64
	var err error
	if l.posEntrySize == int64(PosEntry64) {
		offset, err = posReader.ReadInt64()
	} else {
		var o32 uint32
		o32, err = posReader.ReadUint32()
		offset = int64(o32)
	}
	if err != nil {
		return zero, err
	}

	item, err := l.decode(wire.NewReader(l.src, l.dataStart+offset))
	if err != nil {
		return zero, err
	}

	l.cache.Add(i, item)

	return item, nil
}
