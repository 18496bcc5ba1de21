// Package store implements the compressed content store and its bins
// (§4.5): an item-list of StoreItems, each decompressed lazily into a Bin
// of individually addressable content items on first content access.
package store

import (
	"fmt"
	"io"
	"sync"

	"github.com/mdict/slob/compress"
	"github.com/mdict/slob/errs"
	"github.com/mdict/slob/itemlist"
	"github.com/mdict/slob/wire"
)

// DefaultCacheCapacity bounds decompressed-bin retention (§3).
const DefaultCacheCapacity = 4

// Logger receives a Debugf call on each bin decompression (§4.11). Any type
// with this method satisfies it, including archive.Logger.
type Logger interface {
	Debugf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}

// StoreItem holds one bin's content-type-ID array and either its
// still-compressed payload or its decoded Bin, never both: decompression
// is a one-way transition from compressed to decoded (§3).
type StoreItem struct {
	mu           sync.Mutex
	contentTypes []uint8
	compressed   []byte
	bin          *Bin
}

// ContentTypeIDs returns the per-item content-type IDs for this bin.
func (s *StoreItem) ContentTypeIDs() []uint8 { return s.contentTypes }

func decodeStoreItem(r *wire.Reader) (*StoreItem, error) {
	binItemCount, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	contentTypes, err := r.ReadBytes(int(binItemCount))
	if err != nil {
		return nil, err
	}

	compressedLength, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	compressed, err := r.ReadBytes(int(compressedLength))
	if err != nil {
		return nil, err
	}

	return &StoreItem{contentTypes: contentTypes, compressed: compressed}, nil
}

// decode returns the item's Bin, resolving the registered decompressor for
// codecName on first access and discarding the compressed buffer
// afterward. The registry lookup is deferred to here rather than to Open
// so that an archive whose header names an unrecognized compression is
// still otherwise readable: the failure only surfaces for a bin actually
// touched (§4.10).
func (s *StoreItem) decode(registry *compress.Registry, codecName string, logger Logger, binIndex int) (*Bin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bin != nil {
		return s.bin, nil
	}

	decompressor, ok := registry.Lookup(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized compression %q", errs.ErrUnknownFileFormat, codecName)
	}

	compressedLen := len(s.compressed)

	raw, err := decompressor.Decompress(s.compressed)
	if err != nil {
		return nil, fmt.Errorf("store: decompress bin: %w", err)
	}

	bin, err := openBin(raw, len(s.contentTypes))
	if err != nil {
		return nil, err
	}

	logger.Debugf("store: decompressed bin %d (%s, %d -> %d bytes)", binIndex, codecName, compressedLen, len(raw))

	s.bin = bin
	s.compressed = nil

	return bin, nil
}

// Bin is a decompressed bin: a position table over its own data region,
// each item being a length-prefixed byte span (§3, §6).
type Bin struct {
	data      []byte
	positions []uint32
}

func openBin(data []byte, count int) (*Bin, error) {
	const entryWidth = 4
	if len(data) < count*entryWidth {
		return nil, fmt.Errorf("%w: bin position table truncated", errs.ErrTruncatedFile)
	}

	positions := make([]uint32, count)
	for i := 0; i < count; i++ {
		off := i * entryWidth
		positions[i] = uint32(data[off])<<24 | uint32(data[off+1])<<16 | uint32(data[off+2])<<8 | uint32(data[off+3])
	}

	return &Bin{data: data[count*entryWidth:], positions: positions}, nil
}

// Item returns the content bytes for the i-th item in the bin.
func (b *Bin) Item(i int) ([]byte, error) {
	if i < 0 || i >= len(b.positions) {
		return nil, fmt.Errorf("%w: bin item index %d (have %d)", errs.ErrIndexOutOfRange, i, len(b.positions))
	}

	pos := int(b.positions[i])
	if pos+4 > len(b.data) {
		return nil, fmt.Errorf("%w: bin item length prefix truncated", errs.ErrTruncatedFile)
	}

	length := int(uint32(b.data[pos])<<24 | uint32(b.data[pos+1])<<16 | uint32(b.data[pos+2])<<8 | uint32(b.data[pos+3]))
	start := pos + 4
	if start+length > len(b.data) {
		return nil, fmt.Errorf("%w: bin item body truncated", errs.ErrTruncatedFile)
	}

	return b.data[start : start+length], nil
}

// Store is the content store: random access to StoreItems by bin index,
// plus the decompress-and-address operation get_content (§4.5). An
// archive declares exactly one compression name for its whole store
// (§6), so a Store is opened with the registry and that single codec
// name; the name is resolved lazily, the first time a bin is actually
// decompressed, not at open time, so a header naming an unrecognized
// codec is still otherwise readable (§4.10).
type Store struct {
	inner     *itemlist.List[*StoreItem]
	registry  *compress.Registry
	codecName string
	logger    Logger
}

// Open opens the store at offset against registry's codecName, caching up
// to cacheCapacity decoded bins. A nil logger defaults to a no-op.
func Open(src io.ReaderAt, offset int64, registry *compress.Registry, codecName string, cacheCapacity int, logger Logger) (*Store, error) {
	inner, err := itemlist.Open(src, offset, itemlist.PosEntry64, cacheCapacity, decodeStoreItem)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = noopLogger{}
	}

	return &Store{inner: inner, registry: registry, codecName: codecName, logger: logger}, nil
}

// Len returns the number of bins.
func (s *Store) Len() int { return s.inner.Len() }

// Item returns the StoreItem for a bin index.
func (s *Store) Item(binIndex int) (*StoreItem, error) { return s.inner.Get(binIndex) }

// GetContent returns the decompressed content bytes for (binIndex,
// itemIndex). The returned slice aliases the store's cached bin and is
// only valid until that bin is evicted (§3).
func (s *Store) GetContent(binIndex, itemIndex int) ([]byte, error) {
	item, err := s.inner.Get(binIndex)
	if err != nil {
		return nil, err
	}

	bin, err := item.decode(s.registry, s.codecName, s.logger, binIndex)
	if err != nil {
		return nil, err
	}

	return bin.Item(itemIndex)
}
