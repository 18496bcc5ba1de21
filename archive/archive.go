// Package archive implements the public Archive handle (C9, §4.9): open,
// close, ordinal access, content retrieval, and single-archive lookup
// (§4.7). It wires together the header parser, ref-list/key-list,
// store, and collator into one owned unit.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/mdict/slob/collate"
	"github.com/mdict/slob/errs"
	"github.com/mdict/slob/format"
	"github.com/mdict/slob/internal/options"
	"github.com/mdict/slob/refs"
	"github.com/mdict/slob/store"
)

// Archive is a read-only, opened handle on one on-disk archive. It
// exclusively owns its byte source, parsed header, and per-archive
// caches; it is immutable after construction and safe for concurrent
// read use once opened (§5).
type Archive struct {
	mu     sync.Mutex
	closed bool

	source io.ReaderAt
	closer io.Closer

	header   *format.Header
	refList  *refs.List
	keyList  *refs.KeyList
	store    *store.Store
	collator *collate.Collator
	logger   Logger
}

// Open opens the archive at path and parses its header.
func Open(ctx context.Context, path string, opts ...Option) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIo, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", errs.ErrIo, err)
	}

	a, err := open(ctx, f, info.Size(), f, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}

	return a, nil
}

// OpenReaderAt opens an archive from an already-open byte source of the
// given total size, e.g. an in-memory fixture or a memory-mapped region.
// closer, if non-nil, is closed by the Archive's Close.
func OpenReaderAt(ctx context.Context, src io.ReaderAt, size int64, closer io.Closer, opts ...Option) (*Archive, error) {
	return open(ctx, src, size, closer, opts...)
}

func open(ctx context.Context, src io.ReaderAt, size int64, closer io.Closer, opts ...Option) (*Archive, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	header, err := format.Parse(src, size)
	if err != nil {
		return nil, err
	}

	refList, err := refs.OpenList(src, header.RefListOffset, header.Encoding, cfg.refCacheCapacity)
	if err != nil {
		return nil, err
	}

	keyList, err := refs.OpenKeyList(src, header.RefListOffset, header.Encoding, cfg.keyCacheCapacity)
	if err != nil {
		return nil, err
	}

	// The compression name is resolved lazily inside store, the first time a
	// bin is actually decompressed: an unrecognized name is otherwise a
	// perfectly readable header (§4.10).
	st, err := store.Open(src, header.StoreOffset, cfg.registry, header.Compression, cfg.storeCacheCapacity, cfg.logger)
	if err != nil {
		return nil, err
	}

	return &Archive{
		source:   src,
		closer:   closer,
		header:   header,
		refList:  refList,
		keyList:  keyList,
		store:    st,
		collator: cfg.collator,
		logger:   cfg.logger,
	}, nil
}

// Close releases the underlying byte source. Further operations on a
// closed Archive fail with ErrClosed.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	if a.closer != nil {
		return a.closer.Close()
	}

	return nil
}

func (a *Archive) checkOpen() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errs.ErrClosed
	}

	return nil
}

// Size returns the number of references in the archive.
func (a *Archive) Size() (int, error) {
	if err := a.checkOpen(); err != nil {
		return 0, err
	}

	return a.refList.Len(), nil
}

// Get returns the i-th reference as a Blob.
func (a *Archive) Get(i int) (*Blob, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}

	ref, err := a.refList.Get(i)
	if err != nil {
		return nil, err
	}

	return a.blobFromRef(ref), nil
}

func (a *Archive) blobFromRef(ref refs.Ref) *Blob {
	return &Blob{
		owner:    a,
		id:       blobID(int(ref.BinIndex), int(ref.ItemIndex)),
		Key:      ref.Key,
		Fragment: ref.Fragment,
	}
}

func blobID(binIndex, itemIndex int) string {
	return strconv.Itoa(binIndex) + "-" + strconv.Itoa(itemIndex)
}

func parseBlobID(id string) (binIndex, itemIndex int, err error) {
	parts := strings.SplitN(id, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrBlobIDMalformed, id)
	}
	bin, err1 := strconv.Atoi(parts[0])
	item, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrBlobIDMalformed, id)
	}

	return bin, item, nil
}

// GetContent resolves a blob id ("bin-item") into its decompressed
// content bytes and declared content type.
func (a *Archive) GetContent(id string) (*Content, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}

	binIndex, itemIndex, err := parseBlobID(id)
	if err != nil {
		return nil, err
	}

	data, err := a.store.GetContent(binIndex, itemIndex)
	if err != nil {
		return nil, err
	}

	typ, err := a.contentType(binIndex, itemIndex)
	if err != nil {
		return nil, err
	}

	return &Content{Type: typ, Data: data}, nil
}

// GetContentType resolves a blob id's declared content type without
// decompressing its bytes beyond what the bin layout requires.
func (a *Archive) GetContentType(id string) (string, error) {
	if err := a.checkOpen(); err != nil {
		return "", err
	}

	binIndex, itemIndex, err := parseBlobID(id)
	if err != nil {
		return "", err
	}

	return a.contentType(binIndex, itemIndex)
}

func (a *Archive) contentType(binIndex, itemIndex int) (string, error) {
	item, err := a.store.Item(binIndex)
	if err != nil {
		return "", err
	}
	ids := item.ContentTypeIDs()
	if itemIndex < 0 || itemIndex >= len(ids) {
		return "", fmt.Errorf("%w: bin item index %d (have %d)", errs.ErrIndexOutOfRange, itemIndex, len(ids))
	}

	return a.header.ContentType(ids[itemIndex])
}

// ID returns the archive's content UUID.
func (a *Archive) ID() string { return a.header.UUID }

// Tags returns the archive's declared tag map.
func (a *Archive) Tags() map[string]string { return a.header.Tags }

// URI returns the "uri" tag or a "slob:<uuid>" fallback (§4.8, §4.9).
func (a *Archive) URI() string { return a.header.URI() }

// BlobCount returns the header's advisory total blob count.
func (a *Archive) BlobCount() uint32 { return a.header.BlobCount }
