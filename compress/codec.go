package compress

import "fmt"

// Decompressor expands a compressed bin's bytes into the plain bytes the
// bin's items were encoded from. Implementations must not retain src past
// the call.
type Decompressor interface {
	Decompress(src []byte) ([]byte, error)
}

// Names the header's compression field is declared to carry (§4.2).
const (
	NameLzma2 = "lzma2"
	NameZlib  = "zlib"
	NameZstd  = "zstd"
	NameLz4   = "lz4"
	NameNone  = "none"
)

// Registry maps a compression name, as declared in an archive header, to
// the Decompressor that handles it. The zero Registry is unusable; use
// NewRegistry.
type Registry struct {
	byName map[string]Decompressor
}

// NewRegistry returns a Registry preloaded with the format's native codecs
// (lzma2, zlib, none) plus the extended codecs this engine additionally
// understands (zstd, lz4).
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Decompressor, 8)}
	r.Register(NameLzma2, lzma2Decompressor{})
	r.Register(NameZlib, zlibDecompressor{})
	r.Register(NameNone, noopDecompressor{})
	r.Register(NameZstd, newZstdDecompressor())
	r.Register(NameLz4, lz4Decompressor{})

	return r
}

// Register adds or replaces the decompressor for name.
func (r *Registry) Register(name string, d Decompressor) {
	r.byName[name] = d
}

// Lookup returns the decompressor registered for name.
func (r *Registry) Lookup(name string) (Decompressor, bool) {
	d, ok := r.byName[name]

	return d, ok
}

// ErrUnknownCodec describes a header's unrecognized compression name. Lookup
// reports a miss only through its boolean result, and the store reports an
// unregistered name as errs.ErrUnknownFileFormat rather than with this type.
type ErrUnknownCodec struct {
	Name string
}

func (e *ErrUnknownCodec) Error() string {
	return fmt.Sprintf("compress: unknown compression codec %q", e.Name)
}
