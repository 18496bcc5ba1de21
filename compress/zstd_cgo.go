//go:build cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/mdict/slob/errs"
)

// zstdDecompressor implements Decompressor for the "zstd" compression name
// using gozstd's cgo binding to the reference C library. Selected
// automatically when cgo is enabled, trading a cgo dependency for
// throughput on the hot decompression path.
type zstdDecompressor struct{}

func newZstdDecompressor() Decompressor {
	return zstdDecompressor{}
}

func (zstdDecompressor) Decompress(src []byte) ([]byte, error) {
	out, err := gozstd.Decompress(nil, src)
	if err != nil {
		return nil, fmt.Errorf("compress: decode zstd stream: %w: %w", errs.ErrIo, err)
	}

	return out, nil
}
