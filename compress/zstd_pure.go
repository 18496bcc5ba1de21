//go:build !cgo

package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/mdict/slob/errs"
)

// zstdDecompressor implements Decompressor for the "zstd" compression name
// using the pure-Go decoder. Selected automatically when cgo is disabled.
type zstdDecompressor struct {
	dec *zstd.Decoder
}

func newZstdDecompressor() Decompressor {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		// Only fails on invalid options, which are fixed at compile time here.
		panic(err)
	}

	return &zstdDecompressor{dec: dec}
}

func (z *zstdDecompressor) Decompress(src []byte) ([]byte, error) {
	out, err := z.dec.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("compress: decode zstd stream: %w: %w", errs.ErrIo, err)
	}

	return out, nil
}
