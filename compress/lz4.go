package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/mdict/slob/errs"
)

// lz4Decompressor implements Decompressor for the "lz4" compression name.
// This codec is not produced by the reference format; it is registered as
// one of the extended codecs the registry is open to (§4.10).
type lz4Decompressor struct{}

func (lz4Decompressor) Decompress(src []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(src))

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("compress: read lz4 stream: %w: %w", errs.ErrIo, err)
	}

	return out, nil
}
