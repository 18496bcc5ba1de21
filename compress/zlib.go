package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/mdict/slob/errs"
)

// zlibDecompressor implements Decompressor for the "zlib" compression name.
type zlibDecompressor struct{}

func (zlibDecompressor) Decompress(src []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("compress: open zlib stream: %w: %w", errs.ErrIo, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("compress: read zlib stream: %w: %w", errs.ErrIo, err)
	}

	return out, nil
}
