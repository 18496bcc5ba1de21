package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/mdict/slob/errs"
)

// lzma2Decompressor implements Decompressor for the "lzma2" compression
// name. Store bins use the xz container around the LZMA2 stream, the same
// framing archives of this family use elsewhere.
type lzma2Decompressor struct{}

func (lzma2Decompressor) Decompress(src []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("compress: open lzma2 stream: %w: %w", errs.ErrIo, err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("compress: read lzma2 stream: %w: %w", errs.ErrIo, err)
	}

	return out, nil
}
