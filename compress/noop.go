package compress

// noopDecompressor implements Decompressor for the "none" compression
// name: the bin's bytes are the blob content verbatim.
type noopDecompressor struct{}

func (noopDecompressor) Decompress(src []byte) ([]byte, error) {
	out := make([]byte, len(src))
	copy(out, src)

	return out, nil
}
