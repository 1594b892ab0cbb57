package rangecoding

// ByteSource is the only external collaborator the decoder needs: a
// blocking, exact-length byte reader. It has no seek and no pushback; the
// decoder never reads past the end of a chunk as understood by its caller.
type ByteSource interface {
	// ReadExact returns exactly n bytes, or an error (wrapping
	// ErrShortRead) if fewer than n bytes are available.
	ReadExact(n int) ([]byte, error)
}
