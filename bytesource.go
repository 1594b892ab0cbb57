package lazpy

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bmander/lazpy/internal/rangecoding"
)

// ByteSource is the external byte-reading collaborator the range decoder
// consumes. It is an alias for rangecoding.ByteSource so that callers
// constructing adapters never need to import the internal package
// directly.
type ByteSource = rangecoding.ByteSource

// SliceByteSource adapts a fixed in-memory byte slice into a ByteSource.
// It is the adapter the root package's tests use.
type SliceByteSource struct {
	buf []byte
	off int
}

// NewSliceByteSource returns a ByteSource that reads sequentially from buf.
func NewSliceByteSource(buf []byte) *SliceByteSource {
	return &SliceByteSource{buf: buf}
}

// ReadExact implements ByteSource.
func (s *SliceByteSource) ReadExact(n int) ([]byte, error) {
	if n < 0 || s.off+n > len(s.buf) {
		return nil, fmt.Errorf("lazpy: short read: wanted %d, have %d: %w", n, len(s.buf)-s.off, rangecoding.ErrShortRead)
	}
	b := s.buf[s.off : s.off+n]
	s.off += n
	return b, nil
}

// ReaderByteSource adapts a buffered io.Reader into a ByteSource. This is
// the production path: a chunk's compressed point data read straight off
// disk or a network stream.
type ReaderByteSource struct {
	r *bufio.Reader
}

// NewReaderByteSource wraps r in a ByteSource. r is read sequentially and
// never sought.
func NewReaderByteSource(r io.Reader) *ReaderByteSource {
	return &ReaderByteSource{r: bufio.NewReader(r)}
}

// ReadExact implements ByteSource.
func (r *ReaderByteSource) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, fmt.Errorf("lazpy: short read: %w: %v", rangecoding.ErrShortRead, err)
	}
	return buf, nil
}
