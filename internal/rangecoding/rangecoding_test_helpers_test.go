package rangecoding

import "fmt"

// sliceSource is a minimal in-memory ByteSource used by this package's own
// tests (tests for the root lazpy.SliceByteSource live at the module root).
type sliceSource struct {
	buf []byte
	off int
}

func (s *sliceSource) ReadExact(n int) ([]byte, error) {
	if s.off+n > len(s.buf) {
		return nil, fmt.Errorf("%w: wanted %d, have %d", ErrShortRead, n, len(s.buf)-s.off)
	}
	b := s.buf[s.off : s.off+n]
	s.off += n
	return b, nil
}
