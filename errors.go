package lazpy

import "errors"

// Public error values for the lazpy package.
var (
	// ErrShortRecord is returned by ReadFirst when the supplied seed record
	// is not exactly 20 bytes long.
	ErrShortRecord = errors.New("lazpy: point10 seed record must be exactly 20 bytes")

	// ErrNotSeeded is returned by Read when ReadFirst has not yet been
	// called to establish a chunk's seed record.
	ErrNotSeeded = errors.New("lazpy: Read called before ReadFirst")
)
