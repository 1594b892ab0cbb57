package integer

import "errors"

// Sentinel errors for the integer package. See §7 of the core
// specification for the taxonomy these belong to.
var (
	// ErrNotInitialized is returned by Decompress when
	// InitDecompressor has not yet been called.
	ErrNotInitialized = errors.New("integer: compressor not initialized, call InitDecompressor first")
)
