// Package rangecoding implements the adaptive arithmetic (range) coder used
// by the LAZ point10 record compressor, together with the adaptive
// probability models it decodes against.
//
// The interval arithmetic here must match a reference implementation
// byte-for-byte, including renormalization timing and end-of-stream
// behavior. All arithmetic is unsigned 32-bit with wraparound; Go's uint32
// already wraps on overflow, so no explicit masking is required.
package rangecoding

// Constants fixing the precision of the decoder and its models.
const (
	// BMLengthShift is the number of bits BitModel scaled probabilities
	// occupy (bit_0_prob in [0, 2^13]).
	BMLengthShift = 13
	// DMLengthShift is the number of bits SymbolModel cumulative
	// distribution entries occupy.
	DMLengthShift = 15
	// ACMinLength is the renormalization floor: length never stays below
	// this after a decode completes.
	ACMinLength = 1 << 24
	// ACMaxLength is the initial interval width after start().
	ACMaxLength = 1<<32 - 1
)
