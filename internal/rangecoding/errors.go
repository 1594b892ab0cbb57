package rangecoding

import "errors"

// Sentinel errors for the rangecoding package. See §7 of the core
// specification for the taxonomy these belong to.
var (
	// ErrShortRead is returned when a ByteSource yields fewer bytes than
	// requested. Fatal: the decoder's position in the stream is now
	// undefined and it must not be reused.
	ErrShortRead = errors.New("rangecoding: byte source returned fewer bytes than requested")

	// ErrConfig is returned for construction-time misconfiguration, such
	// as a symbol alphabet outside [2, 2048] or a mismatched initial
	// frequency table.
	ErrConfig = errors.New("rangecoding: invalid configuration")

	// ErrBitWidth is returned by ReadBits when asked for more than 32
	// bits at once.
	ErrBitWidth = errors.New("rangecoding: read_bits width must be in [1, 32]")
)
