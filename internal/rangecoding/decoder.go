package rangecoding

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RangeDecoder is a 32-bit interval-arithmetic arithmetic (range) decoder.
// It consumes bytes from a ByteSource and decodes a bit against a BitModel,
// a symbol against a SymbolModel, or k raw bits.
//
// A RangeDecoder is single-threaded and exclusively owns its ByteSource for
// the duration of decoding (§5): two decoders must never share a source.
type RangeDecoder struct {
	length uint32
	value  uint32
	source ByteSource

	// ID is a per-instance identifier attached to every trace log line, so
	// a process running many decoders over many sources can tell their
	// logs apart.
	ID uuid.UUID

	Logger zerolog.Logger
}

// NewRangeDecoder returns a RangeDecoder with logging disabled. Call
// WithLogger to attach diagnostics, and Start before decoding anything.
func NewRangeDecoder() *RangeDecoder {
	return &RangeDecoder{ID: uuid.New(), Logger: zerolog.Nop()}
}

// WithLogger attaches a structured logger for Trace-level diagnostics
// (bit and symbol model rescales, nothing that affects decode output) and
// returns the decoder for chaining.
func (d *RangeDecoder) WithLogger(logger zerolog.Logger) *RangeDecoder {
	d.Logger = logger
	return d
}

func (d *RangeDecoder) readByte() (byte, error) {
	b, err := d.source.ReadExact(1)
	if err != nil {
		return 0, fmt.Errorf("rangecoding: read byte: %w", err)
	}
	return b[0], nil
}

// Start attaches source and loads the initial 4-byte big-endian value,
// setting length to ACMaxLength.
func (d *RangeDecoder) Start(source ByteSource) error {
	d.source = source
	d.length = ACMaxLength

	b, err := source.ReadExact(4)
	if err != nil {
		return fmt.Errorf("rangecoding: start: %w", err)
	}
	d.value = uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return nil
}

// renorm reads one byte at a time, shifting it into the low byte of value,
// until length is back above ACMinLength.
func (d *RangeDecoder) renorm() error {
	for d.length < ACMinLength {
		b, err := d.readByte()
		if err != nil {
			return err
		}
		d.value = (d.value << 8) | uint32(b)
		d.length <<= 8
	}
	return nil
}

// DecodeBit decodes a single bit against m, updating m's adaptive state.
func (d *RangeDecoder) DecodeBit(m *BitModel) (uint32, error) {
	x := m.bit0Prob * (d.length >> BMLengthShift)

	var sym uint32
	if d.value < x {
		sym = 0
		d.length = x
		m.bit0Count++
	} else {
		sym = 1
		d.value -= x
		d.length -= x
	}

	if d.length < ACMinLength {
		if err := d.renorm(); err != nil {
			return 0, err
		}
	}

	m.bitsUntilUpdate--
	if m.bitsUntilUpdate == 0 {
		m.update()
		d.Logger.Trace().Str("decoder_id", d.ID.String()).Msg("bit model rescaled")
	}

	return sym, nil
}

// DecodeSymbol decodes one symbol against m, updating m's adaptive state
// and, if m carries a decoder table, using it to accelerate the search.
func (d *RangeDecoder) DecodeSymbol(m *SymbolModel) (uint32, error) {
	origLength := d.length
	var sym, x, y uint32

	if m.decoderTable != nil {
		d.length >>= DMLengthShift
		dv := d.value / d.length
		t := dv >> m.tableShift

		sym = m.decoderTable[t]
		n := m.decoderTable[t+1] + 1

		for n > sym+1 {
			k := (sym + n) >> 1
			if m.distribution[k] > dv {
				n = k
			} else {
				sym = k
			}
		}

		x = m.distribution[sym] * d.length
		if sym == m.lastSymbol {
			y = origLength
		} else {
			y = m.distribution[sym+1] * d.length
		}
	} else {
		d.length >>= DMLengthShift
		n := m.numSymbols
		y = origLength

		k := n >> 1
		for {
			z := d.length * m.distribution[k]
			if z > d.value {
				n = k
				y = z
			} else {
				sym = k
				x = z
			}
			k = (sym + n) >> 1
			if k == sym {
				break
			}
		}
	}

	d.value -= x
	d.length = y - x

	if d.length < ACMinLength {
		if err := d.renorm(); err != nil {
			return 0, err
		}
	}

	m.incrementSymbolCount(sym)
	m.symbolsUntilUpdate--
	if m.symbolsUntilUpdate == 0 {
		m.update()
		d.Logger.Trace().Str("decoder_id", d.ID.String()).Uint32("total_count", m.totalCount).Msg("symbol model rescaled")
	}

	return sym, nil
}

// ReadBits reads k (1 <= k <= 32) raw, non-adaptive bits from the stream.
func (d *RangeDecoder) ReadBits(k uint) (uint32, error) {
	if k == 0 || k > 32 {
		return 0, fmt.Errorf("%w: got %d", ErrBitWidth, k)
	}
	if k > 19 {
		lo, err := d.ReadBits(16)
		if err != nil {
			return 0, err
		}
		hi, err := d.ReadBits(k - 16)
		if err != nil {
			return 0, err
		}
		return lo | (hi << 16), nil
	}

	d.length >>= k
	sym := d.value / d.length
	d.value %= d.length

	if d.length < ACMinLength {
		if err := d.renorm(); err != nil {
			return 0, err
		}
	}

	return sym, nil
}

// ReadInt reads a full 32-bit raw integer.
func (d *RangeDecoder) ReadInt() (uint32, error) {
	return d.ReadBits(32)
}

// Length returns the current interval width (test/debug introspection).
func (d *RangeDecoder) Length() uint32 { return d.length }

// Value returns the current code value (test/debug introspection).
func (d *RangeDecoder) Value() uint32 { return d.value }
