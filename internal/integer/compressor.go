// Package integer implements the signed-residual integer decompressor that
// sits on top of the range coder: it splits a correction value into a
// magnitude class k (decoded with one adaptive SymbolModel per context) and
// a remainder (decoded with a per-k corrector model), then folds the result
// back into a signed interval.
package integer

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bmander/lazpy/internal/rangecoding"
)

// Compressor decodes integers previously range-coded as a (magnitude
// class, remainder) pair. Despite the name (carried over from the LASzip
// source this is ported from) only decoding is implemented here — see §1's
// Non-goals.
type Compressor struct {
	decoder  *rangecoding.RangeDecoder
	bits     uint32
	contexts uint32
	bitsHigh uint32
	rng      uint32

	corrBits  uint32
	corrRange uint32
	corrMin   int32
	corrMax   int32

	mBits      []*rangecoding.SymbolModel
	mCorrector []*rangecoding.SymbolModel // index 0 unused; see corrector0
	corrector0 *rangecoding.BitModel

	// k is the magnitude class decoded by the most recent call to
	// Decompress. It is observable: the point10 layer uses it to pick the
	// dy context (§4.6 step 8).
	k uint32

	// ID is a per-instance identifier attached to trace logs, so a process
	// running many compressors (one per point10 field) can tell their log
	// lines apart.
	ID uuid.UUID

	Logger zerolog.Logger
}

const defaultBits = 16
const defaultContexts = 1
const defaultBitsHigh = 8

// Option configures a Compressor at construction time.
type Option func(*Compressor)

// WithBits overrides the nominal bit width of integers being compressed
// (default 16).
func WithBits(bits uint32) Option { return func(c *Compressor) { c.bits = bits } }

// WithContexts overrides the number of per-context k-models (default 1).
func WithContexts(contexts uint32) Option { return func(c *Compressor) { c.contexts = contexts } }

// WithBitsHigh overrides the cap on symbol-model size for the remainder
// tables (default 8).
func WithBitsHigh(bitsHigh uint32) Option { return func(c *Compressor) { c.bitsHigh = bitsHigh } }

// WithRange sets an explicit range cap; corr_bits/corr_range are then
// derived from range instead of from bits.
func WithRange(rng uint32) Option { return func(c *Compressor) { c.rng = rng } }

// WithLogger attaches a structured logger for Trace-level diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Compressor) { c.Logger = logger }
}

// New constructs a Compressor bound to decoder, deriving corr_bits,
// corr_range, corr_min and corr_max per §3/§4.4.
func New(decoder *rangecoding.RangeDecoder, opts ...Option) *Compressor {
	c := &Compressor{
		decoder:  decoder,
		bits:     defaultBits,
		contexts: defaultContexts,
		bitsHigh: defaultBitsHigh,
		ID:       uuid.New(),
		Logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.rng != 0:
		c.corrRange = c.rng
		r := c.rng
		for r != 0 {
			r >>= 1
			c.corrBits++
		}
		if c.corrRange == 1<<(c.corrBits-1) {
			c.corrBits--
		}
	case c.bits > 0 && c.bits < 32:
		c.corrBits = c.bits
		c.corrRange = 1 << c.bits
	default:
		c.corrBits = 32
		c.corrRange = 0
	}

	if c.corrRange > 0 {
		c.corrMin = -int32(c.corrRange / 2)
		c.corrMax = c.corrMin + int32(c.corrRange) - 1
	} else {
		c.corrMin = -0x7FFFFFFF
		c.corrMax = 0x7FFFFFFF
	}

	return c
}

// K returns the magnitude class decoded by the most recent Decompress call.
func (c *Compressor) K() uint32 { return c.k }

// CorrBits, CorrRange, CorrMin and CorrMax expose the derived parameters.
func (c *Compressor) CorrBits() uint32  { return c.corrBits }
func (c *Compressor) CorrRange() uint32 { return c.corrRange }
func (c *Compressor) CorrMin() int32    { return c.corrMin }
func (c *Compressor) CorrMax() int32    { return c.corrMax }

// InitDecompressor allocates (on first call) and resets (on every call) the
// per-context k-models and the corrector models. It is idempotent: a
// second call produces the same state as the first.
//
// The corrector array is sized corrBits+1, not corrBits: the original
// LASzip C implementation this is ported from allocates exactly corrBits
// slots but can legitimately decode k == corrBits for a bounded compressor
// (corrRange spans exactly corrBits bits, so the boundary correction value
// needs corrBits bits to represent) — an off-by-one that reads past the
// allocated array in C. Go has no analogous undefined out-of-bounds read,
// so this port sizes the array to cover every value Decompress's k can
// legitimately take, with identical model sizing for the extra slot.
func (c *Compressor) InitDecompressor() error {
	if c.mBits == nil {
		bitsModelSize := c.corrBits + 1
		c.mBits = make([]*rangecoding.SymbolModel, c.contexts)
		for i := range c.mBits {
			m, err := rangecoding.NewSymbolModel(bitsModelSize)
			if err != nil {
				return fmt.Errorf("integer: context %d k-model: %w", i, err)
			}
			c.mBits[i] = m
		}

		c.corrector0 = rangecoding.NewBitModel()

		c.mCorrector = make([]*rangecoding.SymbolModel, c.corrBits+1)
		for i := uint32(1); i <= c.corrBits && i < 32; i++ {
			numSymbols := uint32(1) << c.bitsHigh
			if i <= c.bitsHigh {
				numSymbols = 1 << i
			}
			m, err := rangecoding.NewSymbolModel(numSymbols)
			if err != nil {
				return fmt.Errorf("integer: corrector model %d: %w", i, err)
			}
			c.mCorrector[i] = m
		}
	}

	for _, m := range c.mBits {
		if err := m.Init(nil); err != nil {
			return err
		}
	}
	c.corrector0.Init()
	for i := uint32(1); i < uint32(len(c.mCorrector)); i++ {
		if c.mCorrector[i] == nil {
			continue
		}
		if err := c.mCorrector[i].Init(nil); err != nil {
			return err
		}
	}

	return nil
}

// Decompress decodes one signed integer using pred as its predictor and
// context as the per-context k-model index.
func (c *Compressor) Decompress(pred int32, context uint32) (int32, error) {
	if c.mBits == nil {
		return 0, ErrNotInitialized
	}

	k, err := c.decoder.DecodeSymbol(c.mBits[context])
	if err != nil {
		return 0, err
	}
	c.k = k

	corr, err := c.readCorrector(k)
	if err != nil {
		return 0, err
	}

	real := pred + corr
	switch {
	case real < 0:
		real += int32(c.corrRange)
	case real >= int32(c.corrRange):
		real -= int32(c.corrRange)
	}

	return real, nil
}

func (c *Compressor) readCorrector(k uint32) (int32, error) {
	if k == 0 {
		bit, err := c.decoder.DecodeBit(c.corrector0)
		if err != nil {
			return 0, err
		}
		return int32(bit), nil
	}

	if k >= 32 {
		c.Logger.Trace().Str("compressor_id", c.ID.String()).Uint32("k", k).Msg("integer corrector overflow escape")
		return c.corrMin, nil
	}

	sym, err := c.decoder.DecodeSymbol(c.mCorrector[k])
	if err != nil {
		return 0, err
	}
	corr := sym

	if k > c.bitsHigh {
		k1 := k - c.bitsHigh
		raw, err := c.decoder.ReadBits(uint(k1))
		if err != nil {
			return 0, err
		}
		corr = (corr << k1) | raw
	}

	var signed int32
	if corr >= (1 << (k - 1)) {
		signed = int32(corr) + 1
	} else {
		signed = int32(corr) - int32((uint32(1)<<k)-1)
	}

	return signed, nil
}
