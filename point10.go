package lazpy

import (
	"encoding/binary"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/bmander/lazpy/internal/integer"
	"github.com/bmander/lazpy/internal/median"
	"github.com/bmander/lazpy/internal/rangecoding"
)

// Point10 is the 20-byte LAS point record format 1.0.
type Point10 struct {
	X, Y, Z        int32
	Intensity      uint16
	BitByte        uint8
	Classification uint8
	ScanAngleRank  int8
	UserData       uint8
	PointSourceID  uint16
}

// ReturnNumber is the 3-bit return-number field packed into BitByte.
func (p Point10) ReturnNumber() uint8 { return p.BitByte & 0x07 }

// NumberOfReturns is the 3-bit number-of-returns field packed into
// BitByte.
func (p Point10) NumberOfReturns() uint8 { return (p.BitByte >> 3) & 0x07 }

// ScanDirectionFlag is the 1-bit scan-direction field packed into
// BitByte.
func (p Point10) ScanDirectionFlag() uint8 { return (p.BitByte >> 6) & 0x01 }

// EdgeOfFlightLine is the 1-bit edge-of-flight-line field packed into
// BitByte.
func (p Point10) EdgeOfFlightLine() uint8 { return (p.BitByte >> 7) & 0x01 }

// marshal writes p into a 20-byte record in the on-wire little-endian
// layout.
func (p Point10) marshal() [20]byte {
	var b [20]byte
	binary.LittleEndian.PutUint32(b[0:4], uint32(p.X))
	binary.LittleEndian.PutUint32(b[4:8], uint32(p.Y))
	binary.LittleEndian.PutUint32(b[8:12], uint32(p.Z))
	binary.LittleEndian.PutUint16(b[12:14], p.Intensity)
	b[14] = p.BitByte
	b[15] = p.Classification
	b[16] = byte(p.ScanAngleRank)
	b[17] = p.UserData
	binary.LittleEndian.PutUint16(b[18:20], p.PointSourceID)
	return b
}

// unmarshalPoint10 parses a 20-byte on-wire record.
func unmarshalPoint10(b []byte) (Point10, error) {
	if len(b) != 20 {
		return Point10{}, ErrShortRecord
	}
	return Point10{
		X:              int32(binary.LittleEndian.Uint32(b[0:4])),
		Y:              int32(binary.LittleEndian.Uint32(b[4:8])),
		Z:              int32(binary.LittleEndian.Uint32(b[8:12])),
		Intensity:      binary.LittleEndian.Uint16(b[12:14]),
		BitByte:        b[14],
		Classification: b[15],
		ScanAngleRank:  int8(b[16]),
		UserData:       b[17],
		PointSourceID:  binary.LittleEndian.Uint16(b[18:20]),
	}, nil
}

// numberReturnMap and numberReturnLevel are fixed lookup tables, indexed
// [number_of_returns][return_number], that fold the 64 possible
// (n, r) combinations down into the context and history-slot indices the
// rest of the decompressor uses. Reproduced verbatim from the reference
// encoder.
var numberReturnMap = [8][8]uint8{
	{15, 14, 13, 12, 11, 10, 9, 8},
	{14, 0, 1, 3, 6, 10, 10, 9},
	{13, 1, 2, 4, 7, 11, 11, 10},
	{12, 3, 4, 5, 8, 12, 12, 11},
	{11, 6, 7, 8, 9, 13, 13, 12},
	{10, 10, 11, 12, 13, 14, 14, 13},
	{9, 10, 11, 12, 13, 14, 15, 14},
	{8, 9, 10, 11, 12, 13, 14, 15},
}

var numberReturnLevel = [8][8]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7},
	{1, 0, 1, 2, 3, 4, 5, 6},
	{2, 1, 0, 1, 2, 3, 4, 5},
	{3, 2, 1, 0, 1, 2, 3, 4},
	{4, 3, 2, 1, 0, 1, 2, 3},
	{5, 4, 3, 2, 1, 0, 1, 2},
	{6, 5, 4, 3, 2, 1, 0, 1},
	{7, 6, 5, 4, 3, 2, 1, 0},
}

// Bits of the 6-bit changed-values tag decoded at the start of every
// record, MSB to LSB.
const (
	changedPointSourceID  = 1 << 5
	changedScanAngleRank  = 1 << 4
	changedUserData       = 1 << 3
	changedIntensity      = 1 << 2
	changedClassification = 1 << 1
	changedBitByte        = 1 << 0
)

// Point10Decompressor is the point10 record state machine: a small rolling
// history of the last decoded point, per-return streaming medians used as
// coordinate-delta predictors, and the models and integer compressors that
// decode each field. It owns every model and compressor it constructs and
// is not safe for concurrent use.
type Point10Decompressor struct {
	decoder *rangecoding.RangeDecoder

	mChangedValues  *rangecoding.SymbolModel
	icIntensity     *integer.Compressor
	mScanRank       [2]*rangecoding.SymbolModel
	icPointSourceID *integer.Compressor

	mBitByte        [256]*rangecoding.SymbolModel
	mClassification [256]*rangecoding.SymbolModel
	mUserData       [256]*rangecoding.SymbolModel

	icDX *integer.Compressor
	icDY *integer.Compressor
	icZ  *integer.Compressor

	lastXDiffMedian5 [16]*median.Streaming5
	lastYDiffMedian5 [16]*median.Streaming5

	lastIntensity [16]uint16
	lastHeight    [8]int32

	lastItem Point10
	seeded   bool

	// ID is a per-instance identifier attached to trace logs, so a test
	// harness or batch job decoding many chunks concurrently can tell
	// their log lines apart (§5: two decoders never share a source, but a
	// process may run many decoders over many sources).
	ID uuid.UUID

	Logger zerolog.Logger
}

// Option configures a Point10Decompressor at construction time.
type Option func(*Point10Decompressor)

// WithLogger attaches a structured logger for Trace-level diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Point10Decompressor) { p.Logger = logger }
}

// NewPoint10Decompressor constructs a decompressor bound to decoder. The
// decoder must already have been started (RangeDecoder.Start) against the
// chunk's byte source before ReadFirst is called.
func NewPoint10Decompressor(decoder *rangecoding.RangeDecoder, opts ...Option) *Point10Decompressor {
	p := &Point10Decompressor{
		decoder: decoder,
		ID:      uuid.New(),
		Logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.icIntensity = integer.New(decoder, integer.WithBits(16), integer.WithContexts(4))
	p.icPointSourceID = integer.New(decoder, integer.WithBits(16), integer.WithContexts(1))
	p.icDX = integer.New(decoder, integer.WithBits(32), integer.WithContexts(2))
	p.icDY = integer.New(decoder, integer.WithBits(32), integer.WithContexts(22))
	p.icZ = integer.New(decoder, integer.WithBits(32), integer.WithContexts(20))

	for i := range p.lastXDiffMedian5 {
		p.lastXDiffMedian5[i] = median.New()
		p.lastYDiffMedian5[i] = median.New()
	}

	return p
}

// reset (re)allocates and (re)initializes every model and compressor this
// decompressor owns. Each chunk in a LAZ file is independently decodable,
// so every model's adaptive state must start fresh at the first point of a
// chunk; reset is what ReadFirst calls to establish that.
func (p *Point10Decompressor) reset() error {
	m, err := rangecoding.NewSymbolModel(64)
	if err != nil {
		return err
	}
	if err := m.Init(nil); err != nil {
		return err
	}
	p.mChangedValues = m

	for i := range p.mScanRank {
		sm, err := rangecoding.NewSymbolModel(256)
		if err != nil {
			return err
		}
		if err := sm.Init(nil); err != nil {
			return err
		}
		p.mScanRank[i] = sm
	}

	for i := range p.mBitByte {
		p.mBitByte[i] = nil
		p.mClassification[i] = nil
		p.mUserData[i] = nil
	}

	if err := p.icIntensity.InitDecompressor(); err != nil {
		return err
	}
	if err := p.icPointSourceID.InitDecompressor(); err != nil {
		return err
	}
	if err := p.icDX.InitDecompressor(); err != nil {
		return err
	}
	if err := p.icDY.InitDecompressor(); err != nil {
		return err
	}
	if err := p.icZ.InitDecompressor(); err != nil {
		return err
	}

	for i := range p.lastXDiffMedian5 {
		p.lastXDiffMedian5[i] = median.New()
		p.lastYDiffMedian5[i] = median.New()
	}
	p.lastIntensity = [16]uint16{}
	p.lastHeight = [8]int32{}

	return nil
}

// ReadFirst establishes the seed record for a new chunk: it resets every
// model and compressor this decompressor owns, stores seed as the current
// decoded point, and returns it verbatim. seed must be exactly 20 bytes,
// the on-wire point10 layout described in the package doc comment.
func (p *Point10Decompressor) ReadFirst(seed []byte) (Point10, error) {
	pt, err := unmarshalPoint10(seed)
	if err != nil {
		return Point10{}, err
	}
	if err := p.reset(); err != nil {
		return Point10{}, err
	}
	p.lastItem = pt
	p.seeded = true

	return pt, nil
}

// bitByteModel returns the 256-symbol model for the given last-bit-byte
// value, lazily constructing and initializing it on first use.
func bitByteModel(table *[256]*rangecoding.SymbolModel, idx uint8) (*rangecoding.SymbolModel, error) {
	if table[idx] == nil {
		m, err := rangecoding.NewSymbolModel(256)
		if err != nil {
			return nil, err
		}
		if err := m.Init(nil); err != nil {
			return nil, err
		}
		table[idx] = m
	}
	return table[idx], nil
}

// Read decodes and returns the next point10 record, updating the rolling
// history the decompressor uses to predict the one after it. ReadFirst
// must have been called first to establish a chunk's seed record.
func (p *Point10Decompressor) Read() (Point10, error) {
	if !p.seeded {
		return Point10{}, ErrNotSeeded
	}

	changed, err := p.decoder.DecodeSymbol(p.mChangedValues)
	if err != nil {
		return Point10{}, err
	}

	item := p.lastItem

	if changed&changedBitByte != 0 {
		model, err := bitByteModel(&p.mBitByte, item.BitByte)
		if err != nil {
			return Point10{}, err
		}
		sym, err := p.decoder.DecodeSymbol(model)
		if err != nil {
			return Point10{}, err
		}
		item.BitByte = uint8(sym)
	}

	r, n := item.ReturnNumber(), item.NumberOfReturns()
	mCtx := uint32(numberReturnMap[n][r])
	lCtx := uint32(numberReturnLevel[n][r])

	if changed&changedIntensity != 0 {
		ctx := lo.Clamp(mCtx, 0, 3)
		intensity, err := p.icIntensity.Decompress(int32(p.lastIntensity[mCtx]), ctx)
		if err != nil {
			return Point10{}, err
		}
		item.Intensity = uint16(intensity)
		p.lastIntensity[mCtx] = item.Intensity
	} else {
		item.Intensity = p.lastIntensity[mCtx]
	}

	if changed&changedClassification != 0 {
		model, err := bitByteModel(&p.mClassification, item.Classification)
		if err != nil {
			return Point10{}, err
		}
		sym, err := p.decoder.DecodeSymbol(model)
		if err != nil {
			return Point10{}, err
		}
		item.Classification = uint8(sym)
	}

	if changed&changedScanAngleRank != 0 {
		sym, err := p.decoder.DecodeSymbol(p.mScanRank[item.ScanDirectionFlag()])
		if err != nil {
			return Point10{}, err
		}
		folded := (uint8(sym) + uint8(item.ScanAngleRank))
		item.ScanAngleRank = int8(folded)
	}

	if changed&changedUserData != 0 {
		model, err := bitByteModel(&p.mUserData, item.UserData)
		if err != nil {
			return Point10{}, err
		}
		sym, err := p.decoder.DecodeSymbol(model)
		if err != nil {
			return Point10{}, err
		}
		item.UserData = uint8(sym)
	}

	if changed&changedPointSourceID != 0 {
		id, err := p.icPointSourceID.Decompress(int32(item.PointSourceID), 0)
		if err != nil {
			return Point10{}, err
		}
		item.PointSourceID = uint16(id)
	}

	dxCtx := lo.Clamp(lCtx, 0, 1)
	predX := p.lastXDiffMedian5[mCtx].Get()
	diffX, err := p.icDX.Decompress(predX, dxCtx)
	if err != nil {
		return Point10{}, err
	}
	item.X = item.X + diffX
	p.lastXDiffMedian5[mCtx].Add(diffX)

	dyCtx := lCtx + lo.Ternary(p.icDX.K() >= 20, uint32(2), uint32(0))
	predY := p.lastYDiffMedian5[mCtx].Get()
	diffY, err := p.icDY.Decompress(predY, dyCtx)
	if err != nil {
		return Point10{}, err
	}
	item.Y = item.Y + diffY
	p.lastYDiffMedian5[mCtx].Add(diffY)

	z, err := p.icZ.Decompress(p.lastHeight[r], mCtx)
	if err != nil {
		return Point10{}, err
	}
	item.Z = z
	p.lastHeight[r] = z

	p.Logger.Trace().Str("decompressor_id", p.ID.String()).Uint32("changed", changed).Uint8("r", r).Uint8("n", n).Msg("point10 record decoded")

	p.lastItem = item
	return item, nil
}
