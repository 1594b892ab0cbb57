package rangecoding

// BitModel is an adaptive two-outcome probability estimator. It tracks how
// often the decoded bit has been 0 versus 1 and rescales periodically so
// that the probability estimate tracks recent history without overflowing.
//
// A BitModel is mutated by every decode against it; it has no notion of
// which RangeDecoder it belongs to and can be reused across decodes against
// the same decoder only (per §5, models are exclusively owned by the
// decoding path that uses them).
type BitModel struct {
	bit0Prob        uint32 // scaled probability of a 0 bit, in [0, 2^13]
	bit0Count       uint32
	bitCount        uint32
	updateCycle     uint32
	bitsUntilUpdate uint32
}

// NewBitModel returns a freshly initialized, equiprobable BitModel.
func NewBitModel() *BitModel {
	m := &BitModel{}
	m.Init()
	return m
}

// Init resets the model to its equiprobable starting state. Safe to call on
// an already-used model to restart it (IntegerCompressor.InitDecompressor
// relies on this being idempotent).
func (m *BitModel) Init() {
	m.bit0Count = 1
	m.bitCount = 2
	m.bit0Prob = 1 << (BMLengthShift - 1)
	m.updateCycle = 4
	m.bitsUntilUpdate = 4
}

// update rescales the model's probability estimate. Called by the decoder
// once bitsUntilUpdate reaches zero.
func (m *BitModel) update() {
	m.bitCount += m.updateCycle
	if m.bitCount >= (1 << BMLengthShift) {
		m.bitCount = (m.bitCount + 1) >> 1
		m.bit0Count = (m.bit0Count + 1) >> 1
		if m.bitCount == m.bit0Count {
			m.bitCount++
		}
	}

	// scale is a Q31 reciprocal of bitCount; the >>18 truncates the
	// product back down to a BMLengthShift-bit (13-bit) probability.
	scale := uint32(1<<31) / m.bitCount
	m.bit0Prob = (m.bit0Count * scale) >> 18

	m.updateCycle = (5 * m.updateCycle) >> 2
	if m.updateCycle > 64 {
		m.updateCycle = 64
	}
	m.bitsUntilUpdate = m.updateCycle
}
