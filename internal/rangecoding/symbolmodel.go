package rangecoding

import (
	"fmt"

	"github.com/samber/lo"
)

// minTableSymbols is the smallest alphabet size for which a decoder
// acceleration table is built (§3: "the table is built only when N > 16").
const minTableSymbols = 16

// SymbolModel is an adaptive N-outcome probability estimator (2 <= N <=
// 2048) with a cumulative distribution and, for large alphabets, a decoder
// lookup table that accelerates the bisection search in
// RangeDecoder.DecodeSymbol.
type SymbolModel struct {
	numSymbols         uint32
	lastSymbol         uint32
	tableShift         uint32
	tableSize          uint32
	totalCount         uint32
	updateCycle        uint32
	symbolsUntilUpdate uint32

	distribution []uint32
	symbolCount  []uint32
	decoderTable []uint32 // nil when tableSize == 0
}

// NewSymbolModel allocates a SymbolModel for an alphabet of numSymbols
// outcomes. Init must be called before the model is used.
func NewSymbolModel(numSymbols uint32) (*SymbolModel, error) {
	if numSymbols < 2 || numSymbols > 2048 {
		return nil, fmt.Errorf("%w: symbol model alphabet size %d outside [2, 2048]", ErrConfig, numSymbols)
	}

	m := &SymbolModel{
		numSymbols:   numSymbols,
		lastSymbol:   numSymbols - 1,
		distribution: make([]uint32, numSymbols),
		symbolCount:  make([]uint32, numSymbols),
	}

	if numSymbols > minTableSymbols {
		tableBits := uint32(3)
		for numSymbols > (1 << (tableBits + 2)) {
			tableBits++
		}
		m.tableShift = DMLengthShift - tableBits
		m.tableSize = 1 << tableBits
		m.decoderTable = make([]uint32, m.tableSize+2)
	}

	return m, nil
}

// Init (re)initializes the model, either to a uniform distribution (counts
// == nil) or from a caller-supplied frequency table of length numSymbols.
// Init is idempotent: calling it twice in a row leaves the model in the
// same state as calling it once.
func (m *SymbolModel) Init(counts []uint32) error {
	if counts != nil && uint32(len(counts)) != m.numSymbols {
		return fmt.Errorf("%w: symbol model expected %d initial counts, got %d", ErrConfig, m.numSymbols, len(counts))
	}

	m.symbolCount = lo.RepeatBy(int(m.numSymbols), func(i int) uint32 {
		if counts == nil {
			return 1
		}
		return counts[i]
	})

	// updateCycle must be seeded before the first update() call: update
	// folds it into totalCount, and a zero totalCount would make the
	// reciprocal-scale division in update undefined. It is seeded with
	// numSymbols, which for a uniform start makes totalCount the sum of the
	// counts. update() also grows updateCycle by 5/4 as a side effect (its
	// steady-state decode-time behavior), so it's set to the Init target
	// afterward.
	m.totalCount = 0
	m.updateCycle = m.numSymbols
	m.update()
	m.updateCycle = (m.numSymbols + 6) >> 1
	m.symbolsUntilUpdate = m.updateCycle
	return nil
}

// NumSymbols returns the alphabet size N.
func (m *SymbolModel) NumSymbols() uint32 { return m.numSymbols }

// HasTable reports whether this model built a decoder acceleration table.
func (m *SymbolModel) HasTable() bool { return m.decoderTable != nil }

func (m *SymbolModel) incrementSymbolCount(sym uint32) {
	m.symbolCount[sym]++
}

// update rescales symbolCount and rebuilds the cumulative distribution
// (and decoder table, if any) from scratch. Called by the decoder once
// symbolsUntilUpdate reaches zero, and once by Init.
func (m *SymbolModel) update() {
	m.totalCount += m.updateCycle
	if m.totalCount > (1 << 15) {
		total := uint32(0)
		for i := range m.symbolCount {
			m.symbolCount[i] = (m.symbolCount[i] + 1) >> 1
			total += m.symbolCount[i]
		}
		m.totalCount = total
	}

	scale := uint32(1<<31) / m.totalCount

	if m.decoderTable != nil {
		sum := uint32(0)
		s := uint32(0)
		for k := uint32(0); k < m.numSymbols; k++ {
			m.distribution[k] = (scale * sum) >> 16
			sum += m.symbolCount[k]

			w := m.distribution[k] >> m.tableShift
			for s < w {
				s++
				m.decoderTable[s] = k - 1
			}
		}
		m.decoderTable[0] = 0
		for s <= m.tableSize {
			s++
			m.decoderTable[s] = m.numSymbols - 1
		}
	} else {
		sum := uint32(0)
		for k := uint32(0); k < m.numSymbols; k++ {
			m.distribution[k] = (scale * sum) >> 16
			sum += m.symbolCount[k]
		}
	}

	m.updateCycle = (5 * m.updateCycle) >> 2
	if max := (m.numSymbols + 6) << 3; m.updateCycle > max {
		m.updateCycle = max
	}
	m.symbolsUntilUpdate = m.updateCycle
}
