package rangecoding

import "testing"

func TestBitModelInitialState(t *testing.T) {
	m := NewBitModel()
	if m.bit0Count != 1 || m.bitCount != 2 {
		t.Fatalf("bit0Count=%d bitCount=%d, want 1,2", m.bit0Count, m.bitCount)
	}
	if m.bit0Prob != 1<<12 {
		t.Fatalf("bit0Prob = %d, want %d", m.bit0Prob, 1<<12)
	}
}

func TestBitModelProbBoundHoldsAcrossUpdates(t *testing.T) {
	m := NewBitModel()
	for i := 0; i < 1000; i++ {
		// Alternate outcomes by hand to drive update() repeatedly without
		// a decoder: decrement bitsUntilUpdate the way DecodeBit does.
		if i%3 == 0 {
			m.bit0Count++
		}
		m.bitsUntilUpdate--
		if m.bitsUntilUpdate == 0 {
			m.update()
			// bitCount only absorbs the bits counted since the last rescale
			// inside update(), so the strict inequality is checked here.
			if m.bit0Count >= m.bitCount {
				t.Fatalf("iteration %d: bit0Count %d >= bitCount %d", i, m.bit0Count, m.bitCount)
			}
		}
		if m.bit0Prob == 0 || m.bit0Prob >= 1<<BMLengthShift {
			t.Fatalf("iteration %d: bit0Prob = %d out of (0, 2^13)", i, m.bit0Prob)
		}
		if m.bitCount >= 2*(1<<BMLengthShift) {
			t.Fatalf("iteration %d: bitCount %d >= 2*2^13", i, m.bitCount)
		}
	}
}

func TestBitModelInitIsIdempotent(t *testing.T) {
	m := NewBitModel()
	m.bit0Count = 7
	m.bitCount = 9
	m.Init()
	snapshot := *m
	m.Init()
	if *m != snapshot {
		t.Fatalf("Init is not idempotent: %+v vs %+v", *m, snapshot)
	}
}
