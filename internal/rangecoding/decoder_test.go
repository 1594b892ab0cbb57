package rangecoding

import "testing"

func TestDecodeBitEquiprobableStart(t *testing.T) {
	d := NewRangeDecoder()
	if err := d.Start(&sliceSource{buf: []byte{0x00, 0x00, 0x00, 0x00}}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	m := NewBitModel()
	sym, err := d.DecodeBit(m)
	if err != nil {
		t.Fatalf("DecodeBit: %v", err)
	}
	if sym != 0 {
		t.Fatalf("sym = %d, want 0", sym)
	}

	wantLength := uint32(1<<12) * (ACMaxLength >> BMLengthShift)
	if d.Length() != wantLength {
		t.Fatalf("length = %#x, want %#x", d.Length(), wantLength)
	}
	if d.Length() < ACMinLength {
		t.Fatalf("length %#x below AC_MIN_LENGTH", d.Length())
	}
}

func TestReadBitsRawByte(t *testing.T) {
	d := NewRangeDecoder()
	if err := d.Start(&sliceSource{buf: []byte{0xAB, 0xCD, 0xEF, 0x01, 0x23}}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	got, err := d.ReadBits(8)
	if err != nil {
		t.Fatalf("ReadBits: %v", err)
	}
	if got != 0xAB {
		t.Fatalf("ReadBits(8) = %#x, want 0xAB", got)
	}
}

func TestIntervalInvariantHoldsAcrossManyDecodes(t *testing.T) {
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte(i*2654435761 + 17)
	}

	d := NewRangeDecoder()
	if err := d.Start(&sliceSource{buf: buf}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	bm := NewBitModel()
	sm, err := NewSymbolModel(17)
	if err != nil {
		t.Fatalf("NewSymbolModel: %v", err)
	}
	if err := sm.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for i := 0; i < 200; i++ {
		var decodeErr error
		if i%2 == 0 {
			_, decodeErr = d.DecodeBit(bm)
		} else {
			_, decodeErr = d.DecodeSymbol(sm)
		}
		if decodeErr != nil {
			t.Fatalf("decode #%d: %v", i, decodeErr)
		}

		if d.Length() < ACMinLength {
			t.Fatalf("decode #%d: length %#x below AC_MIN_LENGTH", i, d.Length())
		}
		if d.Value() >= d.Length() {
			t.Fatalf("decode #%d: value %#x >= length %#x", i, d.Value(), d.Length())
		}
	}
}

func TestShortReadIsFatal(t *testing.T) {
	d := NewRangeDecoder()
	err := d.Start(&sliceSource{buf: []byte{0x00, 0x00}})
	if err == nil {
		t.Fatal("expected error starting from a 2-byte source, got nil")
	}
}

func TestReadBitsRejectsOutOfRangeWidth(t *testing.T) {
	d := NewRangeDecoder()
	if err := d.Start(&sliceSource{buf: []byte{0, 0, 0, 0, 0, 0, 0, 0}}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := d.ReadBits(33); err == nil {
		t.Fatal("expected error for width > 32")
	}
	if _, err := d.ReadBits(0); err == nil {
		t.Fatal("expected error for width 0")
	}
}
