package lazpy

import (
	"bytes"
	"testing"
)

func TestSliceByteSourceReadsSequentially(t *testing.T) {
	s := NewSliceByteSource([]byte{0xAA, 0xBB, 0xCC, 0xDD})
	first, err := s.ReadExact(2)
	if err != nil {
		t.Fatalf("ReadExact(2): %v", err)
	}
	if !bytes.Equal(first, []byte{0xAA, 0xBB}) {
		t.Fatalf("first = % x, want AA BB", first)
	}
	second, err := s.ReadExact(2)
	if err != nil {
		t.Fatalf("ReadExact(2): %v", err)
	}
	if !bytes.Equal(second, []byte{0xCC, 0xDD}) {
		t.Fatalf("second = % x, want CC DD", second)
	}
}

func TestSliceByteSourceShortReadErrors(t *testing.T) {
	s := NewSliceByteSource([]byte{0x01})
	if _, err := s.ReadExact(2); err == nil {
		t.Fatal("expected error reading past the end of the slice")
	}
}

func TestReaderByteSourceReadsSequentially(t *testing.T) {
	s := NewReaderByteSource(bytes.NewReader([]byte{1, 2, 3, 4, 5}))
	got, err := s.ReadExact(3)
	if err != nil {
		t.Fatalf("ReadExact(3): %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("got = % x, want 01 02 03", got)
	}
}

func TestReaderByteSourceShortReadErrors(t *testing.T) {
	s := NewReaderByteSource(bytes.NewReader([]byte{1, 2}))
	if _, err := s.ReadExact(3); err == nil {
		t.Fatal("expected error reading past the end of the reader")
	}
}
