package median

import (
	"sort"
	"testing"
)

// trueMedian computes the median of the last 5 values of the padded
// sequence [0,0,0,0, seq...], matching the zero-padding convention §8
// specifies for the first four insertions.
func trueMedian(seq []int32) int32 {
	padded := append([]int32{0, 0, 0, 0}, seq...)
	window := padded[len(padded)-5:]
	sorted := append([]int32(nil), window...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[2]
}

func TestStreaming5MatchesTrueMedian(t *testing.T) {
	sequences := [][]int32{
		{10},
		{10, 20},
		{10, 20, 30},
		{10, 20, 30, 5, 1},
		{5, 4, 3, 2, 1},
		{-5, -4, -3, -2, -1},
		{0, 0, 0, 0, 0, 0, 0},
		{100, -100, 50, -50, 0, 25, -25, 10, -10},
		{7, 7, 7, 7, 7, 7, 7, 7},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
	}

	for _, seq := range sequences {
		m := New()
		for i, v := range seq {
			m.Add(v)
			want := trueMedian(seq[:i+1])
			if got := m.Get(); got != want {
				t.Fatalf("sequence %v after %d inserts: Get() = %d, want %d", seq, i+1, got, want)
			}
		}
	}
}

func TestStreaming5InitialStateIsZero(t *testing.T) {
	m := New()
	if m.Get() != 0 {
		t.Fatalf("fresh Streaming5.Get() = %d, want 0", m.Get())
	}
}
