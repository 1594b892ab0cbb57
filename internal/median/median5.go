// Package median implements a fixed-size streaming median over the last
// five inserted values, used by the point10 decompressor as a predictor
// for per-return coordinate deltas.
package median

// Streaming5 keeps five values in ascending order and returns the middle
// element as the running median. Each Add places the new value with a
// fixed partial-sort decision tree and discards the largest stored value
// while the high bias is set, the smallest otherwise, so the five values
// are not in general the five most recently inserted ones. It is not safe
// for concurrent use.
type Streaming5 struct {
	values [5]int32
	high   bool
}

// New returns a Streaming5 zero-initialized and biased toward inserting
// into the high half first, matching the reference implementation's
// initial state.
func New() *Streaming5 {
	return &Streaming5{high: true}
}

// Add inserts v, shifting the sorted window per the reference decision
// tree and flipping the high/low bias every time v enters from the
// opposite half it last favored.
func (s *Streaming5) Add(v int32) {
	if s.high {
		if v < s.values[2] {
			s.values[4] = s.values[3]
			s.values[3] = s.values[2]
			switch {
			case v < s.values[0]:
				s.values[2] = s.values[1]
				s.values[1] = s.values[0]
				s.values[0] = v
			case v < s.values[1]:
				s.values[2] = s.values[1]
				s.values[1] = v
			default:
				s.values[2] = v
			}
		} else {
			if v < s.values[3] {
				s.values[4] = s.values[3]
				s.values[3] = v
			} else {
				s.values[4] = v
			}
			s.high = false
		}
	} else {
		if s.values[2] < v {
			s.values[0] = s.values[1]
			s.values[1] = s.values[2]
			switch {
			case s.values[4] < v:
				s.values[2] = s.values[3]
				s.values[3] = s.values[4]
				s.values[4] = v
			case s.values[3] < v:
				s.values[2] = s.values[3]
				s.values[3] = v
			default:
				s.values[2] = v
			}
		} else {
			if s.values[1] < v {
				s.values[0] = s.values[1]
				s.values[1] = v
			} else {
				s.values[0] = v
			}
			s.high = true
		}
	}
}

// Get returns the current median (the middle element of the sorted
// window).
func (s *Streaming5) Get() int32 {
	return s.values[2]
}
