package model

// Sequence is the part of a List the compactor needs.
type Sequence interface {
	Len() int
	Get(i int) (any, error)
	RemoveAt(i int) error
}

// RemoveCompleted deletes every checked row from s in a single forward pass
// and returns how many it removed. Survivors keep their relative order and
// rows that do not decode are left in place.
//
// The loop bound is the length before the pass. Each removal shifts later
// rows left by one, so original index i lives at i-removed.
func RemoveCompleted(s Sequence) int {
	n := s.Len()
	removed := 0
	for i := 0; i < n; i++ {
		at := i - removed
		row, err := s.Get(at)
		if err != nil {
			panic("model: compaction read out of range: " + err.Error())
		}
		it, ok := TryDecode(row)
		if !ok || !it.Checked {
			continue
		}
		if err := s.RemoveAt(at); err != nil {
			panic("model: compaction remove out of range: " + err.Error())
		}
		removed++
	}
	return removed
}
