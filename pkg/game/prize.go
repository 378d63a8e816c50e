package game

// PrizeSet holds the prizes on the board, at most one per cell.
// Lookups scan linearly; boards are small enough that a hashed index does not pay off.
type PrizeSet struct {
	items []Prize
}

// Len returns the number of prizes
func (s *PrizeSet) Len() int {
	return len(s.items)
}

// At reports whether a prize occupies the cell
func (s *PrizeSet) At(c Cell) bool {
	return s.index(c) >= 0
}

// Add places a prize; it returns false if the cell already holds one
func (s *PrizeSet) Add(p Prize) bool {
	if s.At(p.Cell) {
		return false
	}
	s.items = append(s.items, p)
	return true
}

// Take removes the first prize found at the cell
func (s *PrizeSet) Take(c Cell) (Prize, bool) {
	i := s.index(c)
	if i < 0 {
		return Prize{}, false
	}
	p := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return p, true
}

// List returns a copy of the prizes in spawn order
func (s *PrizeSet) List() []Prize {
	out := make([]Prize, len(s.items))
	copy(out, s.items)
	return out
}

func (s *PrizeSet) index(c Cell) int {
	for i, p := range s.items {
		if p.Cell == c {
			return i
		}
	}
	return -1
}
