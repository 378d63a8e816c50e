package game

// Body is the ordered list of cells occupied by the snake.
// Index 0 is the tail, the last element is the head.
type Body []Cell

// Head returns the most recently added cell
func (b Body) Head() Cell {
	return b[len(b)-1]
}

// Tail returns the oldest cell
func (b Body) Tail() Cell {
	return b[0]
}

// Contains scans the body for the cell
func (b Body) Contains(c Cell) bool {
	for _, s := range b {
		if s == c {
			return true
		}
	}
	return false
}

// Clone returns an independent copy
func (b Body) Clone() Body {
	out := make(Body, len(b))
	copy(out, b)
	return out
}
