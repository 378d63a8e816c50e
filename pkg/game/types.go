package game

import "fmt"

// Cell represents a position on the board
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns the cell shifted by delta
func (c Cell) Add(delta Cell) Cell {
	return Cell{Row: c.Row + delta.Row, Col: c.Col + delta.Col}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// adjacent reports whether two cells are one orthogonal step apart
func (c Cell) adjacent(o Cell) bool {
	dr, dc := c.Row-o.Row, c.Col-o.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Board is the fixed playing field, rows x cols cells
type Board struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Contains reports whether the cell lies inside [0,Rows) x [0,Cols)
func (b Board) Contains(c Cell) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < b.Rows && c.Col < b.Cols
}

// Prize is a consumable item; ID gives every spawned prize its own identity
type Prize struct {
	ID   uint64 `json:"id"`
	Cell Cell   `json:"cell"`
}

// Status of a game
type Status int

const (
	Running Status = iota
	Dead
)

func (s Status) String() string {
	if s == Dead {
		return "dead"
	}
	return "running"
}

// Outcome describes what a single step did to the state
type Outcome int

const (
	Moved    Outcome = iota // head advanced, tail vacated
	Grew                    // head advanced onto a prize, tail kept
	Collided                // wall or body hit, state is now Dead
	Ignored                 // game already over or direction invalid, nothing changed
)

var outcomeNames = [...]string{"moved", "grew", "collided", "ignored"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// MarshalText lets outcomes appear by name in step records
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses an outcome name
func (o *Outcome) UnmarshalText(b []byte) error {
	for i, name := range outcomeNames {
		if name == string(b) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", string(b))
}

// Delta holds the visual changes produced by one step
type Delta struct {
	Outcome   Outcome   `json:"outcome"`
	Direction Direction `json:"direction"`
	Head      Cell      `json:"head"`
	Cleared   []Cell    `json:"cleared,omitempty"` // vacated tail, empty when growing
	Drawn     []Cell    `json:"drawn,omitempty"`   // new head
	Spawned   []Prize   `json:"spawned,omitempty"`
	Eaten     *Prize    `json:"eaten,omitempty"`
	Crash     *Cell     `json:"crash,omitempty"` // cell the head tried to enter
}

// Terminal reports whether the step ended the game
func (d Delta) Terminal() bool {
	return d.Outcome == Collided
}
