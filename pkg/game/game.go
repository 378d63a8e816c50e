package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBoard     = errors.New("invalid board")
	ErrInvalidBody      = errors.New("invalid body")
	ErrInvalidPrize     = errors.New("invalid prize")
	ErrInvalidPercent   = errors.New("spawn percent out of range")
	ErrInvalidDirection = errors.New("invalid direction")
)

// Rand is the random source used for prize placement
type Rand interface {
	Intn(n int) int
}

// Options configures a new game
type Options struct {
	Board        Board
	Body         []Cell // tail first, head last
	Heading      Direction
	SpawnPercent int    // chance per tick, 0..100
	Prizes       []Cell // prizes already on the board
	Rand         Rand   // nil disables spawning
}

// State is the whole game: body, heading, prizes and liveness.
// It is not safe for concurrent use; a session drives it from one goroutine.
type State struct {
	board        Board
	body         Body
	direction    Direction
	prizes       PrizeSet
	status       Status
	spawnPercent int
	rng          Rand
	nextPrizeID  uint64
}

// NewState validates opts and builds a running game
func NewState(opts Options) (*State, error) {
	if opts.Board.Rows <= 0 || opts.Board.Cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoard, opts.Board.Rows, opts.Board.Cols)
	}
	if !opts.Heading.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(opts.Heading))
	}
	if opts.SpawnPercent < 0 || opts.SpawnPercent > 100 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPercent, opts.SpawnPercent)
	}
	if err := validateBody(opts.Board, opts.Body); err != nil {
		return nil, err
	}

	s := &State{
		board:        opts.Board,
		body:         Body(opts.Body).Clone(),
		direction:    opts.Heading,
		status:       Running,
		spawnPercent: opts.SpawnPercent,
		rng:          opts.Rand,
	}

	for _, c := range opts.Prizes {
		if !s.board.Contains(c) || s.body.Contains(c) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPrize, c)
		}
		if !s.prizes.Add(s.newPrize(c)) {
			return nil, fmt.Errorf("%w: duplicate %v", ErrInvalidPrize, c)
		}
	}
	return s, nil
}

func validateBody(board Board, body []Cell) error {
	if len(body) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidBody)
	}
	for i, c := range body {
		if !board.Contains(c) {
			return fmt.Errorf("%w: %v outside board", ErrInvalidBody, c)
		}
		if Body(body[:i]).Contains(c) {
			return fmt.Errorf("%w: %v repeated", ErrInvalidBody, c)
		}
		if i > 0 && !body[i-1].adjacent(c) {
			return fmt.Errorf("%w: %v not adjacent to %v", ErrInvalidBody, c, body[i-1])
		}
	}
	return nil
}

// Tick advances one step in the held direction, possibly spawning a prize
func (s *State) Tick() Delta {
	return s.step(s.direction, true)
}

// MoveTo steps immediately in dir. It does not wait for the timer, so a key
// press and the next tick can move the snake twice within one period.
// Prizes are consumed but never spawned here. Key moves eat as well as ticks,
// otherwise a key move onto a prize would leave it under the body.
func (s *State) MoveTo(dir Direction) Delta {
	return s.step(dir, false)
}

func (s *State) step(dir Direction, spawn bool) Delta {
	if s.status == Dead || !dir.Valid() {
		return Delta{Outcome: Ignored, Direction: dir, Head: s.body.Head()}
	}

	head := s.body.Head()
	newHead := head.Add(dir.Delta())

	// Opposite headings are not filtered; reversing runs into the neck.
	if !s.board.Contains(newHead) || s.body.Contains(newHead) {
		s.status = Dead
		return Delta{Outcome: Collided, Direction: dir, Head: head, Crash: &newHead}
	}

	s.body = append(s.body, newHead)
	tail := s.body[0]
	s.body = s.body[1:]
	s.direction = dir

	d := Delta{Outcome: Moved, Direction: dir, Head: newHead, Drawn: []Cell{newHead}}

	growing := s.prizes.At(newHead)
	if spawn {
		if p, ok := s.trySpawn(tail, growing); ok {
			d.Spawned = []Prize{p}
		}
	}

	if p, ok := s.prizes.Take(newHead); ok {
		// Put the vacated tail back: net length +1.
		s.body = append(Body{tail}, s.body...)
		d.Outcome = Grew
		d.Eaten = &p
	} else {
		d.Cleared = []Cell{tail}
	}
	return d
}

// trySpawn makes one placement attempt; a cell that is taken is skipped, not retried.
func (s *State) trySpawn(vacated Cell, growing bool) (Prize, bool) {
	if s.rng == nil {
		return Prize{}, false
	}
	if s.rng.Intn(100) >= s.spawnPercent {
		return Prize{}, false
	}
	c := Cell{Row: s.rng.Intn(s.board.Rows), Col: s.rng.Intn(s.board.Cols)}
	if s.body.Contains(c) || s.prizes.At(c) || (growing && c == vacated) {
		return Prize{}, false
	}
	p := s.newPrize(c)
	s.prizes.Add(p)
	return p, true
}

func (s *State) newPrize(c Cell) Prize {
	s.nextPrizeID++
	return Prize{ID: s.nextPrizeID, Cell: c}
}

// Board returns the board dimensions
func (s *State) Board() Board {
	return s.board
}

// Body returns a copy of the snake, tail first
func (s *State) Body() Body {
	return s.body.Clone()
}

// Head returns the head cell
func (s *State) Head() Cell {
	return s.body.Head()
}

// Len returns the snake length
func (s *State) Len() int {
	return len(s.body)
}

// Direction returns the held heading
func (s *State) Direction() Direction {
	return s.direction
}

// Prizes returns the prizes on the board
func (s *State) Prizes() []Prize {
	return s.prizes.List()
}

// Status returns Running or Dead
func (s *State) Status() Status {
	return s.status
}

// Alive reports whether the game is still running
func (s *State) Alive() bool {
	return s.status == Running
}
