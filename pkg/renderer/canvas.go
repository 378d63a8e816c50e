package renderer

import (
	"image/color"
	"sync"

	"github.com/trytobebee/snake_classic/pkg/game"
)

// Canvas is an in-memory color grid. The session paints into it from its own
// goroutine while a drawing loop (the window frontend) reads snapshots.
type Canvas struct {
	mu      sync.RWMutex
	board   game.Board
	cells   []color.RGBA
	grid    *color.RGBA
	banner  string
	version uint64
}

// Frame is a consistent copy of the canvas
type Frame struct {
	Board   game.Board
	Cells   []color.RGBA // row major
	Grid    *color.RGBA
	Banner  string
	Version uint64
}

// At returns the color of a cell in the frame
func (f Frame) At(c game.Cell) color.RGBA {
	if !f.Board.Contains(c) {
		return color.RGBA{}
	}
	return f.Cells[c.Row*f.Board.Cols+c.Col]
}

// NewCanvas creates a canvas filled with background
func NewCanvas(board game.Board, background color.RGBA) *Canvas {
	cells := make([]color.RGBA, board.Rows*board.Cols)
	for i := range cells {
		cells[i] = background
	}
	return &Canvas{board: board, cells: cells}
}

// FillCell paints a cell
func (c *Canvas) FillCell(cell game.Cell, col color.RGBA) {
	c.set(cell, col)
}

// ClearCell paints a cell with the board color
func (c *Canvas) ClearCell(cell game.Cell, board color.RGBA) {
	c.set(cell, board)
}

// DrawGrid enables grid lines in the given color
func (c *Canvas) DrawGrid(grid color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grid = &grid
	c.version++
}

// Notify sets the banner text
func (c *Canvas) Notify(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.banner = msg
	c.version++
}

// Present is a no-op; readers pick up changes through Snapshot
func (c *Canvas) Present() error {
	return nil
}

// Snapshot copies the current state
func (c *Canvas) Snapshot() Frame {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f := Frame{
		Board:   c.board,
		Cells:   make([]color.RGBA, len(c.cells)),
		Banner:  c.banner,
		Version: c.version,
	}
	copy(f.Cells, c.cells)
	if c.grid != nil {
		g := *c.grid
		f.Grid = &g
	}
	return f
}

func (c *Canvas) set(cell game.Cell, col color.RGBA) {
	if !c.board.Contains(cell) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cells[cell.Row*c.board.Cols+cell.Col] = col
	c.version++
}
