package renderer

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/trytobebee/snake_classic/pkg/game"
)

// Terminal layout: a title line, then the board, then one message line.
// Every board cell is two characters wide so cells look square.
const (
	titleRow   = 1
	boardRow   = 3
	cellChars  = 2
	charEmpty  = "  "
	charGrid   = "· "
	ansiReset  = "\033[0m"
	titleText  = "  SNAKE  |  arrows or WASD to steer, Q to quit"
	ansiHome   = "\033[H\033[2J\033[3J"
	ansiHide   = "\033[?25l"
	ansiShow   = "\033[?25h"
	ansiEraseL = "\033[2K"
)

// TerminalRenderer draws cells with ANSI cursor addressing and 24-bit colors.
// Writes are collected in a buffer and flushed by Present.
type TerminalRenderer struct {
	out    io.Writer
	board  game.Board
	buffer strings.Builder
	grid   *color.RGBA
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer(out io.Writer, board game.Board) *TerminalRenderer {
	r := &TerminalRenderer{out: out, board: board}
	// Pre-size the buffer for a full board repaint
	r.buffer.Grow(board.Rows * board.Cols * 32)
	return r
}

// Open clears the terminal, hides the cursor and prints the title
func (r *TerminalRenderer) Open() error {
	_, err := fmt.Fprintf(r.out, "%s%s\033[%d;1H%s", ansiHome, ansiHide, titleRow, titleText)
	return err
}

// Close restores the cursor below the board
func (r *TerminalRenderer) Close() error {
	_, err := fmt.Fprintf(r.out, "%s\033[%d;1H%s\n", ansiReset, r.messageRow()+1, ansiShow)
	return err
}

// FillCell paints a cell in col
func (r *TerminalRenderer) FillCell(c game.Cell, col color.RGBA) {
	r.writeCell(c, col, nil, charEmpty)
}

// ClearCell restores a cell to the board color, keeping the grid mark if enabled
func (r *TerminalRenderer) ClearCell(c game.Cell, board color.RGBA) {
	if r.grid != nil {
		r.writeCell(c, board, r.grid, charGrid)
		return
	}
	r.writeCell(c, board, nil, charEmpty)
}

// DrawGrid turns on grid marks; they appear on every cleared cell
func (r *TerminalRenderer) DrawGrid(grid color.RGBA) {
	r.grid = &grid
}

// Notify prints a message under the board
func (r *TerminalRenderer) Notify(msg string) {
	fmt.Fprintf(&r.buffer, "%s\033[%d;1H%s  %s", ansiReset, r.messageRow(), ansiEraseL, msg)
}

// Present flushes the buffered frame to the output
func (r *TerminalRenderer) Present() error {
	if r.buffer.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(r.out, r.buffer.String())
	r.buffer.Reset()
	return err
}

func (r *TerminalRenderer) writeCell(c game.Cell, bg color.RGBA, fg *color.RGBA, glyph string) {
	if !r.board.Contains(c) {
		return
	}
	fmt.Fprintf(&r.buffer, "\033[%d;%dH\033[48;2;%d;%d;%dm", boardRow+c.Row, 1+c.Col*cellChars, bg.R, bg.G, bg.B)
	if fg != nil {
		fmt.Fprintf(&r.buffer, "\033[38;2;%d;%d;%dm", fg.R, fg.G, fg.B)
	}
	r.buffer.WriteString(glyph)
	r.buffer.WriteString(ansiReset)
}

func (r *TerminalRenderer) messageRow() int {
	return boardRow + r.board.Rows + 1
}
