package renderer

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/trytobebee/snake_classic/pkg/game"
)

// TcellRenderer draws the board on a tcell screen, two columns per cell,
// using the same layout as TerminalRenderer
type TcellRenderer struct {
	screen tcell.Screen
	board  game.Board
	grid   *tcell.Color
}

// NewTcellRenderer wraps an initialised screen
func NewTcellRenderer(screen tcell.Screen, board game.Board) *TcellRenderer {
	r := &TcellRenderer{screen: screen, board: board}
	r.drawText(0, titleRow-1, titleText, tcell.StyleDefault)
	return r
}

// TcellColor converts an RGBA color for tcell
func TcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// FillCell paints a cell in col
func (r *TcellRenderer) FillCell(c game.Cell, col color.RGBA) {
	r.setCell(c, ' ', tcell.StyleDefault.Background(TcellColor(col)))
}

// ClearCell restores a cell to the board color, keeping the grid mark if enabled
func (r *TcellRenderer) ClearCell(c game.Cell, board color.RGBA) {
	style := tcell.StyleDefault.Background(TcellColor(board))
	if r.grid != nil {
		r.setCell(c, '·', style.Foreground(*r.grid))
		return
	}
	r.setCell(c, ' ', style)
}

// DrawGrid turns on grid marks; they appear on every cleared cell
func (r *TcellRenderer) DrawGrid(grid color.RGBA) {
	g := TcellColor(grid)
	r.grid = &g
}

// Notify writes a message under the board
func (r *TcellRenderer) Notify(msg string) {
	y := boardRow - 1 + r.board.Rows + 1
	w, _ := r.screen.Size()
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
	r.drawText(2, y, msg, tcell.StyleDefault.Bold(true))
}

// Present shows the pending changes
func (r *TcellRenderer) Present() error {
	r.screen.Show()
	return nil
}

// Origin returns the screen position of a cell's left column
func (r *TcellRenderer) Origin(c game.Cell) (x, y int) {
	return c.Col * cellChars, boardRow - 1 + c.Row
}

func (r *TcellRenderer) setCell(c game.Cell, glyph rune, style tcell.Style) {
	if !r.board.Contains(c) {
		return
	}
	x, y := r.Origin(c)
	r.screen.SetContent(x, y, glyph, nil, style)
	r.screen.SetContent(x+1, y, ' ', nil, style)
}

func (r *TcellRenderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
