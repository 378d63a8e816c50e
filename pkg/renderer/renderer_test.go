package renderer

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/trytobebee/snake_classic/pkg/game"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func TestTerminalBuffersUntilPresent(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, game.Board{Rows: 5, Cols: 5})

	r.FillCell(game.Cell{Row: 0, Col: 0}, blue)
	if out.Len() != 0 {
		t.Fatalf("nothing should be written before Present, got %q", out.String())
	}
	if err := r.Present(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "\033[3;1H\033[48;2;0;0;255m  ") {
		t.Errorf("missing fill for (0,0): %q", got)
	}

	out.Reset()
	r.FillCell(game.Cell{Row: 2, Col: 3}, blue)
	r.Present()
	if !strings.Contains(out.String(), "\033[5;7H") {
		t.Errorf("expected cursor at line 5 column 7, got %q", out.String())
	}
}

func TestTerminalIgnoresOutsideCells(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, game.Board{Rows: 5, Cols: 5})
	r.FillCell(game.Cell{Row: 5, Col: 0}, blue)
	r.ClearCell(game.Cell{Row: 0, Col: -1}, white)
	r.Present()
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestTerminalGridMarksClearedCells(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, game.Board{Rows: 5, Cols: 5})

	r.ClearCell(game.Cell{Row: 1, Col: 1}, white)
	r.Present()
	if strings.Contains(out.String(), charGrid) {
		t.Fatal("grid mark drawn while grid is off")
	}

	out.Reset()
	r.DrawGrid(black)
	r.ClearCell(game.Cell{Row: 1, Col: 1}, white)
	r.Present()
	if !strings.Contains(out.String(), "\033[38;2;0;0;0m"+charGrid) {
		t.Errorf("expected grid mark in black, got %q", out.String())
	}
}

func TestTerminalNotify(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, game.Board{Rows: 5, Cols: 5})
	r.Notify("YOU ARE DEAD!")
	r.Present()
	if !strings.Contains(out.String(), "\033[9;1H") || !strings.Contains(out.String(), "YOU ARE DEAD!") {
		t.Errorf("unexpected notice output %q", out.String())
	}
}

func TestCanvas(t *testing.T) {
	board := game.Board{Rows: 3, Cols: 4}
	c := NewCanvas(board, white)

	c.FillCell(game.Cell{Row: 1, Col: 2}, blue)
	c.FillCell(game.Cell{Row: 7, Col: 7}, blue)
	c.Notify("hello")

	f := c.Snapshot()
	if f.At(game.Cell{Row: 1, Col: 2}) != blue {
		t.Errorf("expected blue at (1,2)")
	}
	if f.At(game.Cell{Row: 0, Col: 0}) != white {
		t.Errorf("expected white background")
	}
	if f.Banner != "hello" || f.Grid != nil {
		t.Errorf("unexpected frame %+v", f)
	}

	c.ClearCell(game.Cell{Row: 1, Col: 2}, white)
	c.DrawGrid(black)
	g := c.Snapshot()
	if g.At(game.Cell{Row: 1, Col: 2}) != white {
		t.Error("cell not cleared")
	}
	if g.Grid == nil || *g.Grid != black {
		t.Error("grid not enabled")
	}
	if g.Version <= f.Version {
		t.Error("version must advance on change")
	}
	// Snapshots are copies
	if f.At(game.Cell{Row: 1, Col: 2}) != blue {
		t.Error("old snapshot was mutated")
	}
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func TestTcellRenderer(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTcellRenderer(screen, game.Board{Rows: 5, Cols: 5})

	cell := game.Cell{Row: 2, Col: 3}
	r.FillCell(cell, blue)
	if err := r.Present(); err != nil {
		t.Fatal(err)
	}

	x, y := r.Origin(cell)
	if x != 6 || y != 4 {
		t.Fatalf("unexpected origin %d,%d", x, y)
	}
	want := tcell.StyleDefault.Background(TcellColor(blue))
	for dx := 0; dx < cellChars; dx++ {
		mainc, _, style, _ := screen.GetContent(x+dx, y)
		if mainc != ' ' || style != want {
			t.Errorf("column %d: got %q %v, want blank in blue", x+dx, mainc, style)
		}
	}

	r.DrawGrid(black)
	r.ClearCell(cell, white)
	mainc, _, style, _ := screen.GetContent(x, y)
	wantGrid := tcell.StyleDefault.Background(TcellColor(white)).Foreground(TcellColor(black))
	if mainc != '·' || style != wantGrid {
		t.Errorf("got %q %v, want grid mark", mainc, style)
	}
}

func TestTcellNotify(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTcellRenderer(screen, game.Board{Rows: 5, Cols: 5})
	r.Notify("Already started!")
	r.Present()

	var line strings.Builder
	for x := 2; x < 2+len("Already started!"); x++ {
		mainc, _, _, _ := screen.GetContent(x, 8)
		line.WriteRune(mainc)
	}
	if line.String() != "Already started!" {
		t.Errorf("unexpected notice %q", line.String())
	}
}
