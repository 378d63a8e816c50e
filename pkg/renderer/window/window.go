// Package window shows a renderer.Canvas in a desktop window.
package window

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/trytobebee/snake_classic/pkg/config"
	"github.com/trytobebee/snake_classic/pkg/game"
	"github.com/trytobebee/snake_classic/pkg/renderer"
)

const title = "Snake"

var (
	bannerColor = color.RGBA{R: 0xff, A: 0xff}
	bannerFace  = text.NewGoXFace(basicfont.Face7x13)
)

// Window implements ebiten.Game on top of a canvas
type Window struct {
	ctx    context.Context
	canvas *renderer.Canvas
	cellW  int
	cellH  int
	keys   chan<- game.Direction
	quit   func()

	frame renderer.Frame
}

// New builds a window for canvas. Direction keys are sent to keys without
// blocking; Esc or Q calls quit and closes the window.
func New(ctx context.Context, cfg config.Config, canvas *renderer.Canvas, keys chan<- game.Direction, quit func()) *Window {
	return &Window{
		ctx:    ctx,
		canvas: canvas,
		cellW:  cfg.CellWidth,
		cellH:  cfg.CellHeight,
		keys:   keys,
		quit:   quit,
		frame:  canvas.Snapshot(),
	}
}

// Run opens the window and blocks until it is closed. Must be called from
// the main goroutine.
func Run(w *Window, width, height int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	err := ebiten.RunGame(w)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

func (w *Window) Update() error {
	select {
	case <-w.ctx.Done():
		return ebiten.Termination
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		w.quit()
		return ebiten.Termination
	}
	if dir, ok := pressedDirection(); ok {
		select {
		case w.keys <- dir:
		default:
		}
	}

	if snap := w.canvas.Snapshot(); snap.Version != w.frame.Version {
		w.frame = snap
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	f := w.frame
	cw, ch := float32(w.cellW), float32(w.cellH)

	for row := 0; row < f.Board.Rows; row++ {
		for col := 0; col < f.Board.Cols; col++ {
			c := f.At(game.Cell{Row: row, Col: col})
			vector.DrawFilledRect(screen, float32(col)*cw, float32(row)*ch, cw, ch, c, false)
		}
	}

	if f.Grid != nil {
		width, height := float32(f.Board.Cols)*cw, float32(f.Board.Rows)*ch
		for col := 0; col <= f.Board.Cols; col++ {
			x := float32(col) * cw
			vector.StrokeLine(screen, x, 0, x, height, 1, *f.Grid, false)
		}
		for row := 0; row <= f.Board.Rows; row++ {
			y := float32(row) * ch
			vector.StrokeLine(screen, 0, y, width, y, 1, *f.Grid, false)
		}
	}

	if f.Banner != "" {
		width, height := text.Measure(f.Banner, bannerFace, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate(
			(float64(f.Board.Cols*w.cellW)-width)/2,
			(float64(f.Board.Rows*w.cellH)-height)/2,
		)
		op.ColorScale.ScaleWithColor(bannerColor)
		text.Draw(screen, f.Banner, bannerFace, op)
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.frame.Board.Cols * w.cellW, w.frame.Board.Rows * w.cellH
}

func pressedDirection() (game.Direction, bool) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyUp):
		return game.Up, true
	case inpututil.IsKeyJustPressed(ebiten.KeyS) || inpututil.IsKeyJustPressed(ebiten.KeyDown):
		return game.Down, true
	case inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		return game.Left, true
	case inpututil.IsKeyJustPressed(ebiten.KeyD) || inpututil.IsKeyJustPressed(ebiten.KeyRight):
		return game.Right, true
	}
	return 0, false
}
