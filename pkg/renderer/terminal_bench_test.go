package renderer

import (
	"fmt"
	"image/color"
	"io"
	"testing"

	"github.com/trytobebee/snake_classic/pkg/game"
)

var (
	benchBoard = game.Board{Rows: 50, Cols: 100}
	benchBlue  = color.RGBA{0, 0, 255, 255}
	benchWhite = color.RGBA{255, 255, 255, 255}
)

// BenchmarkBufferedRepaint repaints every cell through the buffered renderer
func BenchmarkBufferedRepaint(b *testing.B) {
	r := NewTerminalRenderer(io.Discard, benchBoard)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for row := 0; row < benchBoard.Rows; row++ {
			for col := 0; col < benchBoard.Cols; col++ {
				r.ClearCell(game.Cell{Row: row, Col: col}, benchWhite)
			}
		}
		r.Present()
	}
}

// BenchmarkNaiveRepaint writes each cell straight to the output
func BenchmarkNaiveRepaint(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for row := 0; row < benchBoard.Rows; row++ {
			for col := 0; col < benchBoard.Cols; col++ {
				fmt.Fprintf(io.Discard, "\033[%d;%dH\033[48;2;255;255;255m  \033[0m", boardRow+row, 1+col*cellChars)
			}
		}
	}
}

// BenchmarkTickDelta paints what a single tick changes: one head, one tail
func BenchmarkTickDelta(b *testing.B) {
	r := NewTerminalRenderer(io.Discard, benchBoard)
	head := game.Cell{Row: 10, Col: 10}
	tail := game.Cell{Row: 10, Col: 6}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.FillCell(head, benchBlue)
		r.ClearCell(tail, benchWhite)
		r.Present()
	}
}

func BenchmarkCanvasFill(b *testing.B) {
	c := NewCanvas(benchBoard, benchWhite)
	cell := game.Cell{Row: 10, Col: 10}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.FillCell(cell, benchBlue)
	}
}

func BenchmarkCanvasSnapshot(b *testing.B) {
	c := NewCanvas(benchBoard, benchWhite)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Snapshot()
	}
}
