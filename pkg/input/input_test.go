package input

import (
	"context"
	"testing"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/gdamore/tcell/v2"
	"github.com/trytobebee/snake_classic/pkg/game"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in    KeyInput
		want  game.Direction
		valid bool
	}{
		{KeyInput{Key: keyboard.KeyArrowUp}, game.Up, true},
		{KeyInput{Key: keyboard.KeyArrowDown}, game.Down, true},
		{KeyInput{Key: keyboard.KeyArrowLeft}, game.Left, true},
		{KeyInput{Key: keyboard.KeyArrowRight}, game.Right, true},
		{KeyInput{Char: 'w'}, game.Up, true},
		{KeyInput{Char: 'S'}, game.Down, true},
		{KeyInput{Char: 'a'}, game.Left, true},
		{KeyInput{Char: 'D'}, game.Right, true},
		{KeyInput{Char: 'x'}, 0, false},
		{KeyInput{Key: keyboard.KeyEnter}, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		if ok != tt.valid || (ok && got != tt.want) {
			t.Errorf("ParseDirection(%+v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.valid)
		}
	}
}

func TestIsQuit(t *testing.T) {
	for _, in := range []KeyInput{{Char: 'q'}, {Char: 'Q'}, {Key: keyboard.KeyEsc}, {Key: keyboard.KeyCtrlC}} {
		if !IsQuit(in) {
			t.Errorf("expected %+v to quit", in)
		}
	}
	if IsQuit(KeyInput{Char: 'w'}) {
		t.Error("w must not quit")
	}
}

func TestParseTcellKey(t *testing.T) {
	tests := []struct {
		ev    *tcell.EventKey
		want  game.Direction
		valid bool
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.Up, true},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), game.Down, true},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.Left, true},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), game.Right, true},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), game.Right, true},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), 0, false},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), 0, false},
	}
	for i, tt := range tests {
		got, ok := ParseTcellKey(tt.ev)
		if ok != tt.valid || (ok && got != tt.want) {
			t.Errorf("case %d: got %v, %v; want %v, %v", i, got, ok, tt.want, tt.valid)
		}
	}

	if !IsTcellQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc should quit")
	}
	if !IsTcellQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if IsTcellQuit(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)) {
		t.Error("w must not quit")
	}
}

func TestPump(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan KeyInput)
	keys := make(chan game.Direction, 4)
	quit := make(chan struct{}, 1)

	done := make(chan struct{})
	go func() {
		Pump(ctx, in, ParseDirection, IsQuit, keys, func() { quit <- struct{}{} })
		close(done)
	}()

	in <- KeyInput{Key: keyboard.KeyArrowDown}
	in <- KeyInput{Char: 'x'} // ignored
	in <- KeyInput{Char: 'a'}
	in <- KeyInput{Char: 'q'}

	select {
	case <-quit:
	case <-time.After(time.Second):
		t.Fatal("quit not signalled")
	}

	close(in)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop when input closed")
	}

	var got []game.Direction
	for d := range keys {
		got = append(got, d)
	}
	if len(got) != 2 || got[0] != game.Down || got[1] != game.Left {
		t.Errorf("unexpected directions %v", got)
	}
}

func TestPumpStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan KeyInput)
	keys := make(chan game.Direction)

	done := make(chan struct{})
	go func() {
		Pump(ctx, in, ParseDirection, IsQuit, keys, func() {})
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop on cancel")
	}
	if _, ok := <-keys; ok {
		t.Error("keys should be closed")
	}
}

func TestKeyboardHandlerStopReleasesReader(t *testing.T) {
	h := NewKeyboardHandler()
	done := make(chan struct{})
	go func() {
		h.forward(func() (rune, keyboard.Key, error) { return 'w', 0, nil })
		close(done)
	}()

	// Nobody reads the channel after the first key
	if got := <-h.GetInputChan(); got.Char != 'w' {
		t.Fatalf("unexpected key %+v", got)
	}
	h.Stop()
	h.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reader still blocked after Stop")
	}
	if _, ok := <-h.GetInputChan(); ok {
		t.Error("input channel should be closed")
	}
}
