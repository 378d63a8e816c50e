package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/trytobebee/snake_classic/pkg/game"
)

// PollTcell forwards key events from the screen until it is finalised
func PollTcell(screen tcell.Screen) <-chan *tcell.EventKey {
	out := make(chan *tcell.EventKey)
	go func() {
		defer close(out)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if key, ok := ev.(*tcell.EventKey); ok {
				out <- key
			}
		}
	}()
	return out
}

// ParseTcellKey maps arrow keys and WASD to a direction
func ParseTcellKey(ev *tcell.EventKey) (game.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.Up, true
	case tcell.KeyDown:
		return game.Down, true
	case tcell.KeyLeft:
		return game.Left, true
	case tcell.KeyRight:
		return game.Right, true
	case tcell.KeyRune:
		return parseWASD(ev.Rune())
	}
	return 0, false
}

// IsTcellQuit checks for Esc, Ctrl-C or q
func IsTcellQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return isQuitRune(ev.Rune())
	}
	return false
}
