package input

import (
	"context"

	"github.com/trytobebee/snake_classic/pkg/game"
)

// Pump translates raw key events into directions for a session.
// Quit keys call quit; anything unrecognised is dropped. Pump returns when
// ctx is done or in is closed, and closes keys on return.
func Pump[E any](ctx context.Context, in <-chan E, parse func(E) (game.Direction, bool), isQuit func(E) bool, keys chan<- game.Direction, quit func()) {
	defer close(keys)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-in:
			if !ok {
				return
			}
			if isQuit(ev) {
				quit()
				continue
			}
			dir, valid := parse(ev)
			if !valid {
				continue
			}
			select {
			case keys <- dir:
			case <-ctx.Done():
				return
			}
		}
	}
}
