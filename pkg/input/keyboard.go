package input

import (
	"sync"

	"github.com/eiannone/keyboard"
	"github.com/trytobebee/snake_classic/pkg/game"
)

// KeyboardHandler handles keyboard input
type KeyboardHandler struct {
	inputChan chan KeyInput
	done      chan struct{}
	stopOnce  sync.Once
}

// KeyInput represents a keyboard input event
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// NewKeyboardHandler creates a new keyboard input handler
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		inputChan: make(chan KeyInput),
		done:      make(chan struct{}),
	}
}

// Start begins listening for keyboard input
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go h.forward(keyboard.GetKey)

	return nil
}

// forward reads keys until getKey fails or Stop is called
func (h *KeyboardHandler) forward(getKey func() (rune, keyboard.Key, error)) {
	defer close(h.inputChan)
	for {
		char, key, err := getKey()
		if err != nil {
			return
		}
		select {
		case h.inputChan <- KeyInput{Char: char, Key: key}:
		case <-h.done:
			return
		}
	}
}

// Stop stops the keyboard handler and releases the reader goroutine
func (h *KeyboardHandler) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		keyboard.Close()
	})
}

// GetInputChan returns the input channel
func (h *KeyboardHandler) GetInputChan() <-chan KeyInput {
	return h.inputChan
}

// ParseDirection parses a key input into a direction
func ParseDirection(input KeyInput) (dir game.Direction, isValid bool) {
	// Handle arrow keys
	switch input.Key {
	case keyboard.KeyArrowUp:
		return game.Up, true
	case keyboard.KeyArrowDown:
		return game.Down, true
	case keyboard.KeyArrowLeft:
		return game.Left, true
	case keyboard.KeyArrowRight:
		return game.Right, true
	}

	return parseWASD(input.Char)
}

// IsQuit checks if the input is a quit command
func IsQuit(input KeyInput) bool {
	return input.Key == keyboard.KeyEsc || input.Key == keyboard.KeyCtrlC || isQuitRune(input.Char)
}

func parseWASD(ch rune) (game.Direction, bool) {
	switch ch {
	case 'w', 'W':
		return game.Up, true
	case 's', 'S':
		return game.Down, true
	case 'a', 'A':
		return game.Left, true
	case 'd', 'D':
		return game.Right, true
	}
	return 0, false
}

func isQuitRune(ch rune) bool {
	return ch == 'q' || ch == 'Q'
}
