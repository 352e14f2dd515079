package terminal

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/eiannone/keyboard"

	"blockfall/engine"
)

// InputReader folds keyboard events into engine intents. One-shot
// intents (rotation, hard drop, hold, respawn) stay set until the next
// Consume, which is what makes them edge-detected: each key event
// produces exactly one Step that sees the intent.
//
// Movement and soft drop are also treated as single presses here; held
// keys arrive as repeated events through the OS key repeat, and every
// event counts as a fresh press for the engine's DAS timers.
type InputReader struct {
	logger *slog.Logger
	events <-chan keyboard.KeyEvent

	mu      sync.Mutex
	pending engine.Inputs
	restart bool
}

func NewInputReader(l *slog.Logger) (*InputReader, error) {
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &InputReader{logger: l, events: kb}, nil
}

// Close releases the keyboard and restores the console.
func (r *InputReader) Close() {
	keyboard.Close() //nolint: errcheck
}

// Listen consumes keyboard events until the channel closes or a quit
// key arrives, then closes quit. Run it on its own goroutine.
func (r *InputReader) Listen(quit chan<- struct{}) {
	defer close(quit)
	for {
		event, ok := <-r.events
		if !ok {
			r.logger.Error("keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			r.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC || event.Key == keyboard.KeyEsc {
			return
		}
		r.mu.Lock()
		switch {
		case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
			r.pending.Left = true
		case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
			r.pending.Right = true
		case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
			r.pending.SoftDrop = true
		case event.Key == keyboard.KeyArrowUp || event.Rune == 'e':
			r.pending.RotateCW = true
		case event.Rune == 'q':
			r.pending.RotateCCW = true
		case event.Key == keyboard.KeySpace:
			r.pending.HardDrop = true
		case event.Rune == 'c':
			r.pending.Hold = true
		case event.Rune == 'r':
			r.restart = true
		}
		r.mu.Unlock()
	}
}

// Consume returns the pending intents and clears them.
func (r *InputReader) Consume() engine.Inputs {
	r.mu.Lock()
	defer r.mu.Unlock()
	in := r.pending
	r.pending = engine.Inputs{}
	return in
}

// ConsumeRestart reports whether a restart was requested since the last
// call.
func (r *InputReader) ConsumeRestart() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	restart := r.restart
	r.restart = false
	return restart
}
