package display

import (
	"bufio"
	"context"
	"io"

	"golang.org/x/term"

	"github.com/cwbudde/algo-ecg/internal/player"
)

const ctrlC = 0x03

// KeyEvent maps one key press to a player event. ok is false for keys
// without a binding.
func KeyEvent(b byte) (ev player.Event, ok bool) {
	switch b {
	case ' ':
		return player.EventTogglePause, true
	case 's', 'S':
		return player.EventSave, true
	case 'r', 'R':
		return player.EventResetFilter, true
	case 'q', 'Q', ctrlC:
		return player.EventQuit, true
	default:
		return 0, false
	}
}

// Keys reads single bytes from r and delivers the bound events. The
// channel is closed when r reaches EOF or fails, or when ctx is done.
func Keys(ctx context.Context, r io.Reader) <-chan player.Event {
	out := make(chan player.Event)
	go func() {
		defer close(out)
		br := bufio.NewReader(r)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			ev, ok := KeyEvent(b)
			if !ok {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// RawMode puts the terminal behind fd into raw mode, so keys arrive
// without Enter, and returns a function that restores it. For a
// non-terminal fd it does nothing.
func RawMode(fd int) (restore func() error, err error) {
	if !term.IsTerminal(fd) {
		return func() error { return nil }, nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(fd, old) }, nil
}
