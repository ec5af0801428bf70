package player

import (
	"context"
	"fmt"
	"time"
)

// Event is a user command delivered to [Run].
type Event int

const (
	// EventTogglePause switches between live and paused.
	EventTogglePause Event = iota + 1
	// EventSave asks the Saver to store the current frame. It is ignored
	// while live.
	EventSave
	// EventResetFilter restores the designed initial filter state.
	EventResetFilter
	// EventQuit ends Run.
	EventQuit
)

func (e Event) String() string {
	switch e {
	case EventTogglePause:
		return "toggle-pause"
	case EventSave:
		return "save"
	case EventResetFilter:
		return "reset-filter"
	case EventQuit:
		return "quit"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Sink displays frames.
type Sink interface {
	Render(f Frame) error
}

// Saver stores a frame, for example as an image, and returns where it went.
type Saver interface {
	Save(f Frame) (string, error)
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(Frame) error

// Render calls fn(f).
func (fn SinkFunc) Render(f Frame) error { return fn(f) }

// SaverFunc adapts a function to [Saver].
type SaverFunc func(Frame) (string, error)

// Save calls fn(f).
func (fn SaverFunc) Save(f Frame) (string, error) { return fn(f) }

// Run drives p from a single goroutine until ctx is done, ticks is closed
// or an EventQuit arrives. Each tick and each event is handled to
// completion before the next one is received, so handlers never overlap.
// A closed events channel only stops event delivery. saver may be nil, in
// which case EventSave is ignored. Errors from sink or saver end the run.
func Run(ctx context.Context, p *Player, ticks <-chan time.Time, events <-chan Event, sink Sink, saver Saver) error {
	if err := sink.Render(p.Frame()); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			if p.Paused() {
				continue
			}
			if err := sink.Render(p.Tick()); err != nil {
				return fmt.Errorf("render: %w", err)
			}

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			quit, err := handle(p, ev, saver)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			if err := sink.Render(p.Frame()); err != nil {
				return fmt.Errorf("render: %w", err)
			}
		}
	}
}

func handle(p *Player, ev Event, saver Saver) (quit bool, err error) {
	switch ev {
	case EventQuit:
		return true, nil
	case EventTogglePause:
		p.TogglePause()
	case EventResetFilter:
		p.ResetFilter()
		if p.Paused() {
			p.SetMessage("filter reset")
		}
	case EventSave:
		if !p.Paused() || saver == nil {
			return false, nil
		}
		where, err := saver.Save(p.Frame())
		if err != nil {
			return false, fmt.Errorf("save: %w", err)
		}
		p.SetMessage("saved " + where)
	}
	return false, nil
}
