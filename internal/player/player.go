// Package player drives the streaming notch filter over a contaminated
// recording, one chunk per tick, and keeps the rolling windows a display
// shows.
package player

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-ecg/dsp/buffer"
	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
	"github.com/cwbudde/algo-ecg/dsp/filter/design"
)

const defaultWindowSeconds = 3.0

// ErrShortSignal is returned when the signal holds fewer samples than one
// chunk.
var ErrShortSignal = errors.New("signal shorter than one chunk")

// WrapPolicy selects what happens to the filter memory when playback loops
// back to the start of the recording.
type WrapPolicy int

const (
	// WrapCarry keeps the filter state across the loop point.
	WrapCarry WrapPolicy = iota
	// WrapReset restores the designed initial state at the loop point.
	WrapReset
)

func (w WrapPolicy) String() string {
	switch w {
	case WrapCarry:
		return "carry"
	case WrapReset:
		return "reset"
	default:
		return fmt.Sprintf("WrapPolicy(%d)", int(w))
	}
}

// ParseWrapPolicy accepts "carry" or "reset".
func ParseWrapPolicy(s string) (WrapPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "carry":
		return WrapCarry, nil
	case "reset":
		return WrapReset, nil
	default:
		return 0, fmt.Errorf("unknown wrap policy %q (want carry or reset)", s)
	}
}

// Option configures a Player.
type Option func(*Player)

// WithChunkSize sets the number of samples consumed per tick.
func WithChunkSize(n int) Option {
	return func(p *Player) {
		p.cfg = core.ApplyProcessorOptions(core.WithSampleRate(p.cfg.SampleRate), core.WithChunkSize(n))
	}
}

// WithWindow sets the length of the rolling windows in seconds.
func WithWindow(seconds float64) Option {
	return func(p *Player) {
		if seconds > 0 && core.IsFinite(seconds) {
			p.windowSeconds = seconds
		}
	}
}

// WithWrapPolicy selects the loop-point behavior. The default is WrapCarry.
func WithWrapPolicy(w WrapPolicy) Option {
	return func(p *Player) {
		p.wrap = w
	}
}

// Frame is a snapshot of what a display needs for one redraw. Its slices
// are copies and stay valid after the Player moves on.
type Frame struct {
	Record     string
	SampleRate float64
	Raw        []float64 // contaminated window, oldest first
	Filtered   []float64 // filtered window, oldest first
	Index      int       // next sample to be read
	Ticks      int
	Wraps      int
	Paused     bool
	Message    string
}

// Seconds returns the playback position of the right window edge.
func (f Frame) Seconds() float64 {
	if f.SampleRate <= 0 {
		return 0
	}
	return float64(f.Index) / f.SampleRate
}

// Player owns the playback position, pause flag, filter memory and rolling
// windows of one monitoring session. It is not safe for concurrent use;
// [Run] serializes access.
type Player struct {
	name          string
	dirty         []float64
	design        design.Design
	cfg           core.ProcessorConfig
	windowSeconds float64
	wrap          WrapPolicy

	index   int
	paused  bool
	state   biquad.State
	ticks   int
	wraps   int
	message string

	raw      *buffer.Rolling
	filtered *buffer.Rolling
	scratch  []float64
}

// New prepares a Player over dirty, the contaminated recording called
// name, filtered with d. The filter starts from d.Initial.
func New(name string, dirty []float64, d design.Design, opts ...Option) (*Player, error) {
	p := &Player{
		name:          name,
		dirty:         dirty,
		design:        d,
		cfg:           core.ApplyProcessorOptions(core.WithSampleRate(d.SampleRate)),
		windowSeconds: defaultWindowSeconds,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.wrap != WrapCarry && p.wrap != WrapReset {
		return nil, fmt.Errorf("player: %v", p.wrap)
	}
	if len(dirty) < p.cfg.ChunkSize {
		return nil, fmt.Errorf("%w: %d samples, chunk %d", ErrShortSignal, len(dirty), p.cfg.ChunkSize)
	}

	window := max(int(p.windowSeconds*p.cfg.SampleRate), p.cfg.ChunkSize)
	p.raw = buffer.NewRolling(window)
	p.filtered = buffer.NewRolling(window)
	p.state = d.Initial
	return p, nil
}

// Tick advances playback by one chunk unless paused. Reaching the end
// loops back to the first sample: a chunk that would end on or past the
// last sample is not played.
func (p *Player) Tick() Frame {
	if p.paused {
		return p.Frame()
	}

	n := p.cfg.ChunkSize
	if p.index+n >= len(p.dirty) && p.index > 0 {
		p.index = 0
		p.wraps++
		if p.wrap == WrapReset {
			p.state = p.design.Initial
		}
	}

	end := min(p.index+n, len(p.dirty))
	chunk := p.dirty[p.index:end]
	p.scratch = core.EnsureLen(p.scratch, len(chunk))
	out := p.scratch
	p.state = biquad.StepInto(p.design.Coefficients, out, chunk, p.state)

	p.raw.Push(chunk)
	p.filtered.Push(out)
	p.index = end
	p.ticks++
	return p.Frame()
}

// TogglePause flips between live and paused and reports the new state.
// Leaving pause clears any status message.
func (p *Player) TogglePause() bool {
	p.paused = !p.paused
	if !p.paused {
		p.message = ""
	}
	return p.paused
}

// Paused reports whether ticks are currently ignored.
func (p *Player) Paused() bool { return p.paused }

// ResetFilter restores the designed initial filter state without moving
// the playback position.
func (p *Player) ResetFilter() {
	p.state = p.design.Initial
}

// Reset rewinds to the first sample with a fresh filter and empty windows.
func (p *Player) Reset() {
	p.index = 0
	p.paused = false
	p.state = p.design.Initial
	p.ticks = 0
	p.wraps = 0
	p.message = ""
	p.raw.Zero()
	p.filtered.Zero()
}

// SetMessage attaches a status line to subsequent frames.
func (p *Player) SetMessage(msg string) { p.message = msg }

// State returns the filter memory that the next tick starts from.
func (p *Player) State() biquad.State { return p.state }

// Index returns the next sample to be read.
func (p *Player) Index() int { return p.index }

// ChunkSize returns the number of samples consumed per tick.
func (p *Player) ChunkSize() int { return p.cfg.ChunkSize }

// Frame returns a snapshot of the current windows and position.
func (p *Player) Frame() Frame {
	return Frame{
		Record:     p.name,
		SampleRate: p.cfg.SampleRate,
		Raw:        p.raw.Copy(),
		Filtered:   p.filtered.Copy(),
		Index:      p.index,
		Ticks:      p.ticks,
		Wraps:      p.wraps,
		Paused:     p.paused,
		Message:    p.message,
	}
}
