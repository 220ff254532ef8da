// Package tui runs simulations in the terminal with Bubble Tea: the frame
// loop, key mapping, menus and the SSH front end.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one simulation frame. Gen identifies the tick
// loop that produced it so a model ignores ticks left over from an earlier one.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

var tickGen atomic.Uint64

// nextTickGen returns a fresh tick loop generation.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// maxFrameDelta caps the measured frame time so a stalled terminal does not
// turn into one huge integration step.
const maxFrameDelta = 250 * time.Millisecond

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}

// frameDelta returns the time between two ticks, clamped to [0, maxFrameDelta].
// A zero previous tick yields zero, which simulations read as the nominal frame time.
func frameDelta(prev, now time.Time) time.Duration {
	if prev.IsZero() {
		return 0
	}
	d := now.Sub(prev)
	if d < 0 {
		return 0
	}
	if d > maxFrameDelta {
		return maxFrameDelta
	}
	return d
}
