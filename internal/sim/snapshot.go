package sim

import "math"

// Snapshot contains the complete world state for determinism checks and
// in-process restore.
type Snapshot struct {
	Ticks    uint64
	Steps    uint64
	Scans    uint64
	Respawns uint64
	Acc      float64
	Bodies   []Body
	RNGState uint64 // Zero when the random source cannot be captured
}

// Snapshot returns the current world state.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Ticks:    w.stats.Ticks,
		Steps:    w.stats.Steps,
		Scans:    w.stats.Scans,
		Respawns: w.stats.Respawns,
		Acc:      w.acc,
		Bodies:   w.Bodies(),
	}
	if s, ok := w.rng.(stateful); ok {
		snap.RNGState = s.State()
	}
	return snap
}

// ApplySnapshot restores world state from a snapshot. The population size is
// taken from the snapshot.
func (w *World) ApplySnapshot(snap Snapshot) {
	w.stats = Stats{
		Ticks:    snap.Ticks,
		Steps:    snap.Steps,
		Scans:    snap.Scans,
		Respawns: snap.Respawns,
	}
	w.acc = snap.Acc
	w.bodies = make([]Body, len(snap.Bodies))
	copy(w.bodies, snap.Bodies)
	w.scratch = make([]Body, 0, len(snap.Bodies))

	if s, ok := w.rng.(stateful); ok && snap.RNGState != 0 {
		s.SetState(snap.RNGState)
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Ticks
	h = h*31 + snap.Steps
	h = h*31 + snap.Scans
	h = h*31 + snap.Respawns
	h = h*31 + math.Float64bits(snap.Acc)
	h = h*31 + uint64(len(snap.Bodies))

	for _, b := range snap.Bodies {
		h = h*31 + math.Float64bits(b.Pos.X)
		h = h*31 + math.Float64bits(b.Pos.Y)
		h = h*31 + math.Float64bits(b.Vel.X)
		h = h*31 + math.Float64bits(b.Vel.Y)
		h = h*31 + math.Float64bits(b.Size)
	}

	h = h*31 + snap.RNGState
	return h
}
