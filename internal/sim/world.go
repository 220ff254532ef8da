package sim

import (
	"fmt"
	"math"
	"sync"
)

// ScheduleMode selects how the three systems are ordered within a tick.
type ScheduleMode string

const (
	// ScheduleFixed reflects once per frame, then runs integrate+collide on a
	// fixed timestep driven by an accumulator.
	ScheduleFixed ScheduleMode = "fixed"
	// ScheduleFrame runs the collider scan and the reflector concurrently,
	// applies respawns, then integrates over the frame delta.
	ScheduleFrame ScheduleMode = "frame"
)

// Params configures a World.
type Params struct {
	Population  int
	Radius      Range
	MaxVel      float64
	Test        OverlapTest
	Schedule    ScheduleMode
	FixedStep   float64 // Seconds per fixed step (ScheduleFixed only)
	MaxSubsteps int     // Cap on fixed steps per frame; backlog beyond it is dropped
	Margin      MarginPolicy
}

// Validate checks the parameters for internal consistency.
func (p Params) Validate() error {
	if p.Population < 0 {
		return fmt.Errorf("sim: population must be non-negative, got %d", p.Population)
	}
	if p.Radius.Min <= 0 {
		return fmt.Errorf("sim: minimum size must be positive, got %g", p.Radius.Min)
	}
	if p.Radius.Max <= p.Radius.Min {
		return fmt.Errorf("sim: size range [%g, %g) is empty", p.Radius.Min, p.Radius.Max)
	}
	if p.MaxVel < 0 {
		return fmt.Errorf("sim: velocity bound must be non-negative, got %g", p.MaxVel)
	}
	if p.Test == nil {
		return fmt.Errorf("sim: overlap test is required")
	}
	switch p.Schedule {
	case ScheduleFixed:
		if p.FixedStep <= 0 {
			return fmt.Errorf("sim: fixed step must be positive, got %g", p.FixedStep)
		}
		if p.MaxSubsteps <= 0 {
			return fmt.Errorf("sim: max substeps must be positive, got %d", p.MaxSubsteps)
		}
	case ScheduleFrame:
	default:
		return fmt.Errorf("sim: unknown schedule %q", p.Schedule)
	}
	return nil
}

// Stats counts work done by a World since it was populated.
type Stats struct {
	Ticks    uint64 // Tick calls that ran
	Steps    uint64 // Integration steps
	Scans    uint64 // Pairwise collider scans
	Respawns uint64 // Bodies respawned
}

// stateful is implemented by random sources whose state can be captured.
type stateful interface {
	State() uint64
	SetState(uint64)
}

// World owns a fixed population of bodies and advances them tick by tick.
// It is not safe for concurrent use; Tick manages its own internal
// parallelism.
type World struct {
	params   Params
	viewport Viewport
	rng      RandomSource
	spawner  Spawner

	bodies  []Body
	scratch []Body // Snapshot buffer for the collider scan
	acc     float64
	stats   Stats
}

// NewWorld creates an empty world. Call Populate before ticking.
func NewWorld(p Params, vp Viewport, rng RandomSource) (*World, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("sim: random source is required")
	}
	if p.Margin == "" {
		p.Margin = MarginOldSize
	}

	return &World{
		params:   p,
		viewport: vp,
		rng:      rng,
		spawner: Spawner{
			Radius: p.Radius,
			MaxVel: p.MaxVel,
			Margin: p.Margin,
			Test:   p.Test,
			RNG:    rng,
		},
	}, nil
}

// Populate (re)creates all bodies with randomized position, velocity and size.
func (w *World) Populate() error {
	width, height, _, err := bounds(w.viewport)
	if err != nil {
		return err
	}

	w.bodies = make([]Body, w.params.Population)
	w.scratch = make([]Body, 0, w.params.Population)
	for i := range w.bodies {
		w.bodies[i] = w.spawner.Spawn(width, height)
	}
	w.acc = 0
	w.stats = Stats{}
	return nil
}

// SetViewport swaps the viewport provider.
func (w *World) SetViewport(vp Viewport) {
	w.viewport = vp
}

// Tick advances the simulation by one frame of frameDt seconds using the
// configured schedule. It returns ErrViewportUnavailable without touching any
// body if the viewport cannot be read. An empty viewport or population makes
// the tick a no-op.
func (w *World) Tick(frameDt float64) error {
	width, height, empty, err := bounds(w.viewport)
	if err != nil {
		return err
	}
	if frameDt < 0 || math.IsNaN(frameDt) || math.IsInf(frameDt, 0) {
		frameDt = 0
	}

	w.stats.Ticks++
	if empty || len(w.bodies) == 0 {
		return nil
	}

	switch w.params.Schedule {
	case ScheduleFrame:
		w.tickFrame(frameDt, width, height)
	default:
		w.tickFixed(frameDt, width, height)
	}
	return nil
}

// tickFixed reflects on the frame cadence, then runs as many fixed
// integrate+collide steps as the accumulator allows.
func (w *World) tickFixed(frameDt, width, height float64) {
	Reflect(w.bodies, width, height, w.params.Test)

	step := w.params.FixedStep
	w.acc += frameDt

	steps := 0
	for w.acc >= step && steps < w.params.MaxSubsteps {
		Integrate(w.bodies, step)
		w.stats.Steps++
		w.applyRespawns(w.scan(w.bodies), width, height)
		w.acc -= step
		steps++
	}

	if w.acc >= step {
		w.acc = math.Mod(w.acc, step)
	}
}

// tickFrame runs the collider scan and the reflector concurrently. The scan
// reads a snapshot of the bodies while the reflector writes velocities on the
// live slice, so the two never share memory. Respawns land after both finish
// and integration runs last.
func (w *World) tickFrame(frameDt, width, height float64) {
	w.scratch = append(w.scratch[:0], w.bodies...)
	snapshot := w.scratch

	var targets []int
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		targets = Collide(snapshot, w.params.Test)
	}()
	go func() {
		defer wg.Done()
		Reflect(w.bodies, width, height, w.params.Test)
	}()
	wg.Wait()

	w.stats.Scans++
	w.applyRespawns(targets, width, height)

	Integrate(w.bodies, frameDt)
	w.stats.Steps++
}

// scan copies bodies into the scratch snapshot and runs the collider on it.
func (w *World) scan(bodies []Body) []int {
	w.scratch = append(w.scratch[:0], bodies...)
	w.stats.Scans++
	return Collide(w.scratch, w.params.Test)
}

// applyRespawns overwrites each target in place with a freshly drawn body.
// Each write replaces the whole struct, so no reader sees a mix of old and
// new fields.
func (w *World) applyRespawns(targets []int, width, height float64) {
	for _, idx := range targets {
		w.bodies[idx] = w.spawner.Respawn(w.bodies[idx], width, height)
		w.stats.Respawns++
	}
}

// Bodies returns a copy of the current bodies for rendering.
func (w *World) Bodies() []Body {
	out := make([]Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Len returns the population size.
func (w *World) Len() int {
	return len(w.bodies)
}

// Stats returns the counters accumulated since Populate.
func (w *World) Stats() Stats {
	return w.stats
}

// Params returns the world's parameters.
func (w *World) Params() Params {
	return w.params
}
