package core

// RuntimeConfig contains configuration passed to simulations at initialization.
// Simulations use this to size their viewport and seed their RNG.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// RunState is the externally visible state of a running simulation.
type RunState struct {
	Ticks      uint64  // Frames simulated
	Respawns   uint64  // Bodies respawned after an overlap
	Population int     // Live bodies
	Paused     bool    // Whether the simulation is paused
	Speed      float64 // Playback multiplier applied to the frame delta
}

// StepResult is returned by Sim.Step after each frame.
// A non-nil Err is fatal: the platform must stop the run.
type StepResult struct {
	State RunState
	Err   error
}
