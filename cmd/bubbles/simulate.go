package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
	"github.com/vovakirdan/tui-bubbles/internal/sim"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

var (
	flagTicks    int
	flagWidth    float64
	flagHeight   float64
	flagLogEvery int
	flagSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <sim>",
	Short: "Run a simulation headless",
	Long: `Run the specified simulation without a terminal UI and print its
statistics. Each tick advances the world by 1/fps seconds, so a run with
the same seed, size and config always ends with the same state hash.

Examples:
  bubbles simulate bubbles --ticks 10000 --seed 42
  bubbles simulate bubbles_box --width 800 --height 600
  bubbles simulate bubbles --preset crowded --log-every 1000 --log-level debug
  bubbles simulate bubbles --save`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 6000, "Number of frames to simulate")
	simulateCmd.Flags().Float64Var(&flagWidth, "width", 1200, "Viewport width in world units")
	simulateCmd.Flags().Float64Var(&flagHeight, "height", 650, "Viewport height in world units")
	simulateCmd.Flags().IntVar(&flagLogEvery, "log-every", 0, "Log progress every N ticks (0 = never)")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the run database")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	simulateCmd.Flags().StringVar(&flagPreset, "preset", "", "Preset: classic, boxed, calm, crowded")
}

func runSimulate(cmd *cobra.Command, args []string) {
	simID := args[0]

	if !registry.Exists(simID) {
		fmt.Fprintf(os.Stderr, "Error: unknown simulation %q\n", simID)
		fmt.Fprintln(os.Stderr, "Run 'bubbles list' to see available simulations.")
		os.Exit(1)
	}
	if flagTicks < 0 {
		fmt.Fprintln(os.Stderr, "Error: --ticks must not be negative")
		os.Exit(1)
	}

	if _, err := applySimFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := bubbles.LoadConfig(simID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	params, err := cfg.Params()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := resolveSeed()
	world, err := sim.NewWorld(params, sim.FixedViewport{W: flagWidth, H: flagHeight}, sim.NewSimpleRNG(seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := world.Populate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Debug("simulation starting",
		"sim", simID,
		"seed", seed,
		"population", params.Population,
		"test", params.Test.Kind(),
		"schedule", params.Schedule,
		"viewport", fmt.Sprintf("%gx%g", flagWidth, flagHeight),
	)

	dt := 1 / float64(flagFPS)
	started := time.Now()
	for i := 1; i <= flagTicks; i++ {
		if err := world.Tick(dt); err != nil {
			logger.Error("simulation stopped", "tick", i, "error", err)
			os.Exit(1)
		}
		if flagLogEvery > 0 && i%flagLogEvery == 0 {
			st := world.Stats()
			logger.Info("progress", "tick", i, "respawns", st.Respawns, "scans", st.Scans)
		}
	}
	elapsed := time.Since(started)

	st := world.Stats()
	snap := world.Snapshot()
	logger.Info("simulation finished",
		"sim", simID,
		"ticks", st.Ticks,
		"steps", st.Steps,
		"scans", st.Scans,
		"respawns", st.Respawns,
		"elapsed", elapsed.Round(time.Millisecond),
	)
	fmt.Printf("seed=%d ticks=%d respawns=%d hash=%016x\n", seed, st.Ticks, st.Respawns, snap.Hash())

	if !flagSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	id, err := store.SaveRun(storage.RunRecord{
		SimID:      simID,
		Preset:     flagPreset,
		Seed:       seed,
		Population: world.Len(),
		Ticks:      st.Ticks,
		Respawns:   st.Respawns,
		Duration:   int(elapsed.Seconds()),
	})
	if err != nil {
		logger.Error("could not save run", "error", err)
		return
	}
	logger.Info("run saved", "id", id)
}
