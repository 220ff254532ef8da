package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles"
	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <sim>",
	Short: "Run a simulation",
	Long: `Start the specified simulation in the terminal.

Controls:
  P/Space    - Pause / resume
  +/-        - Faster / slower
  R          - Restart with a new seed
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Preset options:
  classic  - Circle test on a fixed timestep
  boxed    - Shrunk box test, one step per frame
  calm     - Half the speed, fewer bubbles
  crowded  - Twice the bubbles

Examples:
  bubbles play bubbles
  bubbles play bubbles --preset calm
  bubbles play bubbles_box --seed 42
  bubbles play bubbles --config ./my-bubbles.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Preset: classic, boxed, calm, crowded")
}

func runPlay(cmd *cobra.Command, args []string) {
	simID := args[0]

	if !registry.Exists(simID) {
		fmt.Fprintf(os.Stderr, "Error: unknown simulation %q\n", simID)
		fmt.Fprintln(os.Stderr, "Run 'bubbles list' to see available simulations.")
		os.Exit(1)
	}

	if _, err := applySimFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := bubbles.LoadConfig(simID); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	cfg := terminalConfig()
	cfg.Seed = resolveSeed()

	sim, err := registry.Create(simID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating simulation: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "path", flagDBPath, "error", err)
		store = nil
	}

	runLogger, closeLog := tuiLogger()
	err = tui.Run(sim, cfg, tui.RunOptions{
		Store:  store,
		Logger: runLogger,
		Preset: flagPreset,
	})
	closeLog()
	if store != nil {
		store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
