package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles"
	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick simulations from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or w/s to navigate, Enter to select a simulation, then pick
a preset. When a run ends, you return to the menu.

Controls:
  Up/Down/w/s  - Navigate menu
  Enter        - Select simulation
  Tab          - Run history
  Q            - Quit

Examples:
  bubbles menu
  bubbles menu --fps 30
  bubbles menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
}

func runMenu(_ *cobra.Command, _ []string) {
	bubbles.SetConfigPath(flagConfig)
	if err := checkConfigs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "path", flagDBPath, "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	runLogger, closeLog := tuiLogger()
	defer closeLog()

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsRunBoard {
			goBack, rbErr := tui.RunRunBoard(store, cfg.ScreenW, cfg.ScreenH)
			if rbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", rbErr)
			}
			if goBack {
				continue
			}
			return
		}

		simID := menuResult.SimID
		if simID == "" {
			return
		}

		sim, err := registry.Create(simID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating simulation: %v\n", err)
			continue
		}

		choice, err := tui.RunPresetSelector(sim.Title(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if choice.Quit {
			return
		}
		if choice.Back {
			continue
		}
		bubbles.SetPreset(choice.Preset)

		// New seed for every run unless --seed pins it
		cfg.Seed = flagSeed
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(sim, cfg, tui.RunOptions{
			Store:  store,
			Logger: runLogger,
			Preset: string(choice.Preset),
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", err)
		}
	}
}
