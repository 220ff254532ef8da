// bubbles is a terminal bubble simulation: drifting bubbles bounce off the
// window edges and respawn elsewhere whenever two of them touch.
//
// Usage:
//
//	bubbles list              - List available simulations
//	bubbles play <sim>        - Run a simulation
//	bubbles menu              - Pick simulations interactively
//	bubbles serve             - Start SSH server for remote viewing
//	bubbles runs <sim>        - Show run history for a simulation
//	bubbles simulate <sim>    - Run a simulation headless
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.bubbles/runs.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Shared by play, menu and simulate
	flagConfig string
	flagPreset string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubbles",
	Short: "TUI Bubbles - watch bubbles collide in your terminal",
	Long: `TUI Bubbles is a terminal simulation of drifting bubbles. Bubbles
bounce off the window edges, and whenever two of them touch, one of the
pair respawns somewhere else with a new size and velocity.

Available commands:
  list      - Show all available simulations
  play      - Run a specific simulation directly
  menu      - Interactive picker with run history
  serve     - Start SSH server for remote viewing
  runs      - View run history
  simulate  - Run headless and print statistics

Examples:
  bubbles list
  bubbles play bubbles
  bubbles play bubbles_box --preset crowded
  bubbles menu
  bubbles serve --ssh :2222
  bubbles simulate bubbles --ticks 10000 --seed 42`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		if flagFPS <= 0 {
			return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "bubbles",
			Level:           level,
		})
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bubbles/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(simulateCmd)
}

// applySimFlags hands --config and --preset to the simulation package and
// returns the parsed preset.
func applySimFlags() (config.Preset, error) {
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return config.PresetNone, err
	}
	bubbles.SetConfigPath(flagConfig)
	bubbles.SetPreset(preset)
	return preset, nil
}

// checkConfigs loads the configuration of every registered simulation so a
// bad --config fails before the terminal UI starts.
func checkConfigs() error {
	for _, info := range registry.List() {
		if _, err := bubbles.LoadConfig(info.ID); err != nil {
			return err
		}
	}
	return nil
}

// terminalConfig builds the runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// tuiLogger returns a logger that writes to ~/.bubbles/bubbles.log while the
// alternate screen owns the terminal. Falls back to the stderr logger.
func tuiLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return logger, func() {}
	}
	dir := filepath.Join(home, ".bubbles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return logger, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "bubbles.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logger, func() {}
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "bubbles",
		Level:           logger.GetLevel(),
	})
	return l, func() { f.Close() }
}

// resolveSeed returns the --seed value or a time-based seed when it is zero.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
