package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/registry"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

var (
	flagLongest bool
	flagLimit   int
	flagClear   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs <sim>",
	Short: "Show run history for a simulation",
	Long: `Display the most recent runs of the specified simulation, or the
longest ones with --longest.

Examples:
  bubbles runs bubbles
  bubbles runs bubbles_box --longest
  bubbles runs bubbles --limit 50
  bubbles runs bubbles --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagLongest, "longest", false, "Order by tick count instead of date")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history of the simulation")
}

func runRuns(cmd *cobra.Command, args []string) {
	simID := args[0]

	if !registry.Exists(simID) {
		fmt.Fprintf(os.Stderr, "Error: unknown simulation %q\n", simID)
		fmt.Fprintln(os.Stderr, "Run 'bubbles list' to see available simulations.")
		os.Exit(1)
	}

	sim, err := registry.Create(simID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating simulation: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(simID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Run history of %s cleared.\n", sim.Title())
		return
	}

	var runs []storage.RunRecord
	if flagLongest {
		runs, err = store.TopRuns(simID, flagLimit)
	} else {
		runs, err = store.RecentRuns(simID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	heading := "Recent Runs"
	if flagLongest {
		heading = "Longest Runs"
	}
	fmt.Printf("%s - %s\n", heading, sim.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'bubbles play %s' to record the first one.\n", simID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-4s  %-10s  %-8s  %-6s  %s\n", "#", "Preset", "Pop", "Ticks", "Respawns", "/1k", "Date")
	fmt.Printf("  %-4s  %-8s  %-4s  %-10s  %-8s  %-6s  %s\n", "-", "------", "---", "-----", "--------", "---", "----")
	for i, r := range runs {
		preset := r.Preset
		if preset == "" {
			preset = "-"
		}
		fmt.Printf("  %-4d  %-8s  %-4d  %-10d  %-8d  %-6.1f  %s\n",
			i+1, preset, r.Population, r.Ticks, r.Respawns, r.RespawnRate(),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(simID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Ticks: %d  Respawns: %d  Longest: %d\n",
			stats.Runs, stats.TotalTicks, stats.TotalRespawns, stats.LongestTicks)
	}
}
