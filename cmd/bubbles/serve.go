package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKeyPath string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote viewing",
	Long: `Start an SSH server that lets users run the simulations remotely.

Users can connect with any SSH client:
  ssh -p 23234 localhost

Each session gets its own simulation, with the menu and run history.
Finished runs are recorded in the shared database.

Examples:
  bubbles serve
  bubbles serve --ssh :2222
  bubbles serve --ssh 0.0.0.0:23234 --host-key ./host_key
  bubbles serve --preset crowded --fps 30`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKeyPath, "host-key", "", "Path to SSH host key (auto-generated if not exists)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Idle connection timeout")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	serveCmd.Flags().StringVar(&flagPreset, "preset", "", "Preset for every session: classic, boxed, calm, crowded")
}

func runServe(cmd *cobra.Command, args []string) {
	if _, err := applySimFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := checkConfigs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKeyPath,
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
		TickRate:    flagFPS,
		Preset:      flagPreset,
	}

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("bubbles-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating SSH server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh -p %s localhost\n", extractPort(flagSSHAddr))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// extractPort extracts the port from an address like ":23234" or "0.0.0.0:23234".
func extractPort(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}
