package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/g-runner/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagNoJournal   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the G Runner SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game with its own session high score.
Finished rounds are recorded in the run journal under the SSH user name
unless --no-journal is given.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  grunner serve                           # Listen on :23234 with auto-generated key
  grunner serve --ssh :2222               # Listen on port 2222
  grunner serve --host-key ./my_host_key  # Use specific host key
  grunner serve --difficulty hard         # Every session plays the hard preset

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record finished rounds")
}

func runServe(_ *cobra.Command, _ []string) {
	runnerCfg, preset, err := loadRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Runner = runnerCfg
	cfg.Preset = preset
	if flagNoJournal {
		cfg.DBPath = ""
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}
	server.SetLogger(newLogger(os.Stderr, "grunner-ssh"))

	fmt.Printf("Starting G Runner SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
