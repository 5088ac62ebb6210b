// grunner is G Runner, a side-scrolling obstacle-avoidance game for the terminal.
//
// Usage:
//
//	grunner play             - Play in this terminal
//	grunner serve            - Start SSH server for remote play
//	grunner simulate         - Let the autopilot play headless rounds
//	grunner journal          - Browse recorded runs
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set journal path (default: ~/.arcade/grunner.db)
//	--config <path>       - Custom runner config YAML
//	--difficulty <preset> - classic, easy, hard or fixed
//	--debug               - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/g-runner/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "grunner",
	Short: "G Runner - dodge the bloat, collect the tools",
	Long: `G Runner is a side-scrolling game for the terminal. Move up and down to
collect vim and apples while dodging dell and vscode. The world speeds up
the longer you survive.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  simulate  - Let the autopilot play headless rounds
  journal   - Browse recorded runs

Examples:
  grunner play
  grunner play --difficulty easy --journal
  grunner serve --ssh :2222
  grunner simulate --rounds 5 --seed 42
  grunner journal`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the run journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: classic, easy, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(journalCmd)
}
