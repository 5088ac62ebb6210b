package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/g-runner/internal/games/runner"
	"github.com/vovakirdan/g-runner/internal/platform/tui"
	"github.com/vovakirdan/g-runner/internal/storage"
)

var flagJournal bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play G Runner",
	Long: `Start G Runner in this terminal.

Controls:
  Up/W, Down/S  - Move
  Enter/Space   - Start a round
  Q/Esc         - Quit (title and game over screens)
  Ctrl+C        - Quit at any time
  Ctrl+S        - Save a screenshot to ~/.arcade/screenshots
  ?             - Toggle help

Difficulty options:
  classic - Default pace: speed grows a little every frame, spawns speed up every 12s
  easy    - Slower speed growth, gentler spawn ramp with a floor
  hard    - Faster speed growth, starts with more frequent spawns
  fixed   - No progression

The high score lasts for this session only. With --journal every finished
round is also recorded in the run journal (see 'grunner journal').

Examples:
  grunner play
  grunner play --difficulty hard
  grunner play --journal --seed 42
  grunner play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagJournal, "journal", false, "Record finished rounds in the run journal")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := fileLogger("grunner")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rt := runtimeConfig(width, height)

	presenter := tui.NewScreenPresenter(cfg.Playfield.Width, cfg.Playfield.Height, width, max(height-tui.ChromeRows, 1))
	engine := runner.NewEngine(cfg, rt, presenter, logger)
	if err := engine.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if flagJournal {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
			// Continue without the journal - game still works
			store = nil
		}
	}
	user := os.Getenv("USER")
	engine.OnRoundEnd(func(s runner.RoundSummary) {
		tui.RecordRun(store, logger, tui.RunFromSummary(s, user, preset))
	})

	logger.Info("starting", "preset", preset, "fps", rt.TickRate, "seed", rt.Seed)
	runErr := tui.Run(engine, presenter, rt.TickRate)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
