package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/g-runner/internal/games/runner"
	"github.com/vovakirdan/g-runner/internal/platform/headless"
	"github.com/vovakirdan/g-runner/internal/platform/tui"
	"github.com/vovakirdan/g-runner/internal/storage"
)

var (
	flagRounds    int
	flagMaxTicks  int64
	flagLookahead int
	flagSimRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the autopilot play headless rounds",
	Long: `Run G Runner without a terminal. The autopilot dodges harmful obstacles
and chases beneficial ones while a virtual clock advances one frame per
tick, so rounds finish much faster than real time.

Use it to check how a config or difficulty preset plays out, or with
--seed to reproduce a session exactly.

Examples:
  grunner simulate
  grunner simulate --rounds 10 --difficulty easy
  grunner simulate --seed 42 --debug
  grunner simulate --rounds 3 --journal`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRounds, "rounds", 3, "Rounds to play")
	simulateCmd.Flags().Int64Var(&flagMaxTicks, "max-ticks", 0, "Stop after this many ticks (0 = one hour of game time per round)")
	simulateCmd.Flags().IntVar(&flagLookahead, "lookahead", 300, "Autopilot lookahead in playfield units")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "journal", false, "Record simulated rounds in the run journal")
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(os.Stderr, "simulate")
	rt := runtimeConfig(0, 0)

	maxTicks := flagMaxTicks
	if maxTicks <= 0 {
		maxTicks = int64(flagRounds) * int64(rt.TickRate) * 3600
	}

	clock := headless.NewVirtualClock(headless.Epoch)
	platform := headless.NewPlatform(clock, headless.Options{
		Rounds:   flagRounds,
		MaxTicks: maxTicks,
		Pilot:    runner.Autopilot{Lookahead: flagLookahead},
	})
	engine := runner.NewEngine(cfg, rt, platform, logger)
	platform.Attach(engine)
	if err := engine.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if flagSimRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open run journal", "error", err)
			store = nil
		}
	}

	var summaries []runner.RoundSummary
	engine.OnRoundEnd(func(s runner.RoundSummary) {
		summaries = append(summaries, s)
		tui.RecordRun(store, logger, tui.RunFromSummary(s, "autopilot", preset))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulating", "rounds", flagRounds, "preset", preset, "seed", rt.Seed)
	start := time.Now()
	runErr := runner.Run(ctx, engine, platform, clock, rt.TickRate)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}

	printSimulation(summaries, platform.Report(), engine.Snapshot().HighScore, time.Since(start))
}

func printSimulation(summaries []runner.RoundSummary, report headless.Report, high int, took time.Duration) {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	fmt.Println(header.Render(fmt.Sprintf("%-6s %7s %8s %6s %6s %8s", "Round", "Score", "Time", "Ramps", "Scale", "Hit by")))
	for i, s := range summaries {
		fmt.Printf("%-6d %7d %8s %6d %6.2f %8s\n",
			i+1, s.Score, s.Duration.Round(time.Second), s.Ramps, s.PeakScale, s.HitBy)
	}

	fmt.Println()
	fmt.Printf("High score: %d\n", high)
	fmt.Println(dim.Render(fmt.Sprintf("%d ticks, %d spawns, simulated in %s",
		report.Ticks, report.Spawns, took.Round(time.Millisecond))))
	if report.Timeout {
		fmt.Println(dim.Render("Stopped at --max-ticks before all rounds finished."))
	}
}
