package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/g-runner/internal/platform/tui"
	"github.com/vovakirdan/g-runner/internal/storage"
)

var (
	flagPrint  bool
	flagRecent bool
	flagLimit  int
	flagClear  bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Browse recorded runs",
	Long: `Show the runs recorded with 'grunner play --journal', by SSH sessions and by
'grunner simulate --journal'. The journal is a record only; the in-game
high score always starts from zero.

Examples:
  grunner journal                # Interactive viewer
  grunner journal --print        # Top 10 runs as text
  grunner journal --print --recent --limit 20
  grunner journal --clear`,
	Args: cobra.NoArgs,
	Run:  runJournal,
}

func init() {
	journalCmd.Flags().BoolVar(&flagPrint, "print", false, "Print runs instead of opening the viewer")
	journalCmd.Flags().BoolVar(&flagRecent, "recent", false, "With --print, list the latest runs instead of the best")
	journalCmd.Flags().IntVar(&flagLimit, "limit", 10, "With --print, number of runs to list")
	journalCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runJournal(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Journal cleared.")

	case flagPrint:
		printJournal(store)

	default:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunJournal(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printJournal(store *storage.Store) {
	runs, err := store.BestRuns(flagLimit)
	title := "Best runs"
	if flagRecent {
		runs, err = store.RecentRuns(flagLimit)
		title = "Recent runs"
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("G Runner - %s\n", title)
	fmt.Println("================================")

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	for i, r := range runs {
		fmt.Printf("%2d. %6d  %8s  %-12s %-7s %s\n",
			i+1,
			r.Score,
			r.Duration.Round(time.Second),
			r.Session,
			r.HitBy,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
}
