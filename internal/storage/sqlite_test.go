package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	want := Run{
		Session:   "alice",
		Score:     120,
		Pickups:   12,
		Duration:  37*time.Second + 250*time.Millisecond,
		Ramps:     3,
		PeakScale: 5.55,
		HitBy:     "dell",
		Preset:    "classic",
	}
	id, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	want.ID = id
	want.CreatedAt = got.CreatedAt
	if got != want {
		t.Errorf("got %+v\nexpected %+v", got, want)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestStoreBestRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{30, 80, 20, 80, 50} {
		if _, err := store.SaveRun(Run{Session: "bob", Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.BestRuns(3)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	wantScores := []int{80, 80, 50}
	for i, r := range runs {
		if r.Score != wantScores[i] {
			t.Errorf("runs[%d].Score = %d, expected %d", i, r.Score, wantScores[i])
		}
	}
	if runs[0].ID > runs[1].ID {
		t.Error("Ties should list the earlier run first")
	}
}

func TestStoreRecentRunsOrder(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 15; i++ {
		if _, err := store.SaveRun(Run{Session: "carol", Score: i}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Fatalf("Expected 5 runs, got %d", len(runs))
	}
	if runs[0].Score != 15 || runs[4].Score != 11 {
		t.Errorf("Expected newest first, got %d..%d", runs[0].Score, runs[4].Score)
	}

	// Non-positive limit falls back to 10
	runs, err = store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns(0) failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(runs))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty journal failed: %v", err)
	}
	if empty != (Stats{}) {
		t.Errorf("Expected zero stats, got %+v", empty)
	}

	runs := []Run{
		{Session: "dave", Score: 40, Pickups: 4, Duration: 10 * time.Second},
		{Session: "dave", Score: 90, Pickups: 9, Duration: 25 * time.Second},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	want := Stats{
		Runs:          2,
		BestScore:     90,
		TotalPickups:  13,
		TotalDuration: 35 * time.Second,
		LongestRun:    25 * time.Second,
	}
	if st != want {
		t.Errorf("Stats() = %+v, expected %+v", st, want)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{Session: "erin", Score: 10}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected empty journal, got %d runs", len(runs))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
