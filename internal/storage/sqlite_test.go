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
	dbPath := filepath.Join(tmpDir, "nested", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreRecordAndTopRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []time.Duration{42 * time.Second, 31 * time.Second, 55 * time.Second}
	for _, d := range runs {
		if _, err := store.RecordRun(0, "alice", d); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}
	if _, err := store.RecordRun(1, "bob", 10*time.Second); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	top, err := store.TopRuns(0, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	// Fastest first
	expected := []time.Duration{31 * time.Second, 42 * time.Second, 55 * time.Second}
	for i, want := range expected {
		if top[i].Duration != want {
			t.Errorf("run %d duration = %v, expected %v", i, top[i].Duration, want)
		}
		if top[i].Player != "alice" {
			t.Errorf("run %d player = %q, expected alice", i, top[i].Player)
		}
	}

	limited, err := store.TopRuns(0, 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(limited))
	}
}

func TestStoreBestTime(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.BestTime(3)
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if ok {
		t.Error("BestTime() should report no runs for an empty level")
	}

	store.RecordRun(3, "", 1500*time.Millisecond)
	store.RecordRun(3, "", 1200*time.Millisecond)

	best, ok, err := store.BestTime(3)
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if !ok || best != 1200*time.Millisecond {
		t.Errorf("BestTime() = %v, %v; expected 1.2s, true", best, ok)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.RecordRun(1, "", 20*time.Second)
	store.RecordRun(0, "", 9*time.Second)
	store.RecordRun(1, "", 18*time.Second)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(stats))
	}
	if stats[0].Level != 0 || stats[0].Runs != 1 || stats[0].Best != 9*time.Second {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Level != 1 || stats[1].Runs != 2 || stats[1].Best != 18*time.Second {
		t.Errorf("stats[1] = %+v", stats[1])
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.RecordRun(0, "", time.Second)
	store.RecordRun(1, "", time.Second)

	if err := store.ClearRuns(0); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	top, _ := store.TopRuns(0, 10)
	if len(top) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(top))
	}

	other, _ := store.TopRuns(1, 10)
	if len(other) != 1 {
		t.Errorf("Clearing level 0 should not affect level 1, got %d runs", len(other))
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	store1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store1.RecordRun(2, "carol", 7*time.Second)
	store1.Close()

	store2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store2.Close()

	best, ok, err := store2.BestTime(2)
	if err != nil || !ok || best != 7*time.Second {
		t.Errorf("BestTime() after reopen = %v, %v, %v", best, ok, err)
	}
}
