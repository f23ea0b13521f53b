package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/fibo/internal/board"
	"github.com/vovakirdan/fibo/internal/session"
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{Score: 42}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if best, _ := store.BestScore(); best != 42 {
		t.Errorf("BestScore() after reopen = %d, want 42", best)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Score: 100, MaxTile: 34, Moves: 40},
		{Score: 50, MaxTile: 13, Moves: 20, Difficulty: "hard"},
		{Score: 200, MaxTile: 2584, Moves: 90, Won: true},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	// Should be sorted descending
	wantScores := []int{200, 100, 50}
	for i, want := range wantScores {
		if top[i].Score != want {
			t.Errorf("TopRuns()[%d].Score = %d, want %d", i, top[i].Score, want)
		}
	}

	if !top[0].Won || top[0].MaxTile != 2584 || top[0].Moves != 90 {
		t.Errorf("top run = %+v, want won with 2584 in 90 moves", top[0])
	}
	if top[1].Difficulty != "normal" || top[2].Difficulty != "hard" {
		t.Errorf("difficulties = %q, %q, want normal, hard", top[1].Difficulty, top[2].Difficulty)
	}
	if _, err := uuid.Parse(top[0].ID); err != nil {
		t.Errorf("generated ID %q is not a uuid: %v", top[0].ID, err)
	}
}

func TestStoreRunByID(t *testing.T) {
	store := openTestStore(t)
	id := uuid.New().String()

	got, err := store.SaveRun(Run{ID: id, Score: 77})
	if err != nil || got != id {
		t.Fatalf("SaveRun() = (%q, %v), want (%q, nil)", got, err, id)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil || run.Score != 77 {
		t.Errorf("RunByID() = %+v, want score 77", run)
	}

	if _, err := store.SaveRun(Run{ID: id, Score: 1}); err == nil {
		t.Error("saving the same run ID twice should fail")
	}

	missing, err := store.RunByID("nope")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = (%v, %v), want (nil, nil)", missing, err)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		if _, err := store.SaveRun(Run{Score: i * 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(top))
	}
	if top[0].Score != 140 {
		t.Errorf("Expected top score 140, got %d", top[0].Score)
	}

	// Zero limit falls back to the default of 10
	top, err = store.TopRuns(0)
	if err != nil {
		t.Fatalf("TopRuns(0) failed: %v", err)
	}
	if len(top) != 10 {
		t.Errorf("Expected 10 runs, got %d", len(top))
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{30, 10, 20} {
		if _, err := store.SaveRun(Run{Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 20 || recent[1].Score != 10 {
		t.Errorf("RecentRuns(2) = %+v, want scores 20, 10", recent)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if stats.RunsCount != 0 || stats.HighScore != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty Stats() = %+v", stats)
	}

	store.SaveRun(Run{Score: 100, MaxTile: 89})
	store.SaveRun(Run{Score: 300, MaxTile: 2584, Won: true})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.Wins != 1 || stats.HighScore != 300 ||
		stats.AvgScore != 200 || stats.TotalScore != 400 || stats.BestTile != 2584 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Score: 100})
	store.SaveHighScore(100)

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	top, _ := store.TopRuns(10)
	if len(top) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(top))
	}
	if hs, _ := store.LoadHighScore(); hs != 0 {
		t.Errorf("LoadHighScore() after clear = %d, want 0", hs)
	}
}

func TestStorePreferences(t *testing.T) {
	store := openTestStore(t)

	if hs, err := store.LoadHighScore(); err != nil || hs != 0 {
		t.Errorf("LoadHighScore() on empty store = (%d, %v), want (0, nil)", hs, err)
	}
	if muted, err := store.LoadMuted(); err != nil || muted {
		t.Errorf("LoadMuted() on empty store = (%v, %v), want (false, nil)", muted, err)
	}

	if err := store.SaveHighScore(55); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	if err := store.SaveHighScore(89); err != nil {
		t.Fatalf("SaveHighScore() overwrite failed: %v", err)
	}
	if hs, _ := store.LoadHighScore(); hs != 89 {
		t.Errorf("LoadHighScore() = %d, want 89", hs)
	}

	// A recorded run above the stored value wins
	store.SaveRun(Run{Score: 144})
	if hs, _ := store.LoadHighScore(); hs != 144 {
		t.Errorf("LoadHighScore() = %d, want 144 from runs", hs)
	}

	if err := store.SaveMuted(true); err != nil {
		t.Fatalf("SaveMuted() failed: %v", err)
	}
	if muted, _ := store.LoadMuted(); !muted {
		t.Error("LoadMuted() = false after SaveMuted(true)")
	}
}

func TestStoreBacksSession(t *testing.T) {
	store := openTestStore(t)

	s := session.New(session.Config{Preferences: store, Board: board.Config{Seed: 1}})
	s.StartNewGame()
	s.SetMuted(true)

	// Play until something scores
	for range 200 {
		for _, dir := range board.Directions {
			s.ExecuteMove(dir)
		}
		if s.Score() > 0 || s.State() != session.Playing {
			break
		}
	}
	if s.Score() == 0 {
		t.Fatal("no merge happened in 800 moves")
	}

	reloaded := session.New(session.Config{Preferences: store})
	if reloaded.HighScore() != s.HighScore() {
		t.Errorf("reloaded HighScore() = %d, want %d", reloaded.HighScore(), s.HighScore())
	}
	if !reloaded.Muted() {
		t.Error("reloaded session should be muted")
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

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
