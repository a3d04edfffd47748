package storage

import (
	"os"
	"path/filepath"
	"testing"
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

	for _, s := range []struct{ score, stage int }{{100, 1}, {50, 1}, {200, 2}} {
		if _, err := store.SaveScore("shmup", s.score, s.stage); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500, 1); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("shmup", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Stage != 2 {
		t.Errorf("Expected best score to record stage 2, got %d", scores[0].Stage)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("shmup", (i+1)*100, 1)
	}

	scores, err := store.TopScores("shmup", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("shmup")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("shmup", 100, 1)
	store.SaveScore("shmup", 300, 1)

	if err := store.SetHighScore("shmup", 250); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	if high, _ = store.HighScore("shmup"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	if err := store.SetHighScore("shmup", 900); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	if high, _ = store.HighScore("shmup"); high != 900 {
		t.Errorf("Expected high score of 900, got %d", high)
	}

	// A lower value never replaces a recorded hi-score
	store.SetHighScore("shmup", 10)
	if high, _ = store.HighScore("shmup"); high != 900 {
		t.Errorf("Expected high score to stay 900, got %d", high)
	}
}

func TestHiScoresAdapter(t *testing.T) {
	store := openTestStore(t)
	hs := NewHiScores(store, "shmup")

	if err := hs.WriteHiScore(1234); err != nil {
		t.Fatalf("WriteHiScore() failed: %v", err)
	}
	got, err := hs.ReadHiScore()
	if err != nil {
		t.Fatalf("ReadHiScore() failed: %v", err)
	}
	if got != 1234 {
		t.Errorf("ReadHiScore() = %d, expected 1234", got)
	}

	if other, _ := NewHiScores(store, "other").ReadHiScore(); other != 0 {
		t.Errorf("hi-scores leaked across games: %d", other)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "shmup", Seed: 7, Difficulty: "easy", Score: 1500, Stage: 1, Ticks: 3600, Duration: 60},
		{GameID: "shmup", Seed: 8, Difficulty: "hard", Score: 9000, Stage: 2, Cleared: true, Ticks: 7200, Dropped: 3, Duration: 120},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RecentRuns("shmup", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(got))
	}

	// Newest first
	latest := got[0]
	if latest.Seed != 8 || !latest.Cleared || latest.Dropped != 3 || latest.Difficulty != "hard" {
		t.Errorf("Unexpected latest run: %+v", latest)
	}
	if got[1].Cleared {
		t.Error("First run should not be marked cleared")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("shmup", 100, 1)
	store.SaveScore("shmup", 300, 2)
	store.SaveRun(Run{GameID: "shmup", Score: 300, Stage: 2, Cleared: true})

	stats, err := store.GetGameStats("shmup")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.BestStage != 2 || stats.Clears != 1 {
		t.Errorf("Expected best stage 2 and one clear, got %+v", stats)
	}

	empty, err := store.GetGameStats("none")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unexpected stats for empty game: %+v", empty)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("shmup", 100, 1)
	store.SetHighScore("shmup", 500)
	store.SaveRun(Run{GameID: "shmup", Score: 100, Stage: 1})
	store.SaveScore("other", 300, 1)

	if err := store.ClearScores("shmup"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("shmup", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if high, _ := store.HighScore("shmup"); high != 0 {
		t.Errorf("Expected hi-score cleared, got %d", high)
	}
	if runs, _ := store.RecentRuns("shmup", 10); len(runs) != 0 {
		t.Errorf("Expected runs cleared, got %d", len(runs))
	}
	if other, _ := store.TopScores("other", 10); len(other) != 1 {
		t.Error("Other game's scores should not be affected")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
