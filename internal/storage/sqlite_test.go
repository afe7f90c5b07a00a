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
	dbPath := filepath.Join(t.TempDir(), "test.db")

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
	if _, err := store.SaveScore(ScoreEntry{Player: "ana", Score: 300, Level: 2, Difficulty: "Normal"}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore() = %d after reopen, want 300", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	entries := []ScoreEntry{
		{Player: "ana", Score: 100, Level: 1, Difficulty: "Normal"},
		{Player: "bo", Score: 50, Level: 1, Difficulty: "Easy"},
		{Player: "ana", Score: 200, Level: 2, Difficulty: "Hard"},
		{Player: "cy", Score: 100, Level: 1, Difficulty: "Normal"},
	}
	for _, e := range entries {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(scores))
	}

	// Highest first, earliest first on ties
	want := []struct {
		player string
		score  int
	}{{"ana", 200}, {"ana", 100}, {"cy", 100}, {"bo", 50}}
	for i, w := range want {
		if scores[i].Player != w.player || scores[i].Score != w.score {
			t.Errorf("scores[%d] = %s/%d, want %s/%d", i, scores[i].Player, scores[i].Score, w.player, w.score)
		}
	}

	if scores[0].Level != 2 || scores[0].Difficulty != "Hard" {
		t.Errorf("scores[0] = %+v, want level 2 Hard", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		if _, err := store.SaveScore(ScoreEntry{Player: "p", Score: i * 10, Level: 1, Difficulty: "Normal"}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit limit", 5, 5},
		{"zero uses default", 0, 10},
		{"negative uses default", -1, 10},
		{"more than stored", 50, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := store.TopScores(tt.limit)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(scores) != tt.want {
				t.Errorf("TopScores(%d) returned %d entries, want %d", tt.limit, len(scores), tt.want)
			}
		})
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty table, got %d", high)
	}

	store.SaveScore(ScoreEntry{Player: "a", Score: 400, Level: 1, Difficulty: "Normal"})
	store.SaveScore(ScoreEntry{Player: "b", Score: 900, Level: 3, Difficulty: "Hard"})
	store.SaveScore(ScoreEntry{Player: "a", Score: 10, Level: 1, Difficulty: "Easy"})

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 900 {
		t.Errorf("Expected high score 900, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Player: "a", Score: 100, Level: 1, Difficulty: "Normal"})
	store.SaveScore(ScoreEntry{Player: "b", Score: 200, Level: 1, Difficulty: "Normal"})

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("Expected no scores after clear, got %d", len(scores))
	}
}

func TestStoreAdjustments(t *testing.T) {
	store := openTestStore(t)

	entries := []AdjustmentEntry{
		{
			Player: "ana", Level: 1, FromDifficulty: "Normal", ToDifficulty: "Hard",
			SuccessRate: 1, Speed: 1.5, ErrorPatterns: "None", Reasoning: "Fast and accurate.",
		},
		{
			Player: "bo", Level: 1, FromDifficulty: "Normal", ToDifficulty: "Normal",
			SuccessRate: 0.5, Speed: 9, ErrorPatterns: "tapped star instead of heart (2 times)", Failed: true,
		},
		{
			Player: "ana", Level: 2, FromDifficulty: "Hard", ToDifficulty: "Very Hard",
			SuccessRate: 0.95, Speed: 2, ErrorPatterns: "None", Reasoning: "Still fast.",
		},
	}
	for _, e := range entries {
		if _, err := store.SaveAdjustment(e); err != nil {
			t.Fatalf("SaveAdjustment() failed: %v", err)
		}
	}

	t.Run("all players newest first", func(t *testing.T) {
		got, err := store.RecentAdjustments("", 10)
		if err != nil {
			t.Fatalf("RecentAdjustments() failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("got %d entries, want 3", len(got))
		}
		if got[0].ToDifficulty != "Very Hard" || got[2].ToDifficulty != "Hard" {
			t.Errorf("order = %s, %s, %s", got[0].ToDifficulty, got[1].ToDifficulty, got[2].ToDifficulty)
		}
	})

	t.Run("filtered by player", func(t *testing.T) {
		got, err := store.RecentAdjustments("bo", 10)
		if err != nil {
			t.Fatalf("RecentAdjustments() failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d entries, want 1", len(got))
		}
		e := got[0]
		if !e.Failed || e.SuccessRate != 0.5 || e.Speed != 9 {
			t.Errorf("entry = %+v", e)
		}
		if e.ErrorPatterns != "tapped star instead of heart (2 times)" {
			t.Errorf("ErrorPatterns = %q", e.ErrorPatterns)
		}
	})

	t.Run("limit", func(t *testing.T) {
		got, err := store.RecentAdjustments("", 2)
		if err != nil {
			t.Fatalf("RecentAdjustments() failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("got %d entries, want 2", len(got))
		}
	})
}

func TestStorePlayerStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Player: "ana", Score: 100, Level: 1, Difficulty: "Normal"})
	store.SaveScore(ScoreEntry{Player: "ana", Score: 300, Level: 3, Difficulty: "Hard"})
	store.SaveScore(ScoreEntry{Player: "bo", Score: 50, Level: 1, Difficulty: "Easy"})

	stats, err := store.GetPlayerStats()
	if err != nil {
		t.Fatalf("GetPlayerStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 players, got %d", len(stats))
	}

	ana := stats["ana"]
	if ana == nil {
		t.Fatal("Expected stats for ana")
	}
	if ana.GamesCount != 2 || ana.HighScore != 300 || ana.AvgScore != 200 || ana.BestLevel != 3 {
		t.Errorf("ana = %+v", ana)
	}
	if bo := stats["bo"]; bo == nil || bo.GamesCount != 1 || bo.HighScore != 50 {
		t.Errorf("bo = %+v", bo)
	}
}

func TestStoreCreatesNestedDirectories(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "c", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}
