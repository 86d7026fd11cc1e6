package main

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

// useTempDB points the global flags at a scratch database for one test.
func useTempDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores.db")

	prevDB, prevLevel := flagDBPath, flagLogLevel
	flagDBPath, flagLogLevel = path, "error"
	t.Cleanup(func() {
		flagDBPath, flagLogLevel = prevDB, prevLevel
	})
	return path
}

func TestServeWebReturnsListenError(t *testing.T) {
	useTempDB(t)

	prevAddr := flagWebAddr
	flagWebAddr = "127.0.0.1:-1"
	t.Cleanup(func() { flagWebAddr = prevAddr })

	if err := serveWeb(); err == nil {
		t.Fatal("serveWeb() should return the listen error")
	}
}

func TestShowScoresClear(t *testing.T) {
	path := useTempDB(t)

	store, err := storage.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore("2048", 512, 64, 80); err != nil {
		t.Fatal(err)
	}
	store.Close()

	if err := showScores("2048"); err != nil {
		t.Fatalf("showScores() failed: %v", err)
	}

	flagClearScores = true
	t.Cleanup(func() { flagClearScores = false })
	if err := showScores("2048"); err != nil {
		t.Fatalf("showScores() with --clear failed: %v", err)
	}

	store, err = storage.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 0 {
		t.Errorf("scores after clear = %v, want none", scores)
	}
}
