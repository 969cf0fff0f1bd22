package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStats_CreatesZeroedRecord(t *testing.T) {
	tmpDir := t.TempDir()

	stats, err := LoadStats(tmpDir)
	if err != nil {
		t.Fatalf("Failed to load stats: %v", err)
	}
	if stats.TotalTweets != 0 || stats.TotalReplies != 0 {
		t.Error("expected zeroed counters")
	}
	if stats.PopularKaomojis == nil || stats.UserInteractions == nil {
		t.Error("expected initialized maps")
	}

	// First load must persist the initial document.
	if _, err := os.Stat(filepath.Join(tmpDir, "stats.json")); err != nil {
		t.Errorf("expected stats.json to be created: %v", err)
	}
}

func TestRecordKaomojiUse_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	// Three serialized tracker calls must persist a count of 3.
	for range 3 {
		if err := RecordKaomojiUse(tmpDir, "(^_^)"); err != nil {
			t.Fatalf("Failed to record kaomoji use: %v", err)
		}
	}

	stats, err := LoadStats(tmpDir)
	if err != nil {
		t.Fatalf("Failed to reload stats: %v", err)
	}
	if got := stats.PopularKaomojis["(^_^)"]; got != 3 {
		t.Errorf("expected count 3, got %d", got)
	}
	if stats.LastUpdated.IsZero() {
		t.Error("expected last_updated to be set")
	}
}

func TestRecordTweet_CountsTypeAndDay(t *testing.T) {
	tmpDir := t.TempDir()

	if err := RecordTweet(tmpDir, "contextual"); err != nil {
		t.Fatalf("Failed to record tweet: %v", err)
	}
	if err := RecordTweet(tmpDir, "simple"); err != nil {
		t.Fatalf("Failed to record tweet: %v", err)
	}

	stats, err := LoadStats(tmpDir)
	if err != nil {
		t.Fatalf("Failed to reload stats: %v", err)
	}
	if stats.TotalTweets != 2 {
		t.Errorf("expected 2 tweets, got %d", stats.TotalTweets)
	}
	if stats.ContentTypes["contextual"] != 1 || stats.ContentTypes["simple"] != 1 {
		t.Errorf("unexpected content type counts: %v", stats.ContentTypes)
	}

	var daily int
	for _, n := range stats.DailyTweets {
		daily += n
	}
	if daily != 2 {
		t.Errorf("expected 2 daily tweets, got %d", daily)
	}
}

func TestRecordInteraction_TracksUserAndTotal(t *testing.T) {
	tmpDir := t.TempDir()

	for range 2 {
		if err := RecordInteraction(tmpDir, "alice"); err != nil {
			t.Fatalf("Failed to record interaction: %v", err)
		}
	}
	if err := RecordInteraction(tmpDir, "bob"); err != nil {
		t.Fatalf("Failed to record interaction: %v", err)
	}

	stats, err := LoadStats(tmpDir)
	if err != nil {
		t.Fatalf("Failed to reload stats: %v", err)
	}
	if stats.TotalInteractions != 3 {
		t.Errorf("expected 3 interactions, got %d", stats.TotalInteractions)
	}
	if stats.UserInteractions["alice"] != 2 {
		t.Errorf("expected alice count 2, got %d", stats.UserInteractions["alice"])
	}
}

func TestPopularKaomojis_Ordering(t *testing.T) {
	tmpDir := t.TempDir()

	for range 3 {
		if err := RecordKaomojiUse(tmpDir, "(^o^)"); err != nil {
			t.Fatalf("Failed to record: %v", err)
		}
	}
	if err := RecordKaomojiUse(tmpDir, "(;_;)"); err != nil {
		t.Fatalf("Failed to record: %v", err)
	}

	top, err := PopularKaomojis(tmpDir, 5)
	if err != nil {
		t.Fatalf("Failed to get popular kaomojis: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 glyphs, got %d", len(top))
	}
	if top[0] != "(^o^)" {
		t.Errorf("expected most used first, got %v", top)
	}
}

func TestActiveUsers_TopN(t *testing.T) {
	tmpDir := t.TempDir()

	users := map[string]int{"alice": 5, "bob": 2, "carol": 7, "dave": 1}
	for username, n := range users {
		for range n {
			if err := RecordInteraction(tmpDir, username); err != nil {
				t.Fatalf("Failed to record: %v", err)
			}
		}
	}

	top, err := ActiveUsers(tmpDir, 3)
	if err != nil {
		t.Fatalf("Failed to get active users: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 users, got %d", len(top))
	}
	if top[0].Username != "carol" || top[1].Username != "alice" || top[2].Username != "bob" {
		t.Errorf("unexpected ordering: %v", top)
	}
}

func TestLoadStats_RepairsMissingMaps(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "stats.json"), []byte(`{"total_tweets": 4}`), 0644); err != nil {
		t.Fatalf("Failed to write stats: %v", err)
	}

	stats, err := LoadStats(tmpDir)
	if err != nil {
		t.Fatalf("Failed to load stats: %v", err)
	}
	if stats.TotalTweets != 4 {
		t.Errorf("expected existing counter preserved, got %d", stats.TotalTweets)
	}
	if stats.PopularKaomojis == nil {
		t.Error("expected nil maps to be repaired")
	}

	// A tracker call over the repaired record must not panic.
	if err := RecordKaomojiUse(tmpDir, "(^_^)"); err != nil {
		t.Fatalf("Failed to record over repaired stats: %v", err)
	}
}
