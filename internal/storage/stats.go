// Package storage persists the bot's usage statistics as a single JSON
// document in the data directory. The document is loaded whole, mutated in
// memory and rewritten whole; the scheduling model is what serializes
// writers, not this package.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const statsFile = "stats.json"

// LoadStats loads the stats document from disk, creating a zeroed record
// when none exists yet.
func LoadStats(dataDir string) (*Stats, error) {
	statsPath := filepath.Join(dataDir, statsFile)

	if _, err := os.Stat(statsPath); os.IsNotExist(err) {
		stats := newStats()
		if err := SaveStats(dataDir, stats); err != nil {
			return nil, fmt.Errorf("failed to create initial stats: %w", err)
		}
		return stats, nil
	}

	data, err := os.ReadFile(statsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats file: %w", err)
	}

	var stats Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	ensureMaps(&stats)
	return &stats, nil
}

// SaveStats rewrites the whole stats document.
func SaveStats(dataDir string, stats *Stats) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dataDir, statsFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}

func newStats() *Stats {
	stats := &Stats{LastUpdated: time.Now().UTC()}
	ensureMaps(stats)
	return stats
}

// ensureMaps repairs nil maps so older or hand-edited documents never
// panic an increment.
func ensureMaps(stats *Stats) {
	if stats.PopularKaomojis == nil {
		stats.PopularKaomojis = make(map[string]int)
	}
	if stats.CategoryStats == nil {
		stats.CategoryStats = make(map[string]int)
	}
	if stats.ContentTypes == nil {
		stats.ContentTypes = make(map[string]int)
	}
	if stats.DailyTweets == nil {
		stats.DailyTweets = make(map[string]int)
	}
	if stats.UserInteractions == nil {
		stats.UserInteractions = make(map[string]int)
	}
}
