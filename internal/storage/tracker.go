package storage

import (
	"sort"
	"time"
)

// update runs one read-modify-write cycle over the stats document. Callers
// must not assume atomicity across multiple tracker calls.
func update(dataDir string, mutate func(*Stats)) error {
	stats, err := LoadStats(dataDir)
	if err != nil {
		return err
	}
	mutate(stats)
	stats.LastUpdated = time.Now().UTC()
	return SaveStats(dataDir, stats)
}

// RecordKaomojiUse increments the usage count for a glyph.
func RecordKaomojiUse(dataDir, glyph string) error {
	return update(dataDir, func(stats *Stats) {
		stats.PopularKaomojis[glyph]++
	})
}

// RecordCategoryUse increments the usage count for a category.
func RecordCategoryUse(dataDir, category string) error {
	return update(dataDir, func(stats *Stats) {
		stats.CategoryStats[category]++
	})
}

// RecordTweet counts one posted tweet of the given content type against
// the totals and today's daily counter.
func RecordTweet(dataDir, contentType string) error {
	return update(dataDir, func(stats *Stats) {
		stats.TotalTweets++
		stats.ContentTypes[contentType]++
		today := time.Now().UTC().Format("2006-01-02")
		stats.DailyTweets[today]++
	})
}

// RecordReply counts one mention reply.
func RecordReply(dataDir string) error {
	return update(dataDir, func(stats *Stats) {
		stats.TotalReplies++
	})
}

// RecordLike counts one like given.
func RecordLike(dataDir string) error {
	return update(dataDir, func(stats *Stats) {
		stats.TotalLikes++
	})
}

// RecordInteraction counts one processed mention against the username.
func RecordInteraction(dataDir, username string) error {
	return update(dataDir, func(stats *Stats) {
		stats.UserInteractions[username]++
		stats.TotalInteractions++
	})
}

// PopularKaomojis returns the top count glyphs by usage, most used first.
func PopularKaomojis(dataDir string, count int) ([]string, error) {
	stats, err := LoadStats(dataDir)
	if err != nil {
		return nil, err
	}

	type entry struct {
		glyph string
		count int
	}
	entries := make([]entry, 0, len(stats.PopularKaomojis))
	for glyph, n := range stats.PopularKaomojis {
		entries = append(entries, entry{glyph, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].glyph < entries[j].glyph
	})

	if count > len(entries) {
		count = len(entries)
	}
	glyphs := make([]string, 0, count)
	for _, e := range entries[:count] {
		glyphs = append(glyphs, e.glyph)
	}
	return glyphs, nil
}

// ActiveUsers returns the top count usernames by interaction count.
func ActiveUsers(dataDir string, count int) ([]UserCount, error) {
	stats, err := LoadStats(dataDir)
	if err != nil {
		return nil, err
	}

	users := make([]UserCount, 0, len(stats.UserInteractions))
	for username, n := range stats.UserInteractions {
		users = append(users, UserCount{Username: username, Count: n})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Count != users[j].Count {
			return users[i].Count > users[j].Count
		}
		return users[i].Username < users[j].Username
	})

	if count > len(users) {
		count = len(users)
	}
	return users[:count], nil
}
