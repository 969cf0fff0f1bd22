package storage

import "time"

// Stats is the persisted counter document. It is read, mutated and fully
// rewritten on every update; there is no partial field update at the
// storage layer.
type Stats struct {
	TotalTweets       int            `json:"total_tweets"`       // All posts sent
	TotalReplies      int            `json:"total_replies"`      // Mention replies sent
	TotalLikes        int            `json:"total_likes"`        // Likes given
	TotalInteractions int            `json:"total_interactions"` // Mentions processed
	PopularKaomojis   map[string]int `json:"popular_kaomojis"`   // Per-glyph usage counts
	CategoryStats     map[string]int `json:"category_stats"`     // Per-category usage counts
	ContentTypes      map[string]int `json:"content_types"`      // Per-tweet-type counts
	DailyTweets       map[string]int `json:"daily_tweets"`       // Posts per ISO date
	UserInteractions  map[string]int `json:"user_interactions"`  // Mentions per username
	LastUpdated       time.Time      `json:"last_updated"`       // Time of last write
}

// UserCount pairs a username with its interaction count.
type UserCount struct {
	Username string
	Count    int
}
