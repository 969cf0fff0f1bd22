// Package classify detects the intent of inbound mention text using
// keyword-substring matching. It owns the canonical mood keyword table,
// which the selector reuses for trending-topic matching so the two never
// drift apart.
package classify

import "strings"

// Kind is the coarse intent of a mention.
type Kind int

const (
	// PlainMention is any mention with no recognized keyword.
	PlainMention Kind = iota
	Help
	Stats
	MoodRequest
)

// Intent is the classification result. Category is set only for MoodRequest.
type Intent struct {
	Kind     Kind
	Category string
}

var helpKeywords = []string{"help", "how", "what can you do", "commands", "features"}

var statsKeywords = []string{"stats", "statistics", "popular", "favorite", "most used"}

// moodEntry maps indicative substrings to a kaomoji category. Iteration
// order is significant: the first matching category wins, so the table is
// a slice rather than a map.
type moodEntry struct {
	Category string
	Keywords []string
}

// moodTable is the single canonical keyword-to-category table. It merges
// the direct mood words with the looser synonym groups ("cute" routes to
// happy, "crush" to love).
var moodTable = []moodEntry{
	{"happy", []string{"happy", "joy", "glad", "wonderful", "cute", "adorable"}},
	{"sad", []string{"sad", "unhappy", "depress", "cry", "feeling down"}},
	{"love", []string{"love", "heart", "crush", "like you"}},
	{"angry", []string{"angry", "mad", "upset", "hate"}},
	{"surprised", []string{"surprise", "shock", "wow", "woah"}},
	{"sleepy", []string{"sleepy", "sleep", "tired", "nap", "rest"}},
	{"food", []string{"food", "hungry", "eat", "lunch", "dinner", "meal"}},
	{"excited", []string{"excited", "hype", "thrilled"}},
}

// Classify determines the intent of a mention's text. Stats keywords are
// checked before help keywords: "show" contains "how", so help-first would
// swallow phrases like "show me stats".
func Classify(text string) Intent {
	lower := strings.ToLower(text)

	if containsAny(lower, statsKeywords) {
		return Intent{Kind: Stats}
	}
	if containsAny(lower, helpKeywords) {
		return Intent{Kind: Help}
	}
	if category, ok := DetectCategory(text); ok {
		return Intent{Kind: MoodRequest, Category: category}
	}
	return Intent{Kind: PlainMention}
}

// DetectCategory scans the canonical mood table and returns the first
// category with a keyword present in the text. Case-insensitive, no
// stemming.
func DetectCategory(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, entry := range moodTable {
		if containsAny(lower, entry.Keywords) {
			return entry.Category, true
		}
	}
	return "", false
}

// MatchTrend returns the category of the first mood-table entry whose
// keywords match any of the given trend names, along with the matched
// trend. Table order breaks ties, so results are stable across runs.
func MatchTrend(trends []string) (category, trend string, ok bool) {
	for _, entry := range moodTable {
		for _, name := range trends {
			lower := strings.ToLower(name)
			for _, keyword := range entry.Keywords {
				if strings.Contains(lower, keyword) {
					return entry.Category, name, true
				}
			}
		}
	}
	return "", "", false
}

func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
