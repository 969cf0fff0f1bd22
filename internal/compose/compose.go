// Package compose assembles final tweet text from a template, a kaomoji,
// hashtags and an optional trend reference. Length limits, if any, are the
// posting client's concern, not this package's.
package compose

import (
	"strings"
	"unicode/utf8"

	"github.com/liminalpurple/kaomoji-bot/internal/content"
)

// Compose substitutes the kaomoji placeholder exactly once, optionally
// annotates the message with a trending term, and appends the hashtags
// space-joined.
//
// The trend annotation is skipped when the term already appears in the
// message, or when the message reads as a complete sentence (terminal
// punctuation or a question mark) that the annotation would garble.
func Compose(template, kaomoji string, hashtags []string, trend string) string {
	message := strings.Replace(template, content.Placeholder, kaomoji, 1)

	if trend != "" && wantsTrendAnnotation(message, trend) {
		message += " | Trending: " + trend
	}

	if len(hashtags) > 0 {
		message += " " + strings.Join(hashtags, " ")
	}
	return message
}

func wantsTrendAnnotation(message, trend string) bool {
	lower := strings.ToLower(message)
	if strings.Contains(lower, strings.ToLower(trend)) {
		return false
	}
	if strings.Contains(message, "?") {
		return false
	}
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return false
	}
	switch last, _ := utf8.DecodeLastRuneInString(trimmed); last {
	case '.', '!', '。', '！':
		return false
	}
	return true
}
