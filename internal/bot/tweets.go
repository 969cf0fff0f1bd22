package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/liminalpurple/kaomoji-bot/internal/almanac"
	"github.com/liminalpurple/kaomoji-bot/internal/classify"
	"github.com/liminalpurple/kaomoji-bot/internal/compose"
	"github.com/liminalpurple/kaomoji-bot/internal/storage"
)

// Content type labels recorded per tweet.
const (
	typeSimple     = "simple"
	typeTrending   = "trending"
	typePopular    = "popular"
	typeContextual = "contextual"
	typeStartup    = "startup"
	typeStats      = "stats"
	typeThanks     = "thanks"
)

// PostRandomContent posts one tweet drawn from the content mix: 20% plain
// kaomoji, 20% trending, 5% popular showcase, the rest contextual.
func (b *Bot) PostRandomContent(ctx context.Context) error {
	roll := b.roll()
	switch {
	case roll < 0.20:
		return b.postSimple(ctx)
	case roll < 0.40:
		if b.cfg.Content.UseTrending {
			return b.postTrending(ctx)
		}
		return b.postContextual(ctx)
	case roll < 0.45:
		return b.postPopular(ctx)
	default:
		return b.postContextual(ctx)
	}
}

func (b *Bot) postSimple(ctx context.Context) error {
	count := b.sel.SimpleCount(b.cfg.Content.MinKaomojis, b.cfg.Content.MaxKaomojis)
	glyphs, err := b.lib.RandomKaomojis(count)
	if err != nil {
		return fmt.Errorf("failed to pick kaomojis: %w", err)
	}

	text := strings.Join(glyphs, " ")
	if b.cfg.Content.AddHashtags {
		if hashtags, err := b.lib.RandomHashtags(2); err == nil && len(hashtags) > 0 {
			text += " " + strings.Join(hashtags, " ")
		}
	}

	if err := b.post(ctx, text, typeSimple); err != nil {
		return err
	}
	for _, glyph := range glyphs {
		b.track(storage.RecordKaomojiUse(b.dataDir, glyph))
	}
	return nil
}

func (b *Bot) postTrending(ctx context.Context) error {
	trends, err := b.client.TrendingTopics(ctx)
	if err != nil {
		b.log.Warn().Err(err).Msg("trending topics unavailable, falling back to contextual tweet")
		return b.postContextual(ctx)
	}
	if len(trends) == 0 {
		return b.postContextual(ctx)
	}

	names := make([]string, len(trends))
	for i, t := range trends {
		names[i] = t.Name
	}

	category, trend, ok := classify.MatchTrend(names)
	if !ok {
		trend = names[0]
		if category, err = b.lib.RandomCategory(); err != nil {
			return fmt.Errorf("failed to pick category: %w", err)
		}
	}

	glyph, used, err := b.lib.KaomojiByCategory(category)
	if err != nil {
		return fmt.Errorf("failed to pick kaomoji: %w", err)
	}
	message, err := b.lib.RandomMessage("moods")
	if err != nil {
		return fmt.Errorf("failed to pick message: %w", err)
	}

	var hashtags []string
	if b.cfg.Content.AddHashtags {
		hashtags = trendHashtags(names, b.cfg.Content.MaxTrendingHashtags)
	}

	text := compose.Compose(message, glyph, hashtags, trend)
	if err := b.post(ctx, text, typeTrending); err != nil {
		return err
	}
	b.track(storage.RecordKaomojiUse(b.dataDir, glyph))
	b.track(storage.RecordCategoryUse(b.dataDir, used))
	return nil
}

func (b *Bot) postPopular(ctx context.Context) error {
	glyphs, err := storage.PopularKaomojis(b.dataDir, 3)
	if err != nil || len(glyphs) == 0 {
		// Not enough history yet.
		return b.postSimple(ctx)
	}

	text := "My most loved kaomojis so far: " + strings.Join(glyphs, " ")
	if b.cfg.Content.AddHashtags {
		if hashtags, err := b.lib.RandomHashtags(1); err == nil && len(hashtags) > 0 {
			text += " " + hashtags[0]
		}
	}
	return b.post(ctx, text, typePopular)
}

func (b *Bot) postContextual(ctx context.Context) error {
	snap := almanac.SnapshotAt(time.Now())
	if b.cfg.Content.UseTrending {
		if trends, err := b.client.TrendingTopics(ctx); err == nil {
			for _, t := range trends {
				snap.Trends = append(snap.Trends, t.Name)
			}
		}
	}

	pick, err := b.sel.Select(snap)
	if err != nil {
		return fmt.Errorf("failed to select content: %w", err)
	}

	glyph, used, err := b.lib.KaomojiByCategory(pick.Category)
	if err != nil {
		return fmt.Errorf("failed to pick kaomoji: %w", err)
	}

	var template string
	hashtags := pick.Hashtags
	if pick.Special != nil {
		template = pick.Special.Template
		b.log.Info().Str("day", pick.Special.Name).Msg("special day tweet")
	} else {
		if template, err = b.lib.RandomMessage(pick.Group); err != nil {
			return fmt.Errorf("failed to pick template: %w", err)
		}
		if b.cfg.Content.AddHashtags {
			hashtags, _ = b.lib.RandomHashtags(2)
		}
	}

	text := compose.Compose(template, glyph, hashtags, pick.Trend)
	if err := b.post(ctx, text, typeContextual); err != nil {
		return err
	}
	b.track(storage.RecordKaomojiUse(b.dataDir, glyph))
	b.track(storage.RecordCategoryUse(b.dataDir, used))
	return nil
}

// PostStartup announces the bot coming online. Best effort.
func (b *Bot) PostStartup(ctx context.Context) error {
	glyph, _, err := b.lib.KaomojiByCategory("happy")
	if err != nil {
		return fmt.Errorf("failed to pick kaomoji: %w", err)
	}
	message, err := b.lib.RandomMessage("greetings")
	if err != nil {
		return fmt.Errorf("failed to pick greeting: %w", err)
	}
	return b.post(ctx, compose.Compose(message, glyph, nil, ""), typeStartup)
}

// PostStats tweets the usage totals with the top kaomojis. Skipped until
// there is something to report.
func (b *Bot) PostStats(ctx context.Context) error {
	stats, err := storage.LoadStats(b.dataDir)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	if stats.TotalTweets == 0 {
		b.log.Info().Msg("no stats to report yet")
		return nil
	}

	text := fmt.Sprintf("Stats time! %d tweets and %d replies so far.", stats.TotalTweets, stats.TotalReplies)
	if popular, err := storage.PopularKaomojis(b.dataDir, 3); err == nil && len(popular) > 0 {
		text += " Crowd favorites: " + strings.Join(popular, " ")
	}
	return b.post(ctx, text, typeStats)
}

// post sends the tweet and records it. Tracking failures never block the
// post.
func (b *Bot) post(ctx context.Context, text, contentType string) error {
	post, err := b.client.Tweet(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to post tweet: %w", err)
	}
	b.log.Info().Str("id", post.ID).Str("type", contentType).Str("text", text).Msg("tweeted")
	b.track(storage.RecordTweet(b.dataDir, contentType))
	return nil
}

func (b *Bot) track(err error) {
	if err != nil {
		b.log.Warn().Err(err).Msg("failed to update stats")
	}
}

// trendHashtags turns up to max trend names into hashtags.
func trendHashtags(names []string, max int) []string {
	var hashtags []string
	for _, name := range names {
		if len(hashtags) >= max {
			break
		}
		if strings.HasPrefix(name, "#") {
			hashtags = append(hashtags, name)
			continue
		}
		hashtags = append(hashtags, "#"+strings.ReplaceAll(name, " ", ""))
	}
	return hashtags
}
