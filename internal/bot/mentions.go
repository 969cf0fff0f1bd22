package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/liminalpurple/kaomoji-bot/internal/classify"
	"github.com/liminalpurple/kaomoji-bot/internal/compose"
	"github.com/liminalpurple/kaomoji-bot/internal/storage"
	"github.com/liminalpurple/kaomoji-bot/internal/twitter"
)

// HandleMentions fetches mentions since the last processed ID and replies
// to each. One bad mention never stops the rest of the batch.
func (b *Bot) HandleMentions(ctx context.Context) error {
	b.mu.Lock()
	sinceID := b.lastMentionID
	self := b.self
	b.mu.Unlock()

	batch, err := b.client.Mentions(ctx, sinceID)
	if err != nil {
		return fmt.Errorf("failed to fetch mentions: %w", err)
	}
	if len(batch.Mentions) == 0 {
		return nil
	}

	mentions := batch.Mentions
	if limit := b.cfg.Interaction.MaxMentionsPerRun; limit > 0 && len(mentions) > limit {
		b.log.Warn().Int("count", len(mentions)).Int("max", limit).Msg("capping mentions batch")
		mentions = mentions[:limit]
	}

	for i, mention := range mentions {
		b.advanceMentionCursor(mention.ID)
		if mention.AuthorID == self.ID {
			continue
		}
		if err := b.processMention(ctx, mention, batch.Users[mention.AuthorID]); err != nil {
			b.log.Error().Err(err).Str("mention", mention.ID).Msg("failed to process mention")
		}
		if i < len(mentions)-1 {
			select {
			case <-time.After(b.cfg.Interaction.MentionDelay()):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// advanceMentionCursor moves lastMentionID forward, never backward.
func (b *Bot) advanceMentionCursor(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastMentionID == "" || idLess(b.lastMentionID, id) {
		b.lastMentionID = id
	}
}

// idLess compares tweet IDs numerically when possible.
func idLess(a, c string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nc, errC := strconv.ParseInt(c, 10, 64)
	if errA == nil && errC == nil {
		return na < nc
	}
	return a < c
}

func (b *Bot) processMention(ctx context.Context, mention twitter.Mention, author twitter.User) error {
	intent := classify.Classify(mention.Text)

	text, glyph, err := b.replyText(intent, mention.Text)
	if err != nil {
		return err
	}
	if author.Username != "" {
		text = "@" + author.Username + " " + text
	}

	reply, err := b.client.Reply(ctx, text, mention.ID)
	if err != nil {
		return fmt.Errorf("failed to reply: %w", err)
	}
	b.log.Info().Str("id", reply.ID).Str("to", author.Username).Msg("replied to mention")

	b.track(storage.RecordReply(b.dataDir))
	if author.Username != "" {
		b.track(storage.RecordInteraction(b.dataDir, author.Username))
	}
	if glyph != "" {
		b.track(storage.RecordKaomojiUse(b.dataDir, glyph))
	}

	if b.cfg.Interaction.LikeReplies {
		if err := b.client.Like(ctx, mention.ID); err != nil {
			b.log.Warn().Err(err).Str("mention", mention.ID).Msg("failed to like mention")
		} else {
			b.track(storage.RecordLike(b.dataDir))
		}
	}
	if b.cfg.Interaction.FollowBack && author.ID != "" {
		if err := b.client.Follow(ctx, author.ID); err != nil {
			b.log.Warn().Err(err).Str("user", author.Username).Msg("failed to follow back")
		}
	}
	return nil
}

// replyText builds the reply body for a classified mention and returns the
// kaomoji it embedded, when there is one.
func (b *Bot) replyText(intent classify.Intent, mentionText string) (text, glyph string, err error) {
	switch intent.Kind {
	case classify.Help:
		glyph, _, err = b.lib.KaomojiByCategory("happy")
		if err != nil {
			return "", "", fmt.Errorf("failed to pick kaomoji: %w", err)
		}
		return "I tweet kaomojis all day! Mention me with a mood (happy, sad, sleepy...) and I'll send one back " + glyph, glyph, nil

	case classify.Stats:
		stats, err := storage.LoadStats(b.dataDir)
		if err != nil {
			return "", "", fmt.Errorf("failed to load stats: %w", err)
		}
		text := fmt.Sprintf("I've sent %d tweets and %d replies so far!", stats.TotalTweets, stats.TotalReplies)
		if popular, err := storage.PopularKaomojis(b.dataDir, 3); err == nil && len(popular) > 0 {
			text += " My favorites: " + strings.Join(popular, " ")
		}
		return text, "", nil

	case classify.MoodRequest:
		glyph, _, err = b.lib.KaomojiByCategory(intent.Category)
	default:
		glyph, _, err = b.lib.KaomojiByCategory("")
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to pick kaomoji: %w", err)
	}

	message, err := b.lib.ResponseMessage(mentionText)
	if err != nil {
		return "", "", fmt.Errorf("failed to pick response: %w", err)
	}
	return compose.Compose(message, glyph, nil, ""), glyph, nil
}

// PostThanks tweets a weekly shoutout to the most active users.
func (b *Bot) PostThanks(ctx context.Context) error {
	users, err := storage.ActiveUsers(b.dataDir, 3)
	if err != nil {
		return fmt.Errorf("failed to load active users: %w", err)
	}
	if len(users) == 0 {
		b.log.Info().Msg("no interactions yet, skipping thanks tweet")
		return nil
	}

	handles := make([]string, len(users))
	for i, user := range users {
		handles[i] = "@" + user.Username
	}
	glyph, _, err := b.lib.KaomojiByCategory("love")
	if err != nil {
		return fmt.Errorf("failed to pick kaomoji: %w", err)
	}

	text := "Weekly thanks to my most active friends: " + strings.Join(handles, " ") + " " + glyph
	return b.post(ctx, text, typeThanks)
}
