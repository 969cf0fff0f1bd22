package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/liminalpurple/kaomoji-bot/internal/bot"
	"github.com/liminalpurple/kaomoji-bot/internal/config"
	"github.com/liminalpurple/kaomoji-bot/internal/content"
	"github.com/liminalpurple/kaomoji-bot/internal/selector"
	"github.com/liminalpurple/kaomoji-bot/internal/twitter"
)

// NewBotCmd creates the bot command
func NewBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the kaomoji bot",
		Long: `Run the bot that tweets kaomojis and replies to mentions.

On its schedule the bot posts a mix of content: plain kaomoji tweets,
trending-topic tweets, popularity showcases, and contextual tweets that
match the time of day, weekday, season, and calendar. It also checks
mentions, replying with a kaomoji matched to the detected mood, and posts
daily stats and a weekly thanks tweet.

With twitter.mock_mode enabled (the default) everything runs against an
in-memory API, so the bot can be tried without credentials.

The catalog file kaomojis.json must exist in the data directory. The bot
runs until interrupted with Ctrl+C.`,
		RunE: runBot,
	}
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := newLogger(cfg.LogLevel)

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	lib := content.New(cfg.Storage.DataDir, cfg.Content.CacheTTL())
	sel := selector.New(lib, cfg.Selection.Weights, selector.WithSpecialDays(cfg.Content.UseSpecialDays))
	kaomojiBot := bot.New(client, lib, sel, cfg, log)

	// Graceful shutdown on Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := kaomojiBot.Run(ctx); err != nil {
		return fmt.Errorf("bot error: %w", err)
	}
	log.Info().Msg("bot stopped")
	return nil
}

// newClient picks the API implementation from config. The rest of the
// program is oblivious to the choice.
func newClient(cfg *config.Config, log zerolog.Logger) (twitter.Client, error) {
	if cfg.Twitter.MockMode {
		log.Info().Msg("mock mode enabled, no tweets will reach the real API")
		return twitter.NewMockClient(log, 200*time.Millisecond), nil
	}
	if cfg.Twitter.AccessToken == "" {
		return nil, fmt.Errorf("no access token configured - run 'kaomojibot login' first")
	}
	retry := twitter.RetryConfig{
		MaxRetries: cfg.Retry.MaxRetries,
		BaseDelay:  cfg.Retry.BaseDelay(),
	}
	return twitter.NewAPIClient(cfg.Twitter.AccessToken, retry, log), nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
