package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/liminalpurple/kaomoji-bot/internal/bot"
	"github.com/liminalpurple/kaomoji-bot/internal/config"
	"github.com/liminalpurple/kaomoji-bot/internal/content"
	"github.com/liminalpurple/kaomoji-bot/internal/selector"
)

// NewPostCmd creates the post command
func NewPostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "post",
		Short: "Post a single tweet and exit",
		Long: `Post one tweet drawn from the regular content mix, then exit.

Useful for testing the pipeline end to end, or for driving the bot from an
external scheduler instead of the built-in one.`,
		RunE: runPost,
	}
}

func runPost(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := kaomojiBot.PostRandomContent(ctx); err != nil {
		return fmt.Errorf("failed to post: %w", err)
	}
	return nil
}
