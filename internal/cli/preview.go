package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/liminalpurple/kaomoji-bot/internal/bot"
	"github.com/liminalpurple/kaomoji-bot/internal/config"
	"github.com/liminalpurple/kaomoji-bot/internal/content"
	"github.com/liminalpurple/kaomoji-bot/internal/selector"
	"github.com/liminalpurple/kaomoji-bot/internal/twitter"
)

// NewPreviewCmd creates the preview command
func NewPreviewCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Generate sample tweets without posting",
		Long: `Generate tweets from the regular content mix and print them.

Everything runs against the in-memory mock API, so nothing is posted and
usage stats are untouched. Useful for checking the catalog and templates
after editing them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(count)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of tweets to generate")
	return cmd
}

func runPreview(count int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := newLogger("warn")

	// Stats from preview runs are throwaway; the catalog still comes
	// from the real data dir.
	statsDir, err := os.MkdirTemp("", "kaomojibot-preview-*")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(statsDir)

	lib := content.New(cfg.Storage.DataDir, cfg.Content.CacheTTL())
	sel := selector.New(lib, cfg.Selection.Weights, selector.WithSpecialDays(cfg.Content.UseSpecialDays))

	previewCfg := *cfg
	previewCfg.Storage.DataDir = statsDir

	mock := twitter.NewMockClient(log, 0)
	kaomojiBot := bot.New(mock, lib, sel, &previewCfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	for i := 0; i < count; i++ {
		if err := kaomojiBot.PostRandomContent(ctx); err != nil {
			return fmt.Errorf("failed to generate tweet: %w", err)
		}
	}

	for i, post := range mock.Posts() {
		fmt.Printf("%2d. %s\n", i+1, post.Text)
	}
	return nil
}
