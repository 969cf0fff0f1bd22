package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liminalpurple/kaomoji-bot/internal/cli"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "kaomojibot",
		Short: "Kaomoji posting bot for Twitter",
		Long: `Kaomoji Bot - tweets kaomojis matched to the moment.

Posts a scheduled mix of plain kaomoji tweets, trending-topic tweets,
popularity showcases, and contextual tweets that follow the time of day,
weekday, season, and special calendar days. Replies to mentions with a
kaomoji matched to the detected mood.`,
		Version: version,
	}

	// Add commands
	rootCmd.AddCommand(cli.NewLoginCmd())
	rootCmd.AddCommand(cli.NewBotCmd())
	rootCmd.AddCommand(cli.NewPostCmd())
	rootCmd.AddCommand(cli.NewPreviewCmd())

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
