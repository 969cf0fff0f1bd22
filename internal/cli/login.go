// Package cli provides command-line interface commands for kaomojibot.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/liminalpurple/kaomoji-bot/internal/auth"
	"github.com/liminalpurple/kaomoji-bot/internal/config"
	"github.com/liminalpurple/kaomoji-bot/internal/twitter"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store Twitter API credentials",
		Long: `Interactive credential setup.

Prompts for a Twitter API bearer token, verifies it against the API, and
saves it to the configuration file for future use.`,
		RunE: runLogin,
	}
}

func runLogin(cmd *cobra.Command, args []string) error {
	fmt.Println("Kaomoji Bot - Login")
	fmt.Println()

	creds, err := auth.InteractiveLogin()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// Verify the token before persisting it
	log := newLogger("warn")
	client := twitter.NewAPIClient(creds.AccessToken, twitter.DefaultRetryConfig(), log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("token verification failed: %w", err)
	}

	fmt.Println()
	fmt.Println("Login successful!")
	fmt.Printf("Account: @%s (%s)\n", user.Username, user.Name)
	fmt.Println()

	// Load existing config (or create new)
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Twitter.AccessToken = creds.AccessToken
	cfg.Twitter.MockMode = false

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configDir, _ := config.GetConfigDir()
	fmt.Printf("Credentials saved to: %s/config.yaml\n", configDir)
	fmt.Println()
	fmt.Println("You can now run 'kaomojibot bot' to start tweeting!")

	return nil
}
