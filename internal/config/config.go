// Package config handles application configuration management.
// It supports YAML files and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/liminalpurple/kaomoji-bot/internal/selector"
)

// Config holds all application configuration
type Config struct {
	Twitter     TwitterConfig     `mapstructure:"twitter" yaml:"twitter"`
	Content     ContentConfig     `mapstructure:"content" yaml:"content"`
	Schedule    ScheduleConfig    `mapstructure:"schedule" yaml:"schedule"`
	Selection   SelectionConfig   `mapstructure:"selection" yaml:"selection"`
	Interaction InteractionConfig `mapstructure:"interaction" yaml:"interaction"`
	Retry       RetryConfig       `mapstructure:"retry" yaml:"retry"`
	Storage     StorageConfig     `mapstructure:"storage" yaml:"storage"`
	LogLevel    string            `mapstructure:"log_level" yaml:"log_level"`
}

// TwitterConfig holds API credentials and mode selection
type TwitterConfig struct {
	AccessToken string `mapstructure:"access_token" yaml:"access_token"`
	MockMode    bool   `mapstructure:"mock_mode" yaml:"mock_mode"`
}

// ContentConfig controls how tweets are assembled
type ContentConfig struct {
	CacheTTLSeconds     int  `mapstructure:"cache_ttl_seconds" yaml:"cache_ttl_seconds"`
	MinKaomojis         int  `mapstructure:"min_kaomojis" yaml:"min_kaomojis"`
	MaxKaomojis         int  `mapstructure:"max_kaomojis" yaml:"max_kaomojis"`
	AddHashtags         bool `mapstructure:"add_hashtags" yaml:"add_hashtags"`
	MaxTrendingHashtags int  `mapstructure:"max_trending_hashtags" yaml:"max_trending_hashtags"`
	UseSpecialDays      bool `mapstructure:"use_special_days" yaml:"use_special_days"`
	UseTrending         bool `mapstructure:"use_trending" yaml:"use_trending"`
	PostOnStartup       bool `mapstructure:"post_on_startup" yaml:"post_on_startup"`
}

// ScheduleConfig holds cron expressions for the recurring jobs
type ScheduleConfig struct {
	Tweet    string `mapstructure:"tweet" yaml:"tweet"`
	Mentions string `mapstructure:"mentions" yaml:"mentions"`
	Stats    string `mapstructure:"stats" yaml:"stats"`
	Thanks   string `mapstructure:"thanks" yaml:"thanks"`
}

// SelectionConfig holds the four bucket weights for contextual selection
type SelectionConfig struct {
	Weights selector.Weights `mapstructure:"weights" yaml:"weights"`
}

// InteractionConfig controls mention handling behavior
type InteractionConfig struct {
	RespondToMentions bool `mapstructure:"respond_to_mentions" yaml:"respond_to_mentions"`
	LikeReplies       bool `mapstructure:"like_replies" yaml:"like_replies"`
	FollowBack        bool `mapstructure:"follow_back" yaml:"follow_back"`
	MentionDelayMS    int  `mapstructure:"mention_delay_ms" yaml:"mention_delay_ms"`
	MaxMentionsPerRun int  `mapstructure:"max_mentions_per_run" yaml:"max_mentions_per_run"`
}

// RetryConfig holds API retry settings
type RetryConfig struct {
	MaxRetries       int `mapstructure:"max_retries" yaml:"max_retries"`
	BaseDelaySeconds int `mapstructure:"base_delay_seconds" yaml:"base_delay_seconds"`
}

// StorageConfig holds storage settings
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// CacheTTL returns the content cache TTL as a duration.
func (c ContentConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// BaseDelay returns the retry base delay as a duration.
func (c RetryConfig) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelaySeconds) * time.Second
}

// MentionDelay returns the inter-mention delay as a duration.
func (c InteractionConfig) MentionDelay() time.Duration {
	return time.Duration(c.MentionDelayMS) * time.Millisecond
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Determine config directory
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w", err)
	}

	// Set default storage directory
	v.SetDefault("storage.data_dir", configDir)

	// Configure viper to read from config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir) // Will be /data in Docker (via KAOMOJIBOT_CONFIG_DIR env var)
	v.AddConfigPath(".")       // Current directory

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults and env vars
	}

	// Environment variable overrides
	v.SetEnvPrefix("KAOMOJIBOT")
	v.AutomaticEnv()

	// Specific env var bindings
	_ = v.BindEnv("twitter.access_token", "TWITTER_ACCESS_TOKEN")

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("twitter.mock_mode", true)

	v.SetDefault("content.cache_ttl_seconds", 3600)
	v.SetDefault("content.min_kaomojis", 1)
	v.SetDefault("content.max_kaomojis", 5)
	v.SetDefault("content.add_hashtags", true)
	v.SetDefault("content.max_trending_hashtags", 1)
	v.SetDefault("content.use_special_days", true)
	v.SetDefault("content.use_trending", true)
	v.SetDefault("content.post_on_startup", true)

	v.SetDefault("schedule.tweet", "0 * * * *")
	v.SetDefault("schedule.mentions", "*/2 * * * *")
	v.SetDefault("schedule.stats", "0 0 * * *")
	v.SetDefault("schedule.thanks", "0 12 * * 0")

	defaults := selector.DefaultWeights()
	v.SetDefault("selection.weights.time", defaults.Time)
	v.SetDefault("selection.weights.weekday", defaults.Weekday)
	v.SetDefault("selection.weights.season", defaults.Season)
	v.SetDefault("selection.weights.weather", defaults.Weather)

	v.SetDefault("interaction.respond_to_mentions", true)
	v.SetDefault("interaction.like_replies", true)
	v.SetDefault("interaction.follow_back", true)
	v.SetDefault("interaction.mention_delay_ms", 2000)
	v.SetDefault("interaction.max_mentions_per_run", 10)

	v.SetDefault("retry.max_retries", 3)
	v.SetDefault("retry.base_delay_seconds", 5)

	v.SetDefault("log_level", "info")
}

// Save writes the current configuration to file
func Save(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to determine config directory: %w", err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")

	v := viper.New()
	v.Set("twitter", cfg.Twitter)
	v.Set("content", cfg.Content)
	v.Set("schedule", cfg.Schedule)
	v.Set("selection", cfg.Selection)
	v.Set("interaction", cfg.Interaction)
	v.Set("retry", cfg.Retry)
	v.Set("storage", cfg.Storage)
	v.Set("log_level", cfg.LogLevel)

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Set restrictive permissions on config file (contains credentials)
	if err := os.Chmod(configPath, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	// Check for KAOMOJIBOT_CONFIG_DIR env var (Docker can set this to /data)
	if configDir := os.Getenv("KAOMOJIBOT_CONFIG_DIR"); configDir != "" {
		return configDir, nil
	}

	// Use XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "kaomojibot"), nil
	}

	// Fall back to ~/.config/kaomojibot
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "kaomojibot"), nil
}
