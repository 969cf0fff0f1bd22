// Package bot wires the content pipeline to the social API and drives the
// recurring jobs: posting, mention handling, stats, and weekly thanks.
package bot

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/liminalpurple/kaomoji-bot/internal/config"
	"github.com/liminalpurple/kaomoji-bot/internal/content"
	"github.com/liminalpurple/kaomoji-bot/internal/selector"
	"github.com/liminalpurple/kaomoji-bot/internal/twitter"
)

// jobTimeout bounds a single cron job run, retries included.
const jobTimeout = 2 * time.Minute

// Bot owns the scheduler and the per-run state of the mention pipeline.
type Bot struct {
	client  twitter.Client
	lib     *content.Library
	sel     *selector.Selector
	cfg     *config.Config
	log     zerolog.Logger
	cron    *cron.Cron
	dataDir string

	mu            sync.Mutex
	rng           *rand.Rand
	self          twitter.User
	lastMentionID string
}

// Option configures a Bot.
type Option func(*Bot)

// WithRand injects a seeded random source for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(b *Bot) { b.rng = rng }
}

// New creates a bot instance. The client decides whether posts reach the
// real API or the in-memory mock; the bot never branches on the mode.
func New(client twitter.Client, lib *content.Library, sel *selector.Selector, cfg *config.Config, log zerolog.Logger, opts ...Option) *Bot {
	b := &Bot{
		client:  client,
		lib:     lib,
		sel:     sel,
		cfg:     cfg,
		log:     log,
		cron:    cron.New(),
		dataDir: cfg.Storage.DataDir,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run resolves the bot identity, registers the cron jobs and blocks until
// the context is cancelled. Job failures are logged, never fatal.
func (b *Bot) Run(ctx context.Context) error {
	self, err := b.client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve bot identity: %w", err)
	}
	b.mu.Lock()
	b.self = self
	b.mu.Unlock()
	b.log.Info().Str("username", self.Username).Msg("bot identity resolved")

	if err := b.registerJobs(); err != nil {
		return err
	}

	if b.cfg.Content.PostOnStartup {
		if err := b.PostStartup(ctx); err != nil {
			b.log.Warn().Err(err).Msg("startup tweet failed")
		}
	}

	b.cron.Start()
	b.log.Info().
		Str("tweet", b.cfg.Schedule.Tweet).
		Str("mentions", b.cfg.Schedule.Mentions).
		Str("stats", b.cfg.Schedule.Stats).
		Str("thanks", b.cfg.Schedule.Thanks).
		Msg("scheduler started")

	<-ctx.Done()

	b.log.Info().Msg("shutting down, waiting for running jobs")
	<-b.cron.Stop().Done()
	return nil
}

func (b *Bot) registerJobs() error {
	jobs := []struct {
		name string
		spec string
		run  func(context.Context) error
	}{
		{"tweet", b.cfg.Schedule.Tweet, b.PostRandomContent},
		{"mentions", b.cfg.Schedule.Mentions, b.HandleMentions},
		{"stats", b.cfg.Schedule.Stats, b.PostStats},
		{"thanks", b.cfg.Schedule.Thanks, b.PostThanks},
	}
	for _, job := range jobs {
		if job.name == "mentions" && !b.cfg.Interaction.RespondToMentions {
			continue
		}
		name, run := job.name, job.run
		_, err := b.cron.AddFunc(job.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			if err := run(ctx); err != nil {
				b.log.Error().Err(err).Str("job", name).Msg("job failed")
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule %s job (%q): %w", job.name, job.spec, err)
		}
	}
	return nil
}

func (b *Bot) roll() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rng.Float64()
}
