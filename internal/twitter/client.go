// Package twitter defines the social API capability consumed by the bot
// and provides two implementations: a thin HTTP client for the real API
// and an in-memory mock. Callers depend only on the Client interface; the
// implementation is chosen once at construction time by configuration.
package twitter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Post is a tweet the bot has sent.
type Post struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

// User identifies an account.
type User struct {
	ID       string
	Username string
	Name     string
}

// Mention is an inbound tweet addressed to the bot.
type Mention struct {
	ID        string
	Text      string
	AuthorID  string
	CreatedAt time.Time
}

// MentionBatch is one page of mentions with the author lookup the API
// delivers alongside them.
type MentionBatch struct {
	Mentions []Mention
	Users    map[string]User
}

// Trend is a trending topic with its reported tweet volume.
type Trend struct {
	Name   string
	Volume int
}

// Client is the capability interface for the social API. All methods may
// fail with a rate-limit or transient classification that the retry
// wrapper consumes.
type Client interface {
	CurrentUser(ctx context.Context) (User, error)
	Tweet(ctx context.Context, text string) (Post, error)
	Reply(ctx context.Context, text, inReplyToID string) (Post, error)
	Like(ctx context.Context, tweetID string) error
	Follow(ctx context.Context, userID string) error
	Mentions(ctx context.Context, sinceID string) (MentionBatch, error)
	TrendingTopics(ctx context.Context) ([]Trend, error)
}

// APIError carries the HTTP status of a failed API call so the retry
// wrapper can classify it.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitter api error (status %d): %s", e.StatusCode, e.Message)
}

// IsRateLimited reports whether the error is a rate-limit rejection.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 429
}

// IsTransient reports whether the error is worth retrying: rate limits
// and server-side failures. Client errors (auth, bad request) are not.
func IsTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}
