package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://api.twitter.com"

// APIClient is the real Client implementation: a thin wrapper over the
// v2 HTTP API with every call routed through the retry policy.
type APIClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	retry      RetryConfig
	log        zerolog.Logger

	mu   sync.Mutex
	self *User // cached CurrentUser result
}

// APIOption configures an APIClient.
type APIOption func(*APIClient)

// WithBaseURL points the client at a different API host, used by tests.
func WithBaseURL(baseURL string) APIOption {
	return func(c *APIClient) { c.baseURL = baseURL }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) APIOption {
	return func(c *APIClient) { c.httpClient = httpClient }
}

// NewAPIClient creates a client authenticating with the given bearer
// token.
func NewAPIClient(token string, retry RetryConfig, log zerolog.Logger, opts ...APIOption) *APIClient {
	c := &APIClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
		retry:      retry,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one authenticated request and decodes the JSON response
// into out. Non-2xx statuses become APIErrors carrying the status code.
func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: string(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type userData struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Name     string `json:"name"`
	} `json:"data"`
}

// CurrentUser returns the authenticated account, cached after the first
// successful call.
func (c *APIClient) CurrentUser(ctx context.Context) (User, error) {
	c.mu.Lock()
	if c.self != nil {
		user := *c.self
		c.mu.Unlock()
		return user, nil
	}
	c.mu.Unlock()

	user, err := withRetry(ctx, c.retry, func() (User, error) {
		var out userData
		if err := c.do(ctx, http.MethodGet, "/2/users/me", nil, nil, &out); err != nil {
			return User{}, err
		}
		return User{ID: out.Data.ID, Username: out.Data.Username, Name: out.Data.Name}, nil
	})
	if err != nil {
		return User{}, err
	}

	c.mu.Lock()
	c.self = &user
	c.mu.Unlock()
	c.log.Info().Str("username", user.Username).Str("id", user.ID).Msg("authenticated")
	return user, nil
}

type tweetData struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// Tweet posts a new tweet.
func (c *APIClient) Tweet(ctx context.Context, text string) (Post, error) {
	return withRetry(ctx, c.retry, func() (Post, error) {
		payload := map[string]any{"text": text}
		var out tweetData
		if err := c.do(ctx, http.MethodPost, "/2/tweets", nil, payload, &out); err != nil {
			return Post{}, err
		}
		return Post{ID: out.Data.ID, Text: out.Data.Text, CreatedAt: time.Now()}, nil
	})
}

// Reply posts a reply to an existing tweet.
func (c *APIClient) Reply(ctx context.Context, text, inReplyToID string) (Post, error) {
	return withRetry(ctx, c.retry, func() (Post, error) {
		payload := map[string]any{
			"text":  text,
			"reply": map[string]string{"in_reply_to_tweet_id": inReplyToID},
		}
		var out tweetData
		if err := c.do(ctx, http.MethodPost, "/2/tweets", nil, payload, &out); err != nil {
			return Post{}, err
		}
		return Post{ID: out.Data.ID, Text: out.Data.Text, CreatedAt: time.Now()}, nil
	})
}

// Like likes a tweet as the authenticated user.
func (c *APIClient) Like(ctx context.Context, tweetID string) error {
	self, err := c.CurrentUser(ctx)
	if err != nil {
		return err
	}
	_, err = withRetry(ctx, c.retry, func() (struct{}, error) {
		payload := map[string]string{"tweet_id": tweetID}
		path := fmt.Sprintf("/2/users/%s/likes", self.ID)
		return struct{}{}, c.do(ctx, http.MethodPost, path, nil, payload, nil)
	})
	return err
}

// Follow follows a user as the authenticated user.
func (c *APIClient) Follow(ctx context.Context, userID string) error {
	self, err := c.CurrentUser(ctx)
	if err != nil {
		return err
	}
	_, err = withRetry(ctx, c.retry, func() (struct{}, error) {
		payload := map[string]string{"target_user_id": userID}
		path := fmt.Sprintf("/2/users/%s/following", self.ID)
		return struct{}{}, c.do(ctx, http.MethodPost, path, nil, payload, nil)
	})
	return err
}

type mentionsData struct {
	Data []struct {
		ID        string    `json:"id"`
		Text      string    `json:"text"`
		AuthorID  string    `json:"author_id"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Name     string `json:"name"`
		} `json:"users"`
	} `json:"includes"`
}

// Mentions fetches mentions of the authenticated user newer than sinceID.
func (c *APIClient) Mentions(ctx context.Context, sinceID string) (MentionBatch, error) {
	self, err := c.CurrentUser(ctx)
	if err != nil {
		return MentionBatch{}, err
	}

	return withRetry(ctx, c.retry, func() (MentionBatch, error) {
		query := url.Values{
			"max_results":  {"100"},
			"expansions":   {"author_id"},
			"tweet.fields": {"created_at,text"},
			"user.fields":  {"username"},
		}
		if sinceID != "" {
			query.Set("since_id", sinceID)
		}

		var out mentionsData
		path := fmt.Sprintf("/2/users/%s/mentions", self.ID)
		if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
			return MentionBatch{}, err
		}

		batch := MentionBatch{Users: make(map[string]User)}
		for _, m := range out.Data {
			batch.Mentions = append(batch.Mentions, Mention{
				ID:        m.ID,
				Text:      m.Text,
				AuthorID:  m.AuthorID,
				CreatedAt: m.CreatedAt,
			})
		}
		for _, u := range out.Includes.Users {
			batch.Users[u.ID] = User{ID: u.ID, Username: u.Username, Name: u.Name}
		}
		return batch, nil
	})
}

type trendsData []struct {
	Trends []struct {
		Name        string `json:"name"`
		TweetVolume int    `json:"tweet_volume"`
	} `json:"trends"`
}

// TrendingTopics fetches worldwide trending topics.
func (c *APIClient) TrendingTopics(ctx context.Context) ([]Trend, error) {
	return withRetry(ctx, c.retry, func() ([]Trend, error) {
		query := url.Values{"id": {"1"}} // WOEID 1 = worldwide

		var out trendsData
		if err := c.do(ctx, http.MethodGet, "/1.1/trends/place.json", query, nil, &out); err != nil {
			return nil, err
		}

		var trends []Trend
		for _, place := range out {
			for _, t := range place.Trends {
				trends = append(trends, Trend{Name: t.Name, Volume: t.TweetVolume})
			}
		}
		return trends, nil
	})
}
