package twitter

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MockClient is an in-memory Client for development without API access.
// It records everything posted and serves a seeded set of mentions and
// trends.
type MockClient struct {
	log   zerolog.Logger
	delay time.Duration

	mu       sync.Mutex
	self     User
	nextID   int // mention IDs stay numeric and ordered, like the real API
	posts    []Post
	mentions []Mention
	users    map[string]User
	trends   []Trend
	liked    []string
	followed []string
}

// NewMockClient creates a mock with the documented seed data. delay
// simulates API latency on every call.
func NewMockClient(log zerolog.Logger, delay time.Duration) *MockClient {
	self := User{ID: "12345678", Username: "kaomoji_bot_mock", Name: "Kaomoji Bot (Mock)"}
	users := map[string]User{
		self.ID:    self,
		"11111111": {ID: "11111111", Username: "user1", Name: "Mock User 1"},
		"22222222": {ID: "22222222", Username: "user2", Name: "Mock User 2"},
	}
	now := time.Now()
	return &MockClient{
		log:    log,
		delay:  delay,
		self:   self,
		users:  users,
		nextID: 1002,
		mentions: []Mention{
			{ID: "1000", Text: "@kaomoji_bot_mock Hi! Can you share a happy kaomoji?", AuthorID: "11111111", CreatedAt: now},
			{ID: "1001", Text: "@kaomoji_bot_mock I'm feeling sad today...", AuthorID: "22222222", CreatedAt: now},
		},
		trends: []Trend{
			{Name: "#Kaomoji", Volume: 5000},
			{Name: "#Anime", Volume: 25000},
			{Name: "#Kawaii", Volume: 1500},
			{Name: "#Japan", Volume: 40000},
			{Name: "#WednesdayWisdom", Volume: 10000},
		},
	}
}

func (m *MockClient) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CurrentUser returns the mock bot account.
func (m *MockClient) CurrentUser(ctx context.Context) (User, error) {
	if err := m.wait(ctx); err != nil {
		return User{}, err
	}
	return m.self, nil
}

// Tweet records the post in memory.
func (m *MockClient) Tweet(ctx context.Context, text string) (Post, error) {
	if err := m.wait(ctx); err != nil {
		return Post{}, err
	}

	post := Post{ID: uuid.NewString(), Text: text, CreatedAt: time.Now()}
	m.mu.Lock()
	m.posts = append(m.posts, post)
	m.mu.Unlock()

	m.log.Info().Str("text", text).Msg("[mock] tweeted")
	return post, nil
}

// Reply records the reply in memory.
func (m *MockClient) Reply(ctx context.Context, text, inReplyToID string) (Post, error) {
	if err := m.wait(ctx); err != nil {
		return Post{}, err
	}

	post := Post{ID: uuid.NewString(), Text: text, CreatedAt: time.Now()}
	m.mu.Lock()
	m.posts = append(m.posts, post)
	m.mu.Unlock()

	m.log.Info().Str("in_reply_to", inReplyToID).Str("text", text).Msg("[mock] replied")
	return post, nil
}

// Like records the like.
func (m *MockClient) Like(ctx context.Context, tweetID string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	m.liked = append(m.liked, tweetID)
	m.mu.Unlock()
	m.log.Info().Str("tweet_id", tweetID).Msg("[mock] liked")
	return nil
}

// Follow records the follow.
func (m *MockClient) Follow(ctx context.Context, userID string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	m.followed = append(m.followed, userID)
	m.mu.Unlock()
	m.log.Info().Str("user_id", userID).Msg("[mock] followed")
	return nil
}

// Mentions returns seeded mentions newer than sinceID.
func (m *MockClient) Mentions(ctx context.Context, sinceID string) (MentionBatch, error) {
	if err := m.wait(ctx); err != nil {
		return MentionBatch{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	batch := MentionBatch{Users: make(map[string]User, len(m.users))}
	for id, user := range m.users {
		batch.Users[id] = user
	}
	for _, mention := range m.mentions {
		if sinceID != "" && !idAfter(mention.ID, sinceID) {
			continue
		}
		batch.Mentions = append(batch.Mentions, mention)
	}
	return batch, nil
}

// idAfter compares tweet IDs numerically, the way since_id works on the
// real API.
func idAfter(id, sinceID string) bool {
	a, errA := strconv.ParseInt(id, 10, 64)
	b, errB := strconv.ParseInt(sinceID, 10, 64)
	if errA != nil || errB != nil {
		return id > sinceID
	}
	return a > b
}

// TrendingTopics returns the seeded trend list.
func (m *MockClient) TrendingTopics(ctx context.Context) ([]Trend, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Trend(nil), m.trends...), nil
}

// AddMention injects an inbound mention, used by tests and the preview
// command.
func (m *MockClient) AddMention(text string, author User) Mention {
	m.mu.Lock()
	defer m.mu.Unlock()

	mention := Mention{ID: strconv.Itoa(m.nextID), Text: text, AuthorID: author.ID, CreatedAt: time.Now()}
	m.nextID++
	m.mentions = append(m.mentions, mention)
	if _, ok := m.users[author.ID]; !ok {
		m.users[author.ID] = author
	}
	return mention
}

// Posts returns everything tweeted or replied so far.
func (m *MockClient) Posts() []Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Post(nil), m.posts...)
}

// Liked returns the tweet IDs liked so far.
func (m *MockClient) Liked() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.liked...)
}

// Followed returns the user IDs followed so far.
func (m *MockClient) Followed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.followed...)
}
