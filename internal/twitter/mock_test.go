package twitter

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func newTestMock() *MockClient {
	return NewMockClient(zerolog.Nop(), 0)
}

func TestMockClient_TweetAndReplyRecorded(t *testing.T) {
	mock := newTestMock()
	ctx := context.Background()

	post, err := mock.Tweet(ctx, "Hello world! (^_^)")
	if err != nil {
		t.Fatalf("Tweet failed: %v", err)
	}
	if post.ID == "" {
		t.Error("expected a generated post ID")
	}

	if _, err := mock.Reply(ctx, "Hi! (^o^)", post.ID); err != nil {
		t.Fatalf("Reply failed: %v", err)
	}

	posts := mock.Posts()
	if len(posts) != 2 {
		t.Fatalf("expected 2 recorded posts, got %d", len(posts))
	}
}

func TestMockClient_MentionsSinceID(t *testing.T) {
	mock := newTestMock()
	ctx := context.Background()

	batch, err := mock.Mentions(ctx, "")
	if err != nil {
		t.Fatalf("Mentions failed: %v", err)
	}
	if len(batch.Mentions) != 2 {
		t.Fatalf("expected 2 seeded mentions, got %d", len(batch.Mentions))
	}

	// Everything up to the newest seeded ID is filtered out.
	latest := batch.Mentions[len(batch.Mentions)-1].ID
	batch, err = mock.Mentions(ctx, latest)
	if err != nil {
		t.Fatalf("Mentions failed: %v", err)
	}
	if len(batch.Mentions) != 0 {
		t.Errorf("expected no mentions after %s, got %d", latest, len(batch.Mentions))
	}

	// A newly injected mention shows up again.
	mock.AddMention("@kaomoji_bot_mock show me stats", User{ID: "33333333", Username: "data_user"})
	batch, err = mock.Mentions(ctx, latest)
	if err != nil {
		t.Fatalf("Mentions failed: %v", err)
	}
	if len(batch.Mentions) != 1 {
		t.Fatalf("expected 1 new mention, got %d", len(batch.Mentions))
	}
	if batch.Users["33333333"].Username != "data_user" {
		t.Error("expected injected author in user map")
	}
}

func TestMockClient_LikeAndFollow(t *testing.T) {
	mock := newTestMock()
	ctx := context.Background()

	if err := mock.Like(ctx, "1000"); err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if err := mock.Follow(ctx, "11111111"); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	if got := mock.Liked(); len(got) != 1 || got[0] != "1000" {
		t.Errorf("unexpected likes: %v", got)
	}
	if got := mock.Followed(); len(got) != 1 || got[0] != "11111111" {
		t.Errorf("unexpected follows: %v", got)
	}
}

func TestMockClient_TrendingTopics(t *testing.T) {
	mock := newTestMock()

	trends, err := mock.TrendingTopics(context.Background())
	if err != nil {
		t.Fatalf("TrendingTopics failed: %v", err)
	}
	if len(trends) == 0 {
		t.Fatal("expected seeded trends")
	}
	for _, trend := range trends {
		if trend.Name == "" {
			t.Error("expected trend names")
		}
	}
}

func TestMockClient_ImplementsClient(t *testing.T) {
	var _ Client = newTestMock()
	var _ Client = NewAPIClient("token", DefaultRetryConfig(), zerolog.Nop())
}
