package twitter

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithRetry_SucceedsAfterRateLimits(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond}

	var attempts int
	var gaps []time.Duration
	last := time.Now()

	result, err := withRetry(context.Background(), cfg, func() (string, error) {
		now := time.Now()
		gaps = append(gaps, now.Sub(last))
		last = now
		attempts++
		if attempts < 3 {
			return "", &APIError{StatusCode: 429, Message: "rate limited"}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if result != "ok" {
		t.Errorf("expected ok, got %q", result)
	}
	if attempts != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", attempts)
	}

	// Backoff must grow: second gap (base) smaller than third (base x2).
	if len(gaps) == 3 && gaps[2] < gaps[1] {
		t.Errorf("expected increasing delays, got %v", gaps)
	}
}

func TestWithRetry_NonTransientFailsImmediately(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond}

	var attempts int
	_, err := withRetry(context.Background(), cfg, func() (string, error) {
		attempts++
		return "", &APIError{StatusCode: 401, Message: "unauthorized"}
	})
	if err == nil {
		t.Fatal("expected failure")
	}
	if attempts != 1 {
		t.Errorf("auth errors must not be retried, got %d attempts", attempts)
	}
}

func TestWithRetry_ExhaustionPropagatesLastError(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond}

	var attempts int
	_, err := withRetry(context.Background(), cfg, func() (string, error) {
		attempts++
		return "", &APIError{StatusCode: 503, Message: "unavailable"}
	})
	if err == nil {
		t.Fatal("expected failure after exhaustion")
	}
	if attempts != 3 {
		t.Errorf("expected 1 attempt + 2 retries, got %d", attempts)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 503 {
		t.Errorf("expected the API error to surface, got %v", err)
	}
}

func TestIsRateLimited(t *testing.T) {
	if !IsRateLimited(&APIError{StatusCode: 429}) {
		t.Error("429 must classify as rate limited")
	}
	if IsRateLimited(&APIError{StatusCode: 500}) {
		t.Error("500 is transient, not rate limited")
	}
	if IsRateLimited(errors.New("plain")) {
		t.Error("plain errors are not rate limited")
	}
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		status int
		want   bool
	}{
		{429, true},
		{500, true},
		{503, true},
		{400, false},
		{401, false},
		{404, false},
	}
	for _, tc := range cases {
		if got := IsTransient(&APIError{StatusCode: tc.status}); got != tc.want {
			t.Errorf("status %d: expected %v, got %v", tc.status, tc.want, got)
		}
	}
}
