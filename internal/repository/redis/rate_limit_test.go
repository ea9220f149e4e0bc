package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	red "github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*red.Client, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(server.Close)

	client := red.NewClient(&red.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, server
}

func TestRateLimitRepository_RecordAndCount(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewRateLimitRepository(client, SlidingWindowConfig{KeyPrefix: "accounts:rate-limit", TTL: time.Minute})

	reference := time.Now()
	for i := 0; i < 3; i++ {
		if err := repo.RecordAttempt(context.Background(), "203.0.113.7", reference.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("RecordAttempt returned error: %v", err)
		}
	}

	count, err := repo.CountAttempts(context.Background(), "203.0.113.7", time.Minute, reference.Add(3*time.Second))
	if err != nil {
		t.Fatalf("CountAttempts returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 attempts, got %d", count)
	}

	// A different identifier is counted separately.
	count, err = repo.CountAttempts(context.Background(), "198.51.100.1", time.Minute, reference)
	if err != nil {
		t.Fatalf("CountAttempts returned error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 attempts for other identifier, got %d", count)
	}
}

func TestRateLimitRepository_WindowExcludesOldAttempts(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewRateLimitRepository(client, SlidingWindowConfig{KeyPrefix: "accounts:rate-limit"})

	reference := time.Now()
	old := reference.Add(-2 * time.Minute)
	recent := reference.Add(-10 * time.Second)

	if err := repo.RecordAttempt(context.Background(), "id-1", old); err != nil {
		t.Fatalf("RecordAttempt returned error: %v", err)
	}
	if err := repo.RecordAttempt(context.Background(), "id-1", recent); err != nil {
		t.Fatalf("RecordAttempt returned error: %v", err)
	}

	count, err := repo.CountAttempts(context.Background(), "id-1", time.Minute, reference)
	if err != nil {
		t.Fatalf("CountAttempts returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the recent attempt, got %d", count)
	}

	if err := repo.TrimWindow(context.Background(), "id-1", time.Minute, reference); err != nil {
		t.Fatalf("TrimWindow returned error: %v", err)
	}

	oldest, found, err := repo.OldestAttempt(context.Background(), "id-1", time.Minute, reference)
	if err != nil {
		t.Fatalf("OldestAttempt returned error: %v", err)
	}
	if !found {
		t.Fatalf("expected a remaining attempt")
	}
	if oldest.UnixNano() != recent.UnixNano() {
		t.Fatalf("expected oldest %v, got %v", recent, oldest)
	}
}

func TestRateLimitRepository_OldestAttemptEmpty(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewRateLimitRepository(client, SlidingWindowConfig{})

	_, found, err := repo.OldestAttempt(context.Background(), "nobody", time.Minute, time.Now())
	if err != nil {
		t.Fatalf("OldestAttempt returned error: %v", err)
	}
	if found {
		t.Fatalf("expected no attempts")
	}
}

func TestRateLimitRepository_InvalidWindow(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewRateLimitRepository(client, SlidingWindowConfig{})

	if _, err := repo.CountAttempts(context.Background(), "id", 0, time.Now()); err == nil {
		t.Fatalf("expected error for zero window")
	}
	if err := repo.TrimWindow(context.Background(), "id", -time.Second, time.Now()); err == nil {
		t.Fatalf("expected error for negative window")
	}
}
