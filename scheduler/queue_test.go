package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

type fakePoster struct {
	err   error
	calls int
	urls  []string
}

func (f *fakePoster) SchedulePost(ctx context.Context, mediaURL, caption string, platforms []string, scheduledAt *time.Time) (*types.ScheduleReceipt, error) {
	f.calls++
	f.urls = append(f.urls, mediaURL)
	if f.err != nil {
		return nil, f.err
	}
	return &types.ScheduleReceipt{ProviderID: "p-1", Status: "scheduled"}, nil
}

func TestDispatchDueSendsOnlyDuePosts(t *testing.T) {
	poster := &fakePoster{}
	q := NewQueue(poster)

	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	q.Enqueue("https://cdn.example.com/due.mp4", "c", []string{"TikTok"}, now.Add(-time.Minute))
	q.Enqueue("https://cdn.example.com/later.mp4", "c", []string{"TikTok"}, now.Add(time.Hour))

	q.dispatchDue(now)

	if poster.calls != 1 || poster.urls[0] != "https://cdn.example.com/due.mp4" {
		t.Fatalf("unexpected dispatches: %v", poster.urls)
	}

	posts := q.Posts()
	if posts[0].Status != StatusDispatched || posts[0].Receipt == nil {
		t.Fatalf("due post not marked dispatched: %+v", posts[0])
	}
	if posts[1].Status != StatusQueued {
		t.Fatalf("future post dispatched early: %+v", posts[1])
	}
}

func TestDispatchedPostsAreNotResent(t *testing.T) {
	poster := &fakePoster{}
	q := NewQueue(poster)

	now := time.Now()
	q.Enqueue("https://cdn.example.com/a.mp4", "c", []string{"TikTok"}, now.Add(-time.Minute))

	q.dispatchDue(now)
	q.dispatchDue(now.Add(time.Minute))

	if poster.calls != 1 {
		t.Fatalf("post dispatched %d times", poster.calls)
	}
}

func TestFailedDispatchIsMarkedAndNotRetried(t *testing.T) {
	poster := &fakePoster{err: errors.New("provider down")}
	q := NewQueue(poster)

	now := time.Now()
	q.Enqueue("https://cdn.example.com/a.mp4", "c", []string{"TikTok"}, now.Add(-time.Minute))

	q.dispatchDue(now)
	q.dispatchDue(now.Add(time.Minute))

	if poster.calls != 1 {
		t.Fatalf("failed post retried automatically: %d calls", poster.calls)
	}
	posts := q.Posts()
	if posts[0].Status != StatusFailed || posts[0].Error == "" {
		t.Fatalf("failure not recorded: %+v", posts[0])
	}
}
