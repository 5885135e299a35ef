package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
	"github.com/BethCNC/dad-social-media-agent-sub000/wizard"
)

// Post statuses as they move through the queue.
const (
	StatusQueued     = "queued"
	StatusDispatched = "dispatched"
	StatusFailed     = "failed"
)

// QueuedPost is one deferred publication.
type QueuedPost struct {
	ID        string                 `json:"id"`
	MediaURL  string                 `json:"media_url"`
	Caption   string                 `json:"caption"`
	Platforms []string               `json:"platforms"`
	PublishAt time.Time              `json:"publish_at"`
	Status    string                 `json:"status"`
	Receipt   *types.ScheduleReceipt `json:"receipt,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Queue holds posts scheduled for a future time and dispatches them to the
// publishing provider when due. A failed dispatch is marked failed and left in
// the queue for the operator; it is not retried automatically.
type Queue struct {
	poster wizard.PostScheduler

	mu     sync.Mutex
	posts  []*QueuedPost
	cron   *cron.Cron
	cronID cron.EntryID
}

// NewQueue creates a queue dispatching through poster.
func NewQueue(poster wizard.PostScheduler) *Queue {
	return &Queue{poster: poster, cron: cron.New()}
}

// Enqueue adds a post for publication at publishAt.
func (q *Queue) Enqueue(mediaURL, caption string, platforms []string, publishAt time.Time) *QueuedPost {
	post := &QueuedPost{
		ID:        uuid.NewString(),
		MediaURL:  mediaURL,
		Caption:   caption,
		Platforms: append([]string{}, platforms...),
		PublishAt: publishAt,
		Status:    StatusQueued,
	}

	q.mu.Lock()
	q.posts = append(q.posts, post)
	q.mu.Unlock()

	log.Printf("Queued post %s for %s", post.ID, publishAt.Format(time.RFC3339))
	return post
}

// Start begins the dispatch cron with the given schedule spec.
func (q *Queue) Start(schedule string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	id, err := q.cron.AddFunc(schedule, func() {
		q.dispatchDue(time.Now())
	})
	if err != nil {
		return err
	}
	q.cronID = id
	q.cron.Start()
	log.Printf("Post queue started with schedule: %s", schedule)
	return nil
}

// Stop halts the dispatch cron. Already-running dispatches finish.
func (q *Queue) Stop() {
	if q.cron != nil {
		q.cron.Stop()
	}
}

// Posts returns a copy of the queue contents.
func (q *Queue) Posts() []QueuedPost {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]QueuedPost, 0, len(q.posts))
	for _, post := range q.posts {
		out = append(out, *post)
	}
	return out
}

// dispatchDue sends every queued post whose publish time has passed.
func (q *Queue) dispatchDue(now time.Time) {
	q.mu.Lock()
	var due []*QueuedPost
	for _, post := range q.posts {
		if post.Status == StatusQueued && !post.PublishAt.After(now) {
			due = append(due, post)
		}
	}
	q.mu.Unlock()

	for _, post := range due {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		receipt, err := q.poster.SchedulePost(ctx, post.MediaURL, post.Caption, post.Platforms, nil)
		cancel()

		q.mu.Lock()
		if err != nil {
			post.Status = StatusFailed
			post.Error = err.Error()
			log.Printf("Dispatch failed for post %s: %v", post.ID, err)
		} else {
			post.Status = StatusDispatched
			post.Receipt = receipt
			log.Printf("Dispatched post %s (provider %s)", post.ID, receipt.ProviderID)
		}
		q.mu.Unlock()
	}
}
