package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

type fakePlanner struct {
	plan  *types.GeneratedPlan
	err   error
	calls int
}

func (f *fakePlanner) GeneratePlan(ctx context.Context, brief types.ContentBrief) (*types.GeneratedPlan, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	plan := *f.plan
	return &plan, nil
}

// blockingPlanner holds GeneratePlan open until released, so a test can
// interleave session changes with an in-flight call.
type blockingPlanner struct {
	plan    *types.GeneratedPlan
	started chan struct{}
	release chan struct{}
}

func newBlockingPlanner(plan *types.GeneratedPlan) *blockingPlanner {
	return &blockingPlanner{
		plan:    plan,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (b *blockingPlanner) GeneratePlan(ctx context.Context, brief types.ContentBrief) (*types.GeneratedPlan, error) {
	close(b.started)
	<-b.release
	plan := *b.plan
	return &plan, nil
}

type fakeSearcher struct {
	contextualResults []types.AssetResult
	contextualErr     error
	contextualCalls   int
	lastQuery         ContextualQuery

	keywordResults   []types.AssetResult
	keywordErr       error
	keywordCalls     int
	lastKeywordQuery string

	regenResult *types.AssetResult
	regenErr    error
	lastPrompt  string
}

func (f *fakeSearcher) SearchContextual(ctx context.Context, query ContextualQuery) ([]types.AssetResult, error) {
	f.contextualCalls++
	f.lastQuery = query
	if f.contextualErr != nil {
		return nil, f.contextualErr
	}
	return append([]types.AssetResult{}, f.contextualResults...), nil
}

func (f *fakeSearcher) Search(ctx context.Context, query string, maxResults int) ([]types.AssetResult, error) {
	f.keywordCalls++
	f.lastKeywordQuery = query
	if f.keywordErr != nil {
		return nil, f.keywordErr
	}
	return append([]types.AssetResult{}, f.keywordResults...), nil
}

func (f *fakeSearcher) RegenerateImage(ctx context.Context, prompt string) (*types.AssetResult, error) {
	f.lastPrompt = prompt
	if f.regenErr != nil {
		return nil, f.regenErr
	}
	asset := *f.regenResult
	return &asset, nil
}

// fakeRender serves a scripted sequence of status responses; the last entry
// repeats once the script runs out. Safe for the poll goroutine.
type fakeRender struct {
	mu sync.Mutex

	jobID    string
	startErr error

	statuses  []types.RenderJob
	statusErr error

	startCalls  int
	statusCalls int
	lastAssets  []types.AssetResult
	lastScript  string
	lastKind    types.TemplateKind
}

func (f *fakeRender) StartRender(ctx context.Context, assets []types.AssetResult, script string, kind types.TemplateKind) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startCalls++
	f.lastAssets = append([]types.AssetResult{}, assets...)
	f.lastScript = script
	f.lastKind = kind
	if f.startErr != nil {
		return "", f.startErr
	}
	return f.jobID, nil
}

func (f *fakeRender) GetRenderStatus(ctx context.Context, jobID string) (*types.RenderJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	idx := f.statusCalls - 1
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	job := f.statuses[idx]
	return &job, nil
}

func (f *fakeRender) statusCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls
}

type fakeScheduler struct {
	receipt *types.ScheduleReceipt
	err     error

	calls         int
	lastMediaURL  string
	lastCaption   string
	lastPlatforms []string
}

func (f *fakeScheduler) SchedulePost(ctx context.Context, mediaURL, caption string, platforms []string, scheduledAt *time.Time) (*types.ScheduleReceipt, error) {
	f.calls++
	f.lastMediaURL = mediaURL
	f.lastCaption = caption
	f.lastPlatforms = append([]string{}, platforms...)
	if f.err != nil {
		return nil, f.err
	}
	receipt := *f.receipt
	return &receipt, nil
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}
