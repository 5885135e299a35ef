package wizard

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/BethCNC/dad-social-media-agent-sub000/config"
	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

// Options tune one orchestrator instance. Zero values fall back to the
// defaults in the config package.
type Options struct {
	// PollInterval is the period between render status checks.
	PollInterval time.Duration

	// PollCap bounds the main render poll loop in attempts. 0 means poll
	// until the job reaches a terminal state; renders may legitimately
	// take minutes.
	PollCap int

	// PreviewPollInterval and PreviewPollCap bound the preview render poll
	// used by the regeneration flow.
	PreviewPollInterval time.Duration
	PreviewPollCap      int

	// MaxResults caps how many assets one search returns.
	MaxResults int

	// RequiredVideoAssets is the selection size the video template needs
	// (1 for the single-clip template, 2 for the dual-clip variant).
	RequiredVideoAssets int

	// VisualStyle is the search style preference for the video template.
	// The image template always forces AI generation.
	VisualStyle types.VisualStyle

	// Events, when set, receives pipeline telemetry.
	Events EventSink
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = config.RenderPollInterval
	}
	if o.PreviewPollInterval <= 0 {
		o.PreviewPollInterval = config.PreviewPollInterval
	}
	if o.PreviewPollCap <= 0 {
		o.PreviewPollCap = config.PreviewPollCap
	}
	if o.MaxResults <= 0 {
		o.MaxResults = config.MaxSearchResults
	}
	if o.RequiredVideoAssets <= 0 {
		o.RequiredVideoAssets = config.VideoAssetCount
	}
	if o.VisualStyle == "" {
		o.VisualStyle = types.VisualStyleStockVideo
	}
	return o
}

// Orchestrator drives one content-creation flow through
// BRIEF → REVIEW → SELECT_ASSET → RENDER → DELIVER. It owns the session
// aggregate and all collaborator calls; collaborator failures never escape
// it without being converted to a user-facing message on the session.
//
// All mutations are serialized behind one mutex. Network calls run outside
// the lock and re-apply their results under it, discarding anything whose
// originating session generation is no longer current.
type Orchestrator struct {
	planner   PlanGenerator
	searcher  AssetSearcher
	render    RenderClient
	scheduler PostScheduler
	opts      Options
	chain     searchChain

	mu         sync.Mutex
	sess       *session
	gen        uint64
	cancelPoll context.CancelFunc
}

// New creates an orchestrator with a fresh session.
func New(planner PlanGenerator, searcher AssetSearcher, render RenderClient, scheduler PostScheduler, opts Options) *Orchestrator {
	opts = opts.withDefaults()
	o := &Orchestrator{
		planner:   planner,
		searcher:  searcher,
		render:    render,
		scheduler: scheduler,
		opts:      opts,
		chain: searchChain{
			maxResults:    opts.MaxResults,
			keywordTokens: config.FallbackKeywordCount,
		},
	}
	o.chain.searcher = searcher
	o.sess = newSession(o.gen)
	return o
}

// SessionID returns the id of the current session.
func (o *Orchestrator) SessionID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sess.id
}

// Snapshot returns a read-only copy of the session.
func (o *Orchestrator) Snapshot() types.SessionSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sess.snapshot()
}

// Restart abandons the current flow and starts over with a fresh session.
// Any in-flight poll loop is cancelled and late completions are discarded.
func (o *Orchestrator) Restart() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopPollingLocked()
	o.gen++
	o.sess = newSession(o.gen)
}

// Close tears the orchestrator down. No further render status calls are made
// after Close returns, regardless of pending timers.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopPollingLocked()
}

func (o *Orchestrator) stopPollingLocked() {
	if o.cancelPoll != nil {
		o.cancelPoll()
		o.cancelPoll = nil
	}
}

// requiredCount returns the exact selection size the template needs.
func (o *Orchestrator) requiredCount(kind types.TemplateKind) int {
	if kind == types.TemplateImage {
		return config.ImageAssetCount
	}
	return o.opts.RequiredVideoAssets
}

// SubmitBrief validates the brief and generates a plan. The session stays at
// BRIEF; Next advances once a plan exists.
func (o *Orchestrator) SubmitBrief(ctx context.Context, brief types.ContentBrief) error {
	o.mu.Lock()
	if o.sess.step != types.StepBrief {
		defer o.mu.Unlock()
		return &WrongStepError{Op: "submitting a brief", Want: types.StepBrief, Got: o.sess.step}
	}
	if err := brief.Validate(); err != nil {
		o.sess.userErr = err.Error()
		o.sess.touch()
		o.mu.Unlock()
		return err
	}
	gen := o.sess.generation
	o.mu.Unlock()

	plan, err := o.planner.GeneratePlan(ctx, brief)

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.sess.generation {
		log.Printf("discarding stale plan for session generation %d", gen)
		return nil
	}
	if err != nil {
		o.sess.userErr = userMessage(err, "We couldn't generate your content plan. Please try again.")
		o.sess.touch()
		return err
	}

	kind := brief.TemplateKind
	if kind == "" {
		kind = types.TemplateVideo
	}

	o.sess.brief = &brief
	o.sess.plan = plan
	o.sess.script = plan.Script
	o.sess.caption = plan.Caption
	o.sess.templateKind = kind
	o.sess.selection = NewSelectionTracker(o.requiredCount(kind))
	o.sess.results = nil
	o.sess.prompts = make(map[string]string)
	o.sess.searchAttempted = false
	o.sess.userErr = ""
	o.sess.touch()
	o.publish("plan_generated", "")
	return nil
}

// EditScript replaces the editable script wholesale. Allowed from REVIEW up
// to SELECT_ASSET; once a render starts the script is committed.
func (o *Orchestrator) EditScript(text string) error {
	return o.edit("editing the script", func(s *session) { s.script = text })
}

// EditCaption replaces the editable caption wholesale.
func (o *Orchestrator) EditCaption(text string) error {
	return o.edit("editing the caption", func(s *session) { s.caption = text })
}

func (o *Orchestrator) edit(op string, apply func(*session)) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sess.plan == nil {
		return ErrNoPlan
	}
	if o.sess.step.Index() > types.StepSelectAsset.Index() {
		return &WrongStepError{Op: op, Want: types.StepReview, Got: o.sess.step}
	}
	apply(o.sess)
	o.sess.touch()
	return nil
}

// Next advances to the following step if the current step's completion
// predicate holds, then runs that step's entry action.
func (o *Orchestrator) Next(ctx context.Context) error {
	o.mu.Lock()

	var target types.Step
	switch o.sess.step {
	case types.StepBrief:
		if o.sess.plan == nil {
			o.mu.Unlock()
			return ErrNoPlan
		}
		target = types.StepReview
	case types.StepReview:
		if strings.TrimSpace(o.sess.script) == "" {
			o.mu.Unlock()
			return ErrEmptyScript
		}
		target = types.StepSelectAsset
	case types.StepSelectAsset:
		want := o.requiredCount(o.sess.templateKind)
		if got := o.sess.selection.Count(); got != want {
			o.mu.Unlock()
			return &SelectionCountError{Want: want, Got: got}
		}
		target = types.StepRender
	case types.StepRender:
		if o.sess.pollPhase != types.PollSucceeded || o.sess.mediaURL == "" {
			o.mu.Unlock()
			return ErrRenderIncomplete
		}
		target = types.StepDeliver
	default:
		o.mu.Unlock()
		return &WrongStepError{Op: "advancing", Want: types.StepRender, Got: o.sess.step}
	}

	o.sess.step = target
	o.sess.userErr = ""
	o.sess.touch()
	o.publish("step_entered", string(target))
	o.mu.Unlock()

	return o.runEntryAction(ctx, target)
}

// Back returns to the previous step. Allowed from REVIEW and SELECT_ASSET;
// never from RENDER while a job is in flight (use PickDifferentAsset after a
// failure instead).
func (o *Orchestrator) Back() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.sess.step {
	case types.StepReview:
		o.sess.step = types.StepBrief
	case types.StepSelectAsset:
		o.sess.step = types.StepReview
	case types.StepRender:
		if o.sess.job != nil {
			return ErrRenderInFlight
		}
		o.sess.step = types.StepSelectAsset
		o.sess.renderAttempted = false
	default:
		return ErrNoBackStep
	}
	o.sess.userErr = ""
	o.sess.touch()
	return nil
}

// runEntryAction performs the automatic side effect of entering a step, at
// most once per entry.
func (o *Orchestrator) runEntryAction(ctx context.Context, step types.Step) error {
	switch step {
	case types.StepSelectAsset:
		o.mu.Lock()
		trigger := len(o.sess.results) == 0 && !o.sess.searchAttempted
		if trigger {
			o.sess.searchAttempted = true
		}
		o.mu.Unlock()
		if trigger {
			return o.runSearch(ctx)
		}
	case types.StepRender:
		o.mu.Lock()
		trigger := o.sess.selection.Count() > 0 && o.sess.job == nil && !o.sess.renderAttempted
		if trigger {
			o.sess.renderAttempted = true
		}
		o.mu.Unlock()
		if trigger {
			return o.startRender(ctx)
		}
	}
	return nil
}

// SearchAgain re-runs the search chain on user request.
func (o *Orchestrator) SearchAgain(ctx context.Context) error {
	o.mu.Lock()
	if o.sess.step != types.StepSelectAsset {
		defer o.mu.Unlock()
		return &WrongStepError{Op: "searching", Want: types.StepSelectAsset, Got: o.sess.step}
	}
	o.sess.searchAttempted = true
	o.mu.Unlock()
	return o.runSearch(ctx)
}

// runSearch executes the fallback chain and applies the outcome if the
// session is still current.
func (o *Orchestrator) runSearch(ctx context.Context) error {
	o.mu.Lock()
	if o.sess.plan == nil {
		o.mu.Unlock()
		return ErrNoPlan
	}
	gen := o.sess.generation
	query := o.contextualQueryLocked()
	o.mu.Unlock()

	outcome, err := o.chain.run(ctx, query)

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.sess.generation {
		log.Printf("discarding stale search results for session generation %d", gen)
		return nil
	}
	if err != nil {
		o.sess.userErr = userMessage(err, "We couldn't load assets right now. Please try again.")
		o.sess.touch()
		return err
	}

	o.sess.results = outcome.results
	o.sess.prompts = outcome.prompts
	o.sess.selection = NewSelectionTracker(o.requiredCount(o.sess.templateKind))
	o.sess.userErr = ""
	o.sess.touch()
	detail := "contextual"
	if outcome.usedFallback {
		detail = "keyword_fallback"
	}
	o.publish("search_completed", detail)
	return nil
}

// contextualQueryLocked builds the contextual search query from the session.
// The image template forces AI generation; the video template uses the
// configured visual-style preference.
func (o *Orchestrator) contextualQueryLocked() ContextualQuery {
	style := o.opts.VisualStyle
	if o.sess.templateKind == types.TemplateImage {
		style = types.VisualStyleAIGeneration
	}
	query := ContextualQuery{
		Script:      o.sess.script,
		MaxResults:  o.opts.MaxResults,
		VisualStyle: style,
	}
	if o.sess.brief != nil {
		query.Topic = o.sess.brief.Topic
		query.ContentPillar = o.sess.brief.ContentPillar
	}
	if o.sess.plan != nil {
		query.Hook = o.sess.plan.Hook()
		query.ShotPlan = o.sess.plan.ShotPlan
	}
	return query
}

// ToggleAsset changes the selection state of one result.
func (o *Orchestrator) ToggleAsset(id string, desired bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sess.step != types.StepSelectAsset {
		return &WrongStepError{Op: "selecting assets", Want: types.StepSelectAsset, Got: o.sess.step}
	}
	if o.sess.findResult(id) < 0 {
		return ErrUnknownAsset
	}
	o.sess.selection.Toggle(id, desired)
	o.sess.touch()
	return nil
}

// startRender kicks off the render job and begins polling.
func (o *Orchestrator) startRender(ctx context.Context) error {
	o.mu.Lock()
	gen := o.sess.generation
	assets := o.sess.selectedAssets()
	script := o.sess.script
	kind := o.sess.templateKind
	o.mu.Unlock()

	jobID, err := o.render.StartRender(ctx, assets, script, kind)

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.sess.generation {
		log.Printf("discarding stale render start for session generation %d", gen)
		return nil
	}
	if err != nil {
		o.sess.userErr = userMessage(err, "We couldn't start the render. Please try again.")
		o.sess.touch()
		return err
	}

	o.sess.job = &types.RenderJob{JobID: jobID, Status: types.RenderPending}
	o.sess.pollPhase = types.PollPolling
	o.sess.userErr = ""
	o.sess.touch()
	o.publish("render_started", jobID)

	pollCtx, cancel := context.WithCancel(context.Background())
	o.cancelPoll = cancel
	go o.pollLoop(pollCtx, gen, jobID)
	return nil
}

// RetryRender re-invokes the render start after a failure. It does nothing
// automatic: re-entering RENDER after a failure waits for this call.
func (o *Orchestrator) RetryRender(ctx context.Context) error {
	o.mu.Lock()
	if o.sess.step != types.StepRender {
		defer o.mu.Unlock()
		return &WrongStepError{Op: "retrying the render", Want: types.StepRender, Got: o.sess.step}
	}
	if o.sess.pollPhase == types.PollPolling {
		defer o.mu.Unlock()
		return ErrRenderInFlight
	}
	o.stopPollingLocked()
	o.sess.job = nil
	o.sess.pollPhase = types.PollNoJob
	o.sess.renderAttempted = true
	o.mu.Unlock()
	return o.startRender(ctx)
}

// PickDifferentAsset is the explicit recovery transition out of a failed
// render: it resets render state and returns to SELECT_ASSET.
func (o *Orchestrator) PickDifferentAsset() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sess.step != types.StepRender {
		return &WrongStepError{Op: "picking a different asset", Want: types.StepRender, Got: o.sess.step}
	}
	if o.sess.pollPhase == types.PollPolling {
		return ErrRenderInFlight
	}
	o.stopPollingLocked()
	o.sess.job = nil
	o.sess.pollPhase = types.PollNoJob
	o.sess.renderAttempted = false
	o.sess.userErr = ""
	o.sess.step = types.StepSelectAsset
	o.sess.touch()
	return nil
}

// pollLoop checks the render job at a fixed interval until it reaches a
// terminal state, the configured cap, or cancellation. After cancellation no
// further status calls are made, regardless of pending timers.
func (o *Orchestrator) pollLoop(ctx context.Context, gen uint64, jobID string) {
	ticker := time.NewTicker(o.opts.PollInterval)
	defer ticker.Stop()

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			return
		}

		attempts++
		job, err := o.render.GetRenderStatus(ctx, jobID)
		if !o.applyPoll(gen, jobID, job, err, attempts) {
			return
		}
	}
}

// applyPoll folds one poll result into the session. Returns false when
// polling should stop: terminal state, poll failure, cap reached, or the
// originating job is no longer current.
func (o *Orchestrator) applyPoll(gen uint64, jobID string, job *types.RenderJob, err error, attempts int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.sess.generation || o.sess.job == nil || o.sess.job.JobID != jobID {
		return false
	}

	if err != nil {
		o.sess.pollPhase = types.PollFailed
		o.sess.userErr = userMessage(err, "We couldn't check the render status. Please try again.")
		o.sess.touch()
		o.publish("render_finished", "status_check_failed")
		return false
	}

	o.sess.job = job
	switch {
	case job.Status.Succeeded() && job.VideoURL != "":
		o.sess.pollPhase = types.PollSucceeded
		o.sess.mediaURL = job.VideoURL
		o.sess.userErr = ""
		o.sess.touch()
		o.publish("render_finished", "succeeded")
		return false
	case job.Status.Failed():
		o.sess.pollPhase = types.PollFailed
		o.sess.userErr = rewriteRenderFailure(job, o.sess.selectedAssets())
		o.sess.touch()
		o.publish("render_finished", "failed")
		return false
	}

	if o.opts.PollCap > 0 && attempts >= o.opts.PollCap {
		o.sess.pollPhase = types.PollFailed
		o.sess.userErr = "Rendering is taking longer than expected. Please try again in a few minutes."
		o.sess.touch()
		o.publish("render_finished", "poll_cap_reached")
		return false
	}

	o.sess.touch()
	return true
}

// privateHosts are address fragments the render service cannot reach. A
// failed job whose error or asset URLs mention one of these gets a more
// actionable message than the raw service error.
var privateHosts = []string{"localhost", "127.0.0.1", "0.0.0.0", "host.docker.internal", "192.168.", "10.0."}

func rewriteRenderFailure(job *types.RenderJob, assets []types.AssetResult) string {
	haystack := strings.ToLower(job.Error)
	for _, asset := range assets {
		haystack += " " + strings.ToLower(asset.ID) + " " + strings.ToLower(asset.VideoURL)
	}
	for _, host := range privateHosts {
		if strings.Contains(haystack, host) {
			return "The render service can't reach assets hosted at a local address. Regenerate the assets so they have a public URL, or pick different clips."
		}
	}
	if job.Error != "" {
		return job.Error
	}
	return "The render failed. Pick a different asset or try again."
}

// Regenerate replaces one image asset with a freshly generated one using the
// prompt recorded for it. The replacement is atomic: result list position,
// selection membership, and prompt mapping all swap together, and a failure
// leaves all three untouched.
func (o *Orchestrator) Regenerate(ctx context.Context, assetID string) error {
	o.mu.Lock()
	if o.sess.templateKind != types.TemplateImage {
		defer o.mu.Unlock()
		return ErrNotImageFlow
	}
	if o.sess.step != types.StepSelectAsset {
		defer o.mu.Unlock()
		return &WrongStepError{Op: "regenerating an asset", Want: types.StepSelectAsset, Got: o.sess.step}
	}
	if o.sess.findResult(assetID) < 0 {
		defer o.mu.Unlock()
		return ErrUnknownAsset
	}
	prompt, ok := o.sess.prompts[assetID]
	if !ok {
		// Results past the end of the shot plan carry no prompt; fall back
		// to the brief topic.
		if o.sess.brief != nil {
			prompt = o.sess.brief.Topic
		}
	}
	gen := o.sess.generation
	o.mu.Unlock()

	replacement, err := o.searcher.RegenerateImage(ctx, prompt)

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.sess.generation {
		log.Printf("discarding stale regeneration for session generation %d", gen)
		return nil
	}
	if err != nil {
		o.sess.userErr = userMessage(err, "We couldn't regenerate that image. Please try again.")
		o.sess.touch()
		return err
	}

	idx := o.sess.findResult(assetID)
	if idx < 0 {
		// The asset was replaced or cleared while the call was in flight.
		log.Printf("discarding regeneration for asset %s no longer in results", assetID)
		return nil
	}

	o.sess.results[idx] = *replacement
	if o.sess.selection.Has(assetID) {
		o.sess.selection.Replace(assetID, replacement.ID)
	}
	delete(o.sess.prompts, assetID)
	o.sess.prompts[replacement.ID] = prompt
	o.sess.userErr = ""
	o.sess.touch()
	return nil
}

// RenderPreview renders the current selection and polls for the result with
// a hard attempt cap, for quick feedback after regeneration. It does not
// touch the session's main render job.
func (o *Orchestrator) RenderPreview(ctx context.Context) (string, error) {
	o.mu.Lock()
	if o.sess.step != types.StepSelectAsset {
		defer o.mu.Unlock()
		return "", &WrongStepError{Op: "previewing", Want: types.StepSelectAsset, Got: o.sess.step}
	}
	assets := o.sess.selectedAssets()
	script := o.sess.script
	kind := o.sess.templateKind
	o.mu.Unlock()

	jobID, err := o.render.StartRender(ctx, assets, script, kind)
	if err != nil {
		return "", err
	}

	for attempts := 0; attempts < o.opts.PreviewPollCap; attempts++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(o.opts.PreviewPollInterval):
		}

		job, err := o.render.GetRenderStatus(ctx, jobID)
		if err != nil {
			return "", err
		}
		if job.Status.Succeeded() && job.VideoURL != "" {
			return job.VideoURL, nil
		}
		if job.Status.Failed() {
			return "", errors.New(rewriteRenderFailure(job, assets))
		}
	}
	return "", errors.New("The preview is taking longer than expected. Please try again.")
}

// Schedule submits the delivered post for publishing.
func (o *Orchestrator) Schedule(ctx context.Context, scheduledAt *time.Time) error {
	o.mu.Lock()
	if o.sess.step != types.StepDeliver {
		defer o.mu.Unlock()
		return &WrongStepError{Op: "scheduling", Want: types.StepDeliver, Got: o.sess.step}
	}
	if o.sess.mediaURL == "" {
		defer o.mu.Unlock()
		return ErrNotDelivered
	}
	gen := o.sess.generation
	mediaURL := o.sess.mediaURL
	caption := o.sess.caption
	var platforms []string
	if o.sess.brief != nil {
		platforms = append(platforms, o.sess.brief.Platforms...)
	}
	o.mu.Unlock()

	receipt, err := o.scheduler.SchedulePost(ctx, mediaURL, caption, platforms, scheduledAt)

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.sess.generation {
		log.Printf("discarding stale schedule receipt for session generation %d", gen)
		return nil
	}
	if err != nil {
		o.sess.userErr = userMessage(err, "We couldn't schedule this post. Please try again.")
		o.sess.touch()
		return err
	}
	o.sess.receipt = receipt
	o.sess.userErr = ""
	o.sess.touch()
	o.publish("post_scheduled", receipt.Status)
	return nil
}

func (o *Orchestrator) publish(kind, detail string) {
	if o.opts.Events == nil {
		return
	}
	o.opts.Events.Publish(Event{
		SessionID: o.sess.id,
		Kind:      kind,
		Step:      o.sess.step,
		Detail:    detail,
		At:        time.Now(),
	})
}
