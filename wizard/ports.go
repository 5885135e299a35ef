package wizard

import (
	"context"
	"time"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

// PlanGenerator produces a script, caption, and shot plan from a brief.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, brief types.ContentBrief) (*types.GeneratedPlan, error)
}

// ContextualQuery carries everything the contextual asset search uses.
type ContextualQuery struct {
	Topic         string
	Hook          string
	Script        string
	ShotPlan      []types.ShotInstruction
	ContentPillar string
	Keywords      []string
	MaxResults    int
	VisualStyle   types.VisualStyle
}

// AssetSearcher finds candidate assets. SearchContextual is the rich entry
// point; Search is the plain keyword fallback. RegenerateImage produces a
// replacement asset for a single prompt (image flow only).
type AssetSearcher interface {
	SearchContextual(ctx context.Context, query ContextualQuery) ([]types.AssetResult, error)
	Search(ctx context.Context, query string, maxResults int) ([]types.AssetResult, error)
	RegenerateImage(ctx context.Context, prompt string) (*types.AssetResult, error)
}

// RenderClient starts render jobs and reports their status. Assets are passed
// in selection order.
type RenderClient interface {
	StartRender(ctx context.Context, assets []types.AssetResult, script string, kind types.TemplateKind) (string, error)
	GetRenderStatus(ctx context.Context, jobID string) (*types.RenderJob, error)
}

// PostScheduler submits the finished post for publishing.
type PostScheduler interface {
	SchedulePost(ctx context.Context, mediaURL, caption string, platforms []string, scheduledAt *time.Time) (*types.ScheduleReceipt, error)
}

// EventSink receives pipeline telemetry. Publishing is fire-and-forget; sinks
// must not block the orchestrator.
type EventSink interface {
	Publish(event Event)
}

// Event is one telemetry record emitted by the orchestrator.
type Event struct {
	SessionID string     `json:"session_id"`
	Kind      string     `json:"kind"`
	Step      types.Step `json:"step,omitempty"`
	Detail    string     `json:"detail,omitempty"`
	At        time.Time  `json:"at"`
}
