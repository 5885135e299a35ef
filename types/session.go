package types

import "time"

// Step identifies a wizard step. The flow is linear; Back is allowed only to
// already-completed steps.
type Step string

const (
	StepBrief       Step = "brief"
	StepReview      Step = "review"
	StepSelectAsset Step = "select_asset"
	StepRender      Step = "render"
	StepDeliver     Step = "deliver"
)

// StepOrder lists the steps in flow order.
var StepOrder = []Step{StepBrief, StepReview, StepSelectAsset, StepRender, StepDeliver}

// Index returns the step's position in the flow, or -1 for an unknown step.
func (s Step) Index() int {
	for i, step := range StepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// PollPhase is the render-polling sub-state.
type PollPhase string

const (
	PollNoJob     PollPhase = "no_job"
	PollPolling   PollPhase = "polling"
	PollSucceeded PollPhase = "succeeded"
	PollFailed    PollPhase = "failed"
)

// ScheduleReceipt is the scheduling collaborator's acknowledgement.
type ScheduleReceipt struct {
	ProviderID    string   `json:"provider_id"`
	Status        string   `json:"status"`
	ExternalLinks []string `json:"external_links,omitempty"`
}

// SessionSnapshot is a read-only copy of a wizard session, safe to hand to
// API responses and terminal clients.
type SessionSnapshot struct {
	SessionID    string           `json:"session_id"`
	Step         Step             `json:"step"`
	Brief        *ContentBrief    `json:"brief,omitempty"`
	Plan         *GeneratedPlan   `json:"plan,omitempty"`
	Script       string           `json:"script"`
	Caption      string           `json:"caption"`
	TemplateKind TemplateKind     `json:"template_kind"`
	Results      []AssetResult    `json:"results"`
	SelectedIDs  []string         `json:"selected_ids"`
	MaxSelected  int              `json:"max_selected"`
	Job          *RenderJob       `json:"job,omitempty"`
	PollPhase    PollPhase        `json:"poll_phase"`
	MediaURL     string           `json:"media_url,omitempty"`
	Receipt      *ScheduleReceipt `json:"receipt,omitempty"`
	UserError    string           `json:"user_error,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
