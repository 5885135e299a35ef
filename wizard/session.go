package wizard

import (
	"time"

	"github.com/google/uuid"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

// session is the single aggregate holding all cross-step state for one flow.
// It is owned exclusively by the Orchestrator and rebuilt from scratch on
// restart; nothing here is shared between flows.
type session struct {
	id         string
	generation uint64
	step       types.Step

	brief *types.ContentBrief
	plan  *types.GeneratedPlan

	// Editable copies; user edits replace these wholesale and never touch
	// the plan itself.
	script  string
	caption string

	templateKind types.TemplateKind

	results   []types.AssetResult
	prompts   map[string]string
	selection *SelectionTracker

	job       *types.RenderJob
	pollPhase types.PollPhase
	mediaURL  string

	receipt *types.ScheduleReceipt

	// Per-step auto-action flags: at most one automatic search and one
	// automatic render-start fire per state entry.
	searchAttempted bool
	renderAttempted bool

	userErr   string
	updatedAt time.Time
}

func newSession(generation uint64) *session {
	return &session{
		id:         uuid.NewString(),
		generation: generation,
		step:       types.StepBrief,
		pollPhase:  types.PollNoJob,
		prompts:    make(map[string]string),
		updatedAt:  time.Now(),
	}
}

func (s *session) touch() { s.updatedAt = time.Now() }

// findResult returns the index of the asset with the given id, or -1.
func (s *session) findResult(id string) int {
	for i, asset := range s.results {
		if asset.ID == id {
			return i
		}
	}
	return -1
}

// selectedAssets resolves the selection order into full asset records.
func (s *session) selectedAssets() []types.AssetResult {
	if s.selection == nil {
		return nil
	}
	ids := s.selection.Selected()
	assets := make([]types.AssetResult, 0, len(ids))
	for _, id := range ids {
		if idx := s.findResult(id); idx >= 0 {
			assets = append(assets, s.results[idx])
		}
	}
	return assets
}

func (s *session) snapshot() types.SessionSnapshot {
	snap := types.SessionSnapshot{
		SessionID:    s.id,
		Step:         s.step,
		Brief:        s.brief,
		Plan:         s.plan,
		Script:       s.script,
		Caption:      s.caption,
		TemplateKind: s.templateKind,
		Results:      append([]types.AssetResult{}, s.results...),
		Job:          s.job,
		PollPhase:    s.pollPhase,
		MediaURL:     s.mediaURL,
		Receipt:      s.receipt,
		UserError:    s.userErr,
		UpdatedAt:    s.updatedAt,
	}
	if s.selection != nil {
		snap.SelectedIDs = s.selection.Selected()
		snap.MaxSelected = s.selection.Max()
	}
	return snap
}
