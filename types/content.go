package types

import (
	"errors"
	"strings"
)

// BriefMode selects how the topic is sourced: typed by the user or suggested.
type BriefMode string

const (
	BriefModeManual BriefMode = "manual"
	BriefModeAuto   BriefMode = "auto"
)

// TemplateKind selects the render template and how many assets it needs.
type TemplateKind string

const (
	TemplateImage TemplateKind = "image"
	TemplateVideo TemplateKind = "video"
)

// VisualStyle selects where SELECT_ASSET results come from.
type VisualStyle string

const (
	VisualStyleStockVideo   VisualStyle = "stock_video"
	VisualStyleAIGeneration VisualStyle = "ai_generation"
)

// ContentBrief is the user-supplied intent that seeds plan generation.
type ContentBrief struct {
	Mode          BriefMode    `json:"mode"`
	Topic         string       `json:"topic,omitempty"`
	Tone          string       `json:"tone"`
	Platforms     []string     `json:"platforms"`
	LengthSeconds int          `json:"length_seconds,omitempty"`
	TemplateKind  TemplateKind `json:"template_kind"`
	ContentPillar string       `json:"content_pillar,omitempty"`
	// ReferenceImageURL optionally grounds generation on an existing visual.
	ReferenceImageURL string `json:"reference_image_url,omitempty"`
}

var (
	ErrEmptyTopic  = errors.New("topic is required in manual mode")
	ErrNoPlatforms = errors.New("at least one target platform is required")
)

// Validate enforces the brief invariants before any collaborator call is made.
func (b ContentBrief) Validate() error {
	if b.Mode == BriefModeManual && strings.TrimSpace(b.Topic) == "" {
		return ErrEmptyTopic
	}
	if len(b.Platforms) == 0 {
		return ErrNoPlatforms
	}
	return nil
}

// ShotInstruction is one entry of the shot plan. Order is meaningful: the
// position maps each shot to the asset search prompt that serves it.
type ShotInstruction struct {
	Description     string `json:"description"`
	DurationSeconds int    `json:"duration_seconds"`
}

// GeneratedPlan is the planner output for a single post. It is produced once
// per brief submission; user edits replace fields wholesale on the session,
// never in place here.
type GeneratedPlan struct {
	Script   string            `json:"script"`
	Caption  string            `json:"caption"`
	ShotPlan []ShotInstruction `json:"shot_plan"`
}

// Hook returns the first line of the caption, used as the contextual search hook.
func (p GeneratedPlan) Hook() string {
	caption := strings.TrimSpace(p.Caption)
	if caption == "" {
		return ""
	}
	if idx := strings.IndexByte(caption, '\n'); idx >= 0 {
		return strings.TrimSpace(caption[:idx])
	}
	return caption
}
