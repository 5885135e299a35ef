package planner

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/BethCNC/dad-social-media-agent-sub000/config"
	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

const preamble = `You write short-form social media content plans. ` +
	`Respond with a single JSON object and nothing else, using exactly these keys: ` +
	`"script" (spoken narration, plain text), ` +
	`"caption" (post caption, first line is the hook, include hashtags on the last line), ` +
	`"shot_plan" (array of {"description", "duration_seconds"} covering the narration in order).`

// Planner generates content plans with the Cohere Chat API.
type Planner struct {
	client *cohereclient.Client
	model  string
}

// New creates a planner. An empty model falls back to the configured default.
func New(apiKey, model string) *Planner {
	if model == "" {
		model = config.PlannerModel
	}
	// Force HTTP/1.1 to avoid HTTP/2 protocol errors against the Cohere edge.
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &Planner{client: client, model: model}
}

// GeneratePlan turns a brief into a script, caption, and shot plan.
func (p *Planner) GeneratePlan(ctx context.Context, brief types.ContentBrief) (*types.GeneratedPlan, error) {
	message := buildPrompt(brief)

	resp, err := p.client.Chat(ctx, &cohere.ChatRequest{
		Message:  message,
		Model:    &p.model,
		Preamble: stringPtr(preamble),
	})
	if err != nil {
		return nil, fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Text == "" {
		return nil, errors.New("cohere chat returned empty response")
	}

	plan, err := parsePlan(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("parse generated plan: %w", err)
	}
	return plan, nil
}

// buildPrompt renders the brief into the user message.
func buildPrompt(brief types.ContentBrief) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a content plan for a short-form %s post.\n", brief.TemplateKind)
	fmt.Fprintf(&b, "Topic: %s\n", brief.Topic)
	if brief.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", brief.Tone)
	}
	if len(brief.Platforms) > 0 {
		fmt.Fprintf(&b, "Platforms: %s\n", strings.Join(brief.Platforms, ", "))
	}
	if brief.ContentPillar != "" {
		fmt.Fprintf(&b, "Content pillar: %s\n", brief.ContentPillar)
	}
	if brief.LengthSeconds > 0 {
		fmt.Fprintf(&b, "Target length: about %d seconds of narration.\n", brief.LengthSeconds)
	}
	return b.String()
}

// parsePlan extracts the JSON object from the model output and validates it.
// Models wrap JSON in markdown fences often enough that we strip them first.
func parsePlan(text string) (*types.GeneratedPlan, error) {
	raw := extractJSON(text)
	if raw == "" {
		return nil, errors.New("no JSON object in model output")
	}

	var plan types.GeneratedPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, err
	}
	if strings.TrimSpace(plan.Script) == "" {
		return nil, errors.New("generated plan has an empty script")
	}
	for i := range plan.ShotPlan {
		if plan.ShotPlan[i].DurationSeconds <= 0 {
			plan.ShotPlan[i].DurationSeconds = config.DefaultShotSeconds
		}
	}
	return &plan, nil
}

// extractJSON returns the first top-level JSON object in text, tolerating
// markdown code fences and surrounding prose.
func extractJSON(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

func stringPtr(s string) *string { return &s }
