package planner

import (
	"strings"
	"testing"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

func TestParsePlanPlainJSON(t *testing.T) {
	plan, err := parsePlan(`{"script": "hello", "caption": "hook\n#tag", "shot_plan": [{"description": "a shot", "duration_seconds": 4}]}`)
	if err != nil {
		t.Fatalf("parse plan: %v", err)
	}
	if plan.Script != "hello" || len(plan.ShotPlan) != 1 {
		t.Fatalf("unexpected plan %+v", plan)
	}
	if plan.Hook() != "hook" {
		t.Fatalf("unexpected hook %q", plan.Hook())
	}
}

func TestParsePlanStripsCodeFence(t *testing.T) {
	text := "Here is the plan:\n```json\n{\"script\": \"hello\", \"caption\": \"c\", \"shot_plan\": []}\n```"
	plan, err := parsePlan(text)
	if err != nil {
		t.Fatalf("parse fenced plan: %v", err)
	}
	if plan.Script != "hello" {
		t.Fatalf("unexpected script %q", plan.Script)
	}
}

func TestParsePlanBackfillsShotDurations(t *testing.T) {
	plan, err := parsePlan(`{"script": "s", "caption": "c", "shot_plan": [{"description": "no duration"}]}`)
	if err != nil {
		t.Fatalf("parse plan: %v", err)
	}
	if plan.ShotPlan[0].DurationSeconds <= 0 {
		t.Fatalf("duration not backfilled: %+v", plan.ShotPlan[0])
	}
}

func TestParsePlanRejectsEmptyScript(t *testing.T) {
	if _, err := parsePlan(`{"script": "  ", "caption": "c"}`); err == nil {
		t.Fatal("expected empty-script rejection")
	}
	if _, err := parsePlan("no json here"); err == nil {
		t.Fatal("expected missing-JSON rejection")
	}
}

func TestExtractJSONIgnoresBracesInStrings(t *testing.T) {
	text := `prefix {"script": "curly } inside", "caption": "c"} suffix`
	got := extractJSON(text)
	if !strings.HasPrefix(got, `{"script"`) || !strings.HasSuffix(got, `"c"}`) {
		t.Fatalf("unexpected extraction %q", got)
	}
}

func TestBuildPromptIncludesBriefFields(t *testing.T) {
	prompt := buildPrompt(types.ContentBrief{
		Topic:         "3 energy tips",
		Tone:          "friendly",
		Platforms:     []string{"TikTok", "Instagram"},
		LengthSeconds: 30,
		TemplateKind:  types.TemplateVideo,
		ContentPillar: "wellness",
	})
	for _, want := range []string{"3 energy tips", "friendly", "TikTok, Instagram", "30 seconds", "wellness"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
