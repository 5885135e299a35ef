package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

func TestGeneratePlanDecodesResponse(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var brief types.ContentBrief
		if err := json.NewDecoder(r.Body).Decode(&brief); err != nil {
			t.Errorf("decode brief: %v", err)
		}
		if brief.Topic != "3 energy tips" {
			t.Errorf("unexpected topic %q", brief.Topic)
		}
		json.NewEncoder(w).Encode(types.GeneratedPlan{
			Script:  "a script",
			Caption: "a caption",
			ShotPlan: []types.ShotInstruction{
				{Description: "morning light", DurationSeconds: 5},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	plan, err := c.GeneratePlan(context.Background(), types.ContentBrief{
		Mode:      types.BriefModeManual,
		Topic:     "3 energy tips",
		Platforms: []string{"TikTok"},
	})
	if err != nil {
		t.Fatalf("generate plan: %v", err)
	}
	if gotPath != "/api/content/plan" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if plan.Script != "a script" || len(plan.ShotPlan) != 1 {
		t.Fatalf("unexpected plan %+v", plan)
	}
}

func TestSearchEncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "morning light stretching" {
			t.Errorf("unexpected query %q", got)
		}
		if got := r.URL.Query().Get("max_results"); got != "12" {
			t.Errorf("unexpected max_results %q", got)
		}
		json.NewEncoder(w).Encode([]types.AssetResult{{ID: "https://cdn.example.com/a.mp4"}})
	}))
	defer srv.Close()

	results, err := New(srv.URL).Search(context.Background(), "morning light stretching", 12)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestErrorDetailBecomesCollaboratorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "topic is required"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GeneratePlan(context.Background(), types.ContentBrief{})
	var collab *CollaboratorError
	if !errors.As(err, &collab) {
		t.Fatalf("expected CollaboratorError, got %v", err)
	}
	if collab.Kind != KindValidation {
		t.Fatalf("expected validation kind, got %s", collab.Kind)
	}
	if collab.UserMessage() != "topic is required" {
		t.Fatalf("unexpected message %q", collab.UserMessage())
	}
}

func TestFieldValidationDetailIsJoined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"msg": "field required"}, {"msg": "value too long"}]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Search(context.Background(), "x", 1)
	var collab *CollaboratorError
	if !errors.As(err, &collab) {
		t.Fatalf("expected CollaboratorError, got %v", err)
	}
	if collab.Message != "field required; value too long" {
		t.Fatalf("unexpected message %q", collab.Message)
	}
}

func TestServerErrorIsServiceKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "render engine crashed"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetRenderStatus(context.Background(), "job-1")
	var collab *CollaboratorError
	if !errors.As(err, &collab) {
		t.Fatalf("expected CollaboratorError, got %v", err)
	}
	if collab.Kind != KindService || collab.Status != http.StatusInternalServerError {
		t.Fatalf("unexpected classification %+v", collab)
	}
}

func TestUnreachableBackendIsNetworkKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	_, err := New(srv.URL).Search(context.Background(), "x", 1)
	var collab *CollaboratorError
	if !errors.As(err, &collab) {
		t.Fatalf("expected CollaboratorError, got %v", err)
	}
	if collab.Kind != KindNetwork {
		t.Fatalf("expected network kind, got %s", collab.Kind)
	}
	if collab.UserMessage() == "" {
		t.Fatal("expected actionable network message")
	}
}

func TestStartRenderSendsAssetIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Assets []struct {
				ID string `json:"id"`
			} `json:"assets"`
			Script       string `json:"script"`
			TemplateType string `json:"template_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode render request: %v", err)
		}
		if len(req.Assets) != 1 || req.Assets[0].ID != "https://cdn.example.com/a.mp4" {
			t.Errorf("unexpected assets %v", req.Assets)
		}
		if req.TemplateType != "video" {
			t.Errorf("unexpected template type %q", req.TemplateType)
		}
		json.NewEncoder(w).Encode(types.RenderJob{JobID: "job-7", Status: types.RenderPending})
	}))
	defer srv.Close()

	jobID, err := New(srv.URL).StartRender(context.Background(),
		[]types.AssetResult{{ID: "https://cdn.example.com/a.mp4"}}, "a script", types.TemplateVideo)
	if err != nil {
		t.Fatalf("start render: %v", err)
	}
	if jobID != "job-7" {
		t.Fatalf("unexpected job id %q", jobID)
	}
}
