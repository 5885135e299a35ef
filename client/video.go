package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

// assetSelection is the render request's per-asset entry. The id carries the
// media URL the render service fetches.
type assetSelection struct {
	ID string `json:"id"`
}

// StartRender submits a render job for the selected assets and returns its id.
func (c *Client) StartRender(ctx context.Context, assets []types.AssetResult, script string, kind types.TemplateKind) (string, error) {
	selections := make([]assetSelection, 0, len(assets))
	for _, asset := range assets {
		selections = append(selections, assetSelection{ID: asset.ID})
	}

	payload := map[string]interface{}{
		"assets":        selections,
		"script":        script,
		"template_type": kind,
	}

	var job types.RenderJob
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/video/render", payload, &job); err != nil {
		return "", err
	}
	return job.JobID, nil
}

// GetRenderStatus fetches the current state of a render job.
func (c *Client) GetRenderStatus(ctx context.Context, jobID string) (*types.RenderJob, error) {
	path := fmt.Sprintf("/api/video/render/%s/status", jobID)

	var job types.RenderJob
	if err := c.doJSONRequest(ctx, http.MethodGet, path, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
