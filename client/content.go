package client

import (
	"context"
	"net/http"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

// GeneratePlan asks the backend to turn a brief into a script, caption, and
// shot plan.
func (c *Client) GeneratePlan(ctx context.Context, brief types.ContentBrief) (*types.GeneratedPlan, error) {
	var plan types.GeneratedPlan
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/content/plan", brief, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
