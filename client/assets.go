package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
	"github.com/BethCNC/dad-social-media-agent-sub000/wizard"
)

// SearchContextual runs the backend's contextual asset search, which ranks
// stock footage or generates images against the full plan context.
func (c *Client) SearchContextual(ctx context.Context, query wizard.ContextualQuery) ([]types.AssetResult, error) {
	payload := map[string]interface{}{
		"topic":          query.Topic,
		"hook":           query.Hook,
		"script":         query.Script,
		"shot_plan":      query.ShotPlan,
		"content_pillar": query.ContentPillar,
		"max_results":    query.MaxResults,
		"visual_style":   query.VisualStyle,
	}
	if len(query.Keywords) > 0 {
		payload["suggested_keywords"] = query.Keywords
	}

	var results []types.AssetResult
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/assets/search/contextual", payload, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Search runs the plain keyword stock search.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]types.AssetResult, error) {
	path := fmt.Sprintf("/api/assets/search?query=%s&max_results=%d", url.QueryEscape(query), maxResults)

	var results []types.AssetResult
	if err := c.doJSONRequest(ctx, http.MethodGet, path, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// RegenerateImage generates a single replacement image for the given prompt.
func (c *Client) RegenerateImage(ctx context.Context, prompt string) (*types.AssetResult, error) {
	payload := map[string]interface{}{"prompt": prompt}

	var result types.AssetResult
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/assets/generate-image", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
